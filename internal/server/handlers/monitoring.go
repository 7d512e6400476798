package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/health"
	"git.home.luguber.info/inful/agencysite/internal/server/responses"
	"git.home.luguber.info/inful/agencysite/internal/version"
)

// ReadinessSource reports the latest dependency checks.
type ReadinessSource interface {
	Ready() bool
	Last() health.Check
}

// MonitoringHandlers contains monitoring-related HTTP handlers.
type MonitoringHandlers struct {
	startTime    time.Time
	readiness    ReadinessSource
	errorAdapter *errors.HTTPErrorAdapter
	now          func() time.Time
}

// NewMonitoringHandlers creates monitoring handlers. A nil readiness source
// means the site is ready as soon as it serves.
func NewMonitoringHandlers(startTime time.Time, readiness ReadinessSource) *MonitoringHandlers {
	return &MonitoringHandlers{
		startTime:    startTime,
		readiness:    readiness,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
		now:          time.Now,
	}
}

// HandleHealthCheck handles the liveness endpoint.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: now.UTC(),
		Version:   version.Version,
		Uptime:    now.Sub(h.startTime).Seconds(),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}

// HandleReadiness reports 200 when the CMS answered its last probe, 503 otherwise.
func (h *MonitoringHandlers) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	resp := &responses.ReadinessResponse{
		Status:    "ready",
		Timestamp: h.now().UTC(),
		Checks:    []health.Check{},
	}
	status := http.StatusOK
	if h.readiness != nil {
		resp.Checks = append(resp.Checks, h.readiness.Last())
		if !h.readiness.Ready() {
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
		}
	}
	if err := writeJSON(w, status, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write readiness response").Build())
	}
}
