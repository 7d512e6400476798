package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/agencysite/internal/contact"
	"git.home.luguber.info/inful/agencysite/internal/health"
	"git.home.luguber.info/inful/agencysite/internal/server/responses"
)

type recordingNotifier struct {
	mu    sync.Mutex
	leads []contact.Lead
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, lead contact.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.leads = append(n.leads, lead)
	return nil
}

func postContact(t *testing.T, h *ContactHandlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.HandleContact(rec, req)
	return rec
}

func TestHandleContact(t *testing.T) {
	valid := `{"name":"Ada","email":"ada@example.com","message":"We need a new site"}`

	tests := []struct {
		name       string
		body       string
		notifyErr  error
		wantStatus int
		wantLeads  int
		wantCode   string
	}{
		{name: "accepted", body: valid, wantStatus: http.StatusOK, wantLeads: 1},
		{name: "honeypot", body: `{"name":"Bot","email":"b@example.com","message":"x","website":"http://spam"}`, wantStatus: http.StatusOK},
		{name: "missing email", body: `{"name":"Ada","message":"hi"}`, wantStatus: http.StatusBadRequest, wantCode: "validation"},
		{name: "malformed", body: `{"name":`, wantStatus: http.StatusBadRequest, wantCode: "validation"},
		{name: "empty", body: ``, wantStatus: http.StatusBadRequest, wantCode: "validation"},
		{name: "relay failure", body: valid, notifyErr: errors.New("nats down"), wantStatus: http.StatusBadGateway, wantCode: "notify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{err: tt.notifyErr}
			h := NewContactHandlers(contact.NewService(n, nil))

			rec := postContact(t, h, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			require.Len(t, n.leads, tt.wantLeads)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantCode != "" {
				require.Equal(t, "error", body["status"])
				require.Equal(t, tt.wantCode, body["code"])
				return
			}
			require.Equal(t, "ok", body["status"])
		})
	}
}

func TestHandleContactRecordsClientAddress(t *testing.T) {
	n := &recordingNotifier{}
	h := NewContactHandlers(contact.NewService(n, nil))

	rec := postContact(t, h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp responses.ContactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, n.leads, 1)
	require.Equal(t, n.leads[0].ID, resp.LeadID)
	require.Equal(t, "203.0.113.7", n.leads[0].RemoteAddr)
}

func TestHandleContactRejectsOversizedBody(t *testing.T) {
	h := NewContactHandlers(contact.NewService(&recordingNotifier{}, nil))
	big := `{"name":"Ada","email":"ada@example.com","message":"` + strings.Repeat("a", MaxContactBody) + `"}`

	rec := postContact(t, h, big)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "too large")
}

type staticReadiness struct{ check health.Check }

func (s staticReadiness) Ready() bool        { return s.check.Status == health.StatusHealthy }
func (s staticReadiness) Last() health.Check { return s.check }

func TestMonitoringHandlers(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("healthz", func(t *testing.T) {
		h := NewMonitoringHandlers(start, nil)
		h.now = func() time.Time { return start.Add(90 * time.Second) }

		rec := httptest.NewRecorder()
		h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp responses.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "healthy", resp.Status)
		require.InDelta(t, 90.0, resp.Uptime, 0.001)
	})

	t.Run("ready without monitor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMonitoringHandlers(start, nil).HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready when cms unhealthy", func(t *testing.T) {
		src := staticReadiness{check: health.Check{Name: "cms", Status: health.StatusUnhealthy, Message: "timeout"}}
		rec := httptest.NewRecorder()
		NewMonitoringHandlers(start, src).HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp responses.ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "not_ready", resp.Status)
		require.Len(t, resp.Checks, 1)
		require.Equal(t, "timeout", resp.Checks[0].Message)
	})
}

func TestNotModified(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	require.False(t, notModified(req, `"abc"`))

	req.Header.Set("If-None-Match", `"xyz", "abc"`)
	require.True(t, notModified(req, `"abc"`))

	req.Header.Set("If-None-Match", `W/"abc"`)
	require.True(t, notModified(req, `"abc"`))

	req.Header.Set("If-None-Match", `"other"`)
	require.False(t, notModified(req, `"abc"`))
}
