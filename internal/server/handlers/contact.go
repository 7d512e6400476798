package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/agencysite/internal/contact"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
	"git.home.luguber.info/inful/agencysite/internal/observability"
	"git.home.luguber.info/inful/agencysite/internal/server/responses"
)

// MaxContactBody caps the contact request body.
const MaxContactBody = 64 << 10

// ContactHandlers serves the lead capture endpoint.
type ContactHandlers struct {
	service      *contact.Service
	errorAdapter *errors.HTTPErrorAdapter
}

// NewContactHandlers creates the contact endpoint around service.
func NewContactHandlers(service *contact.Service) *ContactHandlers {
	return &ContactHandlers{
		service:      service,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleContact accepts a JSON submission. Spam is acknowledged like a real
// lead so bots cannot tell the difference.
func (h *ContactHandlers) HandleContact(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(w, r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.service.Submit(r.Context(), sub, contact.RequestMeta{
		RemoteAddr: clientAddr(r),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.ContactResponse{Status: "ok"}
	if res.Outcome == metrics.LeadAccepted {
		resp.LeadID = res.LeadID
		observability.InfoContext(r.Context(), "Lead accepted", logfields.LeadID(res.LeadID))
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write contact response").Build())
	}
}

func decodeSubmission(w http.ResponseWriter, r *http.Request) (contact.Submission, error) {
	var sub contact.Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxContactBody))
	if err := dec.Decode(&sub); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return sub, errors.ValidationError("request body too large").
				WithContext("limit_bytes", MaxContactBody).
				Build()
		case stderrors.Is(err, io.EOF):
			return sub, errors.ValidationError("request body is empty").Build()
		default:
			return sub, errors.WrapError(err, errors.CategoryValidation, "invalid JSON body").
				Warning().
				Build()
		}
	}
	return sub, nil
}

// clientAddr prefers the first X-Forwarded-For hop set by a reverse proxy.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}
