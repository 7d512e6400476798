package errors

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: http.StatusOK},
		{name: "validation", err: ValidationError("invalid input").Build(), expected: http.StatusBadRequest},
		{name: "not found", err: NotFoundError("missing").Build(), expected: http.StatusNotFound},
		{name: "network", err: NetworkError("unreachable").Build(), expected: http.StatusBadGateway},
		{name: "cms", err: CMSError("bad payload").Build(), expected: http.StatusBadGateway},
		{name: "notify", err: NotifyError("relay failed").Build(), expected: http.StatusBadGateway},
		{name: "runtime", err: RuntimeError("shutting down").Build(), expected: http.StatusServiceUnavailable},
		{name: "internal", err: InternalError("bug").Build(), expected: http.StatusInternalServerError},
		{name: "unclassified", err: stderrors.New("unknown"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.StatusCodeFor(tt.err))
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	rec := httptest.NewRecorder()

	err := ValidationError("email is required").WithContext("field", "email").Build()
	adapter.WriteErrorResponse(rec, req, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var payload HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "error", payload.Status)
	require.Equal(t, "email is required", payload.Error)
	require.Equal(t, "validation", payload.Code)
	require.Equal(t, "email", payload.Details["field"])
	require.False(t, payload.Retryable)
}

func TestHTTPErrorAdapter_HidesUnclassifiedMessages(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	resp := adapter.FormatErrorResponse(stderrors.New("dial tcp 10.0.0.5:5432: secret detail"))

	require.Equal(t, "internal error", resp.Error)
	require.Equal(t, "internal", resp.Code)
}

func TestHTTPErrorAdapter_RetryableFlag(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	resp := adapter.FormatErrorResponse(NetworkError("timeout").Build())

	require.True(t, resp.Retryable)
}
