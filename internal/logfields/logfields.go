package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyResponseSz = "response_size"
	KeySlug       = "slug"
	KeyQuery      = "query"
	KeyPage       = "page"
	KeyLeadID     = "lead_id"
	KeyOutcome    = "outcome"
	KeySource     = "source"
	KeyURL        = "url"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyAttempt    = "attempt"
	KeyError      = "error"
)

func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func ResponseSize(n int) slog.Attr    { return slog.Int(KeyResponseSz, n) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Query(q string) slog.Attr        { return slog.String(KeyQuery, q) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func LeadID(id string) slog.Attr      { return slog.String(KeyLeadID, id) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
