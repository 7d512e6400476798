package metrics

import "time"

// LeadOutcome enumerates what happened to a contact form submission.
type LeadOutcome string

const (
	LeadAccepted LeadOutcome = "accepted"
	LeadSpam     LeadOutcome = "spam"
	LeadInvalid  LeadOutcome = "invalid"
	LeadFailed   LeadOutcome = "failed"
)

// Recorder defines observability hooks for request, CMS and lead metrics.
type Recorder interface {
	ObserveHTTPRequest(route, method string, status int, d time.Duration)
	ObserveCMSFetch(op string, d time.Duration, success bool)
	IncCMSRetry(op string)
	IncLeadOutcome(outcome LeadOutcome)
	SetCMSUp(up bool)
	IncPageReload(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (NoopRecorder) ObserveCMSFetch(string, time.Duration, bool)          {}
func (NoopRecorder) IncCMSRetry(string)                                    {}
func (NoopRecorder) IncLeadOutcome(LeadOutcome)                            {}
func (NoopRecorder) SetCMSUp(bool)                                         {}
func (NoopRecorder) IncPageReload(bool)                                    {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
