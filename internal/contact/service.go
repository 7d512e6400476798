package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
)

// Result is what the endpoint reports back for a submission that was not rejected.
type Result struct {
	Outcome metrics.LeadOutcome
	LeadID  string
}

// Service applies the spam check and validation, then relays accepted leads.
type Service struct {
	notifier Notifier
	recorder metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// NewService creates a Service relaying through notifier.
func NewService(notifier Notifier, recorder metrics.Recorder) *Service {
	if notifier == nil {
		notifier = NewLogNotifier(nil)
	}
	return &Service{
		notifier: notifier,
		recorder: metrics.OrNoop(recorder),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit handles one submission. Spam is reported as a success with outcome
// spam and is never relayed. Validation failures return a validation error;
// relay failures return a notify error. Nothing is retried.
func (s *Service) Submit(ctx context.Context, sub Submission, meta RequestMeta) (Result, error) {
	if sub.IsSpam() {
		s.recorder.IncLeadOutcome(metrics.LeadSpam)
		slog.InfoContext(ctx, "Discarded spam submission", logfields.RemoteAddr(meta.RemoteAddr))
		return Result{Outcome: metrics.LeadSpam}, nil
	}

	if err := sub.Validate(); err != nil {
		s.recorder.IncLeadOutcome(metrics.LeadInvalid)
		return Result{Outcome: metrics.LeadInvalid}, err
	}

	lead := newLead(s.newID(), s.now(), sub.Normalized(), meta)
	if err := s.notifier.Notify(ctx, lead); err != nil {
		s.recorder.IncLeadOutcome(metrics.LeadFailed)
		return Result{Outcome: metrics.LeadFailed, LeadID: lead.ID},
			errors.WrapError(err, errors.CategoryNotify, "failed to relay lead").
				WithContext("lead_id", lead.ID).
				Build()
	}

	s.recorder.IncLeadOutcome(metrics.LeadAccepted)
	return Result{Outcome: metrics.LeadAccepted, LeadID: lead.ID}, nil
}
