package contact

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/agencysite/internal/logfields"
)

// LogNotifier writes each lead as one structured log line.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier; a nil logger uses slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, lead Lead) error {
	n.logger.LogAttrs(ctx, slog.LevelInfo, "New lead received",
		logfields.LeadID(lead.ID),
		slog.String("name", lead.Name),
		slog.String("email", lead.Email),
		slog.String("company", lead.Company),
		slog.String("service", lead.Service),
		slog.String("budget", lead.Budget),
		slog.Int("message_length", len(lead.Message)),
	)
	return nil
}
