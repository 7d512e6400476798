package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/agencysite/internal/config"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
)

// publisher is the part of jetstream.JetStream the notifier needs.
type publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NATSNotifier publishes leads as JSON to a JetStream subject.
type NATSNotifier struct {
	conn    *nats.Conn
	js      publisher
	subject string
	timeout time.Duration
}

// NewNATSNotifier connects to cfg.URL and ensures the lead stream exists.
func NewNATSNotifier(ctx context.Context, cfg config.NATSConfig) (*NATSNotifier, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("agencysite"),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("NATS lead notifier initialized",
		logfields.URL(cfg.URL),
		slog.String("stream", cfg.Stream),
		slog.String("subject", cfg.Subject))

	return &NATSNotifier{conn: conn, js: js, subject: cfg.Subject, timeout: cfg.Timeout}, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, cfg config.NATSConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        cfg.Stream,
		Description: "Contact form leads",
		Subjects:    []string{cfg.Subject},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Duplicates:  2 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", cfg.Stream, err)
	}
	return nil
}

// Notify publishes lead. The lead ID is used as the message ID so JetStream
// drops duplicates inside its dedupe window.
func (n *NATSNotifier) Notify(ctx context.Context, lead Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead: %w", err)
	}

	timeout := n.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ack, err := n.js.Publish(ctx, n.subject, data, jetstream.WithMsgID(lead.ID))
	if err != nil {
		return fmt.Errorf("failed to publish lead: %w", err)
	}

	slog.DebugContext(ctx, "Published lead",
		logfields.LeadID(lead.ID),
		slog.String("stream", ack.Stream),
		slog.Uint64("seq", ack.Sequence))
	return nil
}

// Close closes the NATS connection.
func (n *NATSNotifier) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
