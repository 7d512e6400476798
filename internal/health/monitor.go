// Package health probes the CMS on a schedule and reports the result for the
// readiness endpoint and the cms_up gauge.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
)

// Status is the overall health of a dependency.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Pinger is anything that can be probed, such as a CMS source.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is the outcome of one probe.
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	Duration    time.Duration `json:"duration"`
	LastChecked time.Time     `json:"last_checked,omitzero"`
}

// Monitor runs a Pinger on an interval and keeps the latest Check.
type Monitor struct {
	name      string
	target    Pinger
	interval  time.Duration
	timeout   time.Duration
	recorder  metrics.Recorder
	scheduler gocron.Scheduler
	last      atomic.Pointer[Check]
	now       func() time.Time
}

// NewMonitor creates a monitor for target. The first probe runs on Start.
func NewMonitor(name string, target Pinger, interval time.Duration, recorder metrics.Recorder) (*Monitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("health interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	timeout := interval / 2
	if timeout > 10*time.Second {
		timeout = 10 * time.Second
	}

	m := &Monitor{
		name:      name,
		target:    target,
		interval:  interval,
		timeout:   timeout,
		recorder:  metrics.OrNoop(recorder),
		scheduler: s,
		now:       time.Now,
	}
	m.last.Store(&Check{Name: name, Status: StatusUnknown})
	return m, nil
}

// Start schedules the probe and runs it immediately.
func (m *Monitor) Start(ctx context.Context) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(m.probe, ctx),
		gocron.WithName(m.name+"-health"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule health check: %w", err)
	}
	slog.Info("Starting health monitor", logfields.Source(m.name), slog.Duration("interval", m.interval))
	m.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down and waits for a running probe.
func (m *Monitor) Stop() error {
	slog.Info("Stopping health monitor", logfields.Source(m.name))
	return m.scheduler.Shutdown()
}

// Check probes the target now and stores the result.
func (m *Monitor) Check(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := m.now()
	err := m.target.Ping(ctx)
	c := Check{
		Name:        m.name,
		Status:      StatusHealthy,
		Duration:    m.now().Sub(start),
		LastChecked: start,
	}
	if err != nil {
		c.Status = StatusUnhealthy
		c.Message = err.Error()
	}

	prev := m.last.Swap(&c)
	m.recorder.SetCMSUp(err == nil)
	if prev.Status != c.Status {
		if err != nil {
			slog.Warn("Health check failing", logfields.Source(m.name), logfields.Error(err))
		} else {
			slog.Info("Health check passing", logfields.Source(m.name))
		}
	}
	return c
}

func (m *Monitor) probe(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	m.Check(ctx)
}

// Last returns the most recent Check.
func (m *Monitor) Last() Check {
	return *m.last.Load()
}

// Ready reports whether the last probe succeeded.
func (m *Monitor) Ready() bool {
	return m.Last().Status == StatusHealthy
}
