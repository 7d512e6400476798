// Package daemon assembles the long-running site process: CMS source, page
// registry and watcher, lead relay, health monitor and the HTTP servers.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/cms"
	"git.home.luguber.info/inful/agencysite/internal/config"
	"git.home.luguber.info/inful/agencysite/internal/contact"
	"git.home.luguber.info/inful/agencysite/internal/health"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
	"git.home.luguber.info/inful/agencysite/internal/pages"
	"git.home.luguber.info/inful/agencysite/internal/server/httpserver"
	"git.home.luguber.info/inful/agencysite/internal/site"
	"git.home.luguber.info/inful/agencysite/internal/version"
	"git.home.luguber.info/inful/agencysite/internal/view"
)

// Status is the lifecycle state of the daemon.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// Daemon owns every long-lived component of the site.
type Daemon struct {
	cfg       *config.Config
	mu        sync.Mutex
	status    atomic.Value
	startTime time.Time

	recorder   metrics.Recorder
	source     cms.SourceWithHealth
	notifier   contact.Notifier
	registry   *pages.Registry
	watcher    *pages.Watcher
	monitor    *health.Monitor
	httpServer *httpserver.Server
}

// New wires all components from cfg. Nothing listens until Start.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	d := &Daemon{cfg: cfg}
	d.status.Store(StatusStopped)

	metricsHandler := d.setupMetrics()

	source, err := cms.New(cfg.CMS, d.recorder)
	if err != nil {
		return nil, err
	}
	d.source = source

	notifier, err := newNotifier(ctx, cfg.Contact)
	if err != nil {
		return nil, err
	}
	d.notifier = notifier

	d.registry = pages.NewRegistry(cfg.Content.PagesDir, d.recorder)
	if err := d.registry.Reload(); err != nil {
		d.closeNotifier()
		return nil, fmt.Errorf("load pages: %w", err)
	}
	if cfg.Content.Watch {
		w, err := pages.NewWatcher(d.registry, pages.DefaultDebounce)
		if err != nil {
			d.closeNotifier()
			return nil, err
		}
		d.watcher = w
	}

	d.monitor, err = health.NewMonitor("cms", source, cfg.Monitoring.HealthInterval, d.recorder)
	if err != nil {
		d.closeNotifier()
		return nil, err
	}

	renderer, err := view.New()
	if err != nil {
		d.closeNotifier()
		return nil, err
	}

	d.httpServer = httpserver.New(cfg.Server, httpserver.Deps{
		Profile:        site.NewProfile(cfg.Site),
		Pages:          d.registry,
		Source:         source,
		Renderer:       renderer,
		Contact:        contact.NewService(notifier, d.recorder),
		Readiness:      d.monitor,
		Recorder:       d.recorder,
		MetricsHandler: metricsHandler,
	})
	return d, nil
}

func (d *Daemon) setupMetrics() http.Handler {
	if !d.cfg.Monitoring.Metrics {
		d.recorder = metrics.NoopRecorder{}
		return nil
	}
	reg := metrics.NewRegistry()
	d.recorder = metrics.NewPrometheusRecorder(reg)
	return metrics.HTTPHandler(reg)
}

func newNotifier(ctx context.Context, cfg config.ContactConfig) (contact.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierNATS:
		return contact.NewNATSNotifier(ctx, cfg.NATS)
	default:
		return contact.NewLogNotifier(slog.Default()), nil
	}
}

// Start brings up the servers, the health monitor and the page watcher.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s := d.GetStatus(); s != StatusStopped {
		return fmt.Errorf("daemon is not in stopped state: %s", s)
	}
	d.status.Store(StatusStarting)
	d.startTime = time.Now()
	slog.Info("Starting agencysite", slog.String("version", version.Version))

	if err := d.httpServer.Start(ctx); err != nil {
		d.status.Store(StatusError)
		return err
	}

	if err := d.monitor.Start(ctx); err != nil {
		d.status.Store(StatusError)
		return err
	}

	if d.watcher != nil {
		if err := d.watcher.Start(ctx); err != nil {
			slog.Error("Failed to start pages watcher", logfields.Error(err))
		}
	}

	d.status.Store(StatusRunning)
	slog.Info("agencysite started",
		slog.String("site_name", d.cfg.Site.Name),
		slog.String("cms", string(d.cfg.CMS.Kind)),
		slog.String("notifier", string(d.cfg.Contact.Notifier)),
		slog.Int("pages", len(d.registry.All())))
	return nil
}

// Stop shuts everything down in reverse start order.
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.GetStatus() == StatusStopped {
		return nil
	}
	d.status.Store(StatusStopping)

	var errs []error
	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("pages watcher: %w", err))
		}
	}
	if err := d.monitor.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("health monitor: %w", err))
	}
	if err := d.httpServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := d.closeNotifier(); err != nil {
		errs = append(errs, fmt.Errorf("lead notifier: %w", err))
	}

	d.status.Store(StatusStopped)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	slog.Info("agencysite stopped", slog.Duration("uptime", time.Since(d.startTime)))
	return nil
}

// Run starts the daemon, blocks until ctx is cancelled, then stops it
// within the configured shutdown timeout.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping")

	stopCtx, cancel := context.WithTimeout(context.Background(), d.cfg.Server.ShutdownTimeout)
	defer cancel()
	return d.Stop(stopCtx)
}

func (d *Daemon) closeNotifier() error {
	if c, ok := d.notifier.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// GetStatus returns the current lifecycle state.
func (d *Daemon) GetStatus() Status {
	return d.status.Load().(Status)
}

// Addr returns the bound address of the "site" or "admin" listener.
func (d *Daemon) Addr(name string) net.Addr {
	return d.httpServer.Addr(name)
}
