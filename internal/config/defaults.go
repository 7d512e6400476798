package config

import (
	"strings"
	"time"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&SiteDefaultApplier{},
		&ServerDefaultApplier{},
		&CMSDefaultApplier{},
		&ContactDefaultApplier{},
		&ContentDefaultApplier{},
		&MonitoringDefaultApplier{},
		&LoggingDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// SiteDefaultApplier handles site identity defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Name == "" {
		cfg.Site.Name = "Digital Agency"
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "http://localhost:8080"
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")
	if len(cfg.Site.Service) == 0 {
		cfg.Site.Service = []ServiceConfig{
			{Title: "Web Design", Description: "Responsive sites built for speed and conversion.", Icon: "layout"},
			{Title: "SEO", Description: "Technical audits, content strategy and local search.", Icon: "search"},
			{Title: "Digital Marketing", Description: "Paid campaigns and analytics that report what works.", Icon: "trending-up"},
		}
	}
	return nil
}

// ServerDefaultApplier handles listener defaults.
type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config) error {
	s := &cfg.Server
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.AdminPort == 0 {
		s.AdminPort = 9090
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = 15 * time.Second
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
	return nil
}

// CMSDefaultApplier handles CMS source defaults. With no kind and no base URL the
// local directory source is used.
type CMSDefaultApplier struct{}

func (CMSDefaultApplier) Domain() string { return "cms" }

func (CMSDefaultApplier) ApplyDefaults(cfg *Config) error {
	c := &cfg.CMS
	switch {
	case c.Kind != "":
		if k, err := cmsKindNormalizer.NormalizeWithError(string(c.Kind)); err == nil {
			c.Kind = k
		}
	case c.BaseURL != "":
		c.Kind = CMSKindWordPress
	default:
		c.Kind = CMSKindLocal
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.PerPage <= 0 || c.PerPage > 100 {
		c.PerPage = 100
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Directory == "" {
		c.Directory = "content/posts"
	}
	r := &c.Retry
	r.Backoff = retryBackoffNormalizer.Normalize(string(r.Backoff))
	if r.Initial <= 0 {
		r.Initial = 200 * time.Millisecond
	}
	if r.Max <= 0 {
		r.Max = 2 * time.Second
	}
	if r.MaxRetries < 0 {
		r.MaxRetries = 0
	}
	if r.MaxRetries == 0 {
		r.MaxRetries = 2
	}
	return nil
}

// ContactDefaultApplier handles lead relay defaults.
type ContactDefaultApplier struct{}

func (ContactDefaultApplier) Domain() string { return "contact" }

func (ContactDefaultApplier) ApplyDefaults(cfg *Config) error {
	c := &cfg.Contact
	if c.Notifier == "" {
		c.Notifier = NotifierLog
	}
	if c.NATS.Stream == "" {
		c.NATS.Stream = "LEADS"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "leads.contact"
	}
	if c.NATS.Timeout <= 0 {
		c.NATS.Timeout = 5 * time.Second
	}
	return nil
}

// ContentDefaultApplier handles static page defaults.
type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Content.PagesDir == "" {
		cfg.Content.PagesDir = "content/pages"
	}
	return nil
}

// MonitoringDefaultApplier handles health probe defaults.
type MonitoringDefaultApplier struct{}

func (MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (MonitoringDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Monitoring.HealthInterval <= 0 {
		cfg.Monitoring.HealthInterval = 30 * time.Second
	}
	return nil
}

// LoggingDefaultApplier normalizes log settings.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}
