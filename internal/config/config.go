package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

// Config represents the application configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Server     ServerConfig     `yaml:"server"`
	CMS        CMSConfig        `yaml:"cms"`
	Contact    ContactConfig    `yaml:"contact"`
	Content    ContentConfig    `yaml:"content"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SiteConfig is the public identity of the agency.
type SiteConfig struct {
	Name    string          `yaml:"name"`
	Tagline string          `yaml:"tagline,omitempty"`
	BaseURL string          `yaml:"base_url"`
	Email   string          `yaml:"email,omitempty"`
	Phone   string          `yaml:"phone,omitempty"`
	Logo    string          `yaml:"logo,omitempty"`
	Social  []SocialLink    `yaml:"social,omitempty"`
	Service []ServiceConfig `yaml:"services,omitempty"`
}

// SocialLink is a named external profile.
type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ServiceConfig describes one offered service shown on the home and services pages.
type ServiceConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon,omitempty"`
}

// ServerConfig controls the public site listener and the admin listener.
type ServerConfig struct {
	Host            string        `yaml:"host,omitempty"`
	Port            int           `yaml:"port"`
	AdminPort       int           `yaml:"admin_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty"`
	IdleTimeout     time.Duration `yaml:"idle_timeout,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
	Compression     *bool         `yaml:"compression,omitempty"`
}

// CompressionEnabled reports whether brotli response compression is on (default true).
func (s ServerConfig) CompressionEnabled() bool {
	return s.Compression == nil || *s.Compression
}

// CMSConfig selects and configures the blog content source.
type CMSConfig struct {
	Kind        CMSKind       `yaml:"kind"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	Username    string        `yaml:"username,omitempty"`
	AppPassword string        `yaml:"app_password,omitempty"`
	PerPage     int           `yaml:"per_page,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	Directory   string        `yaml:"directory,omitempty"`
	Retry       RetryConfig   `yaml:"retry,omitempty"`
}

// RetryConfig is the transport retry policy for CMS requests.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff,omitempty"`
	Initial    time.Duration    `yaml:"initial,omitempty"`
	Max        time.Duration    `yaml:"max,omitempty"`
	MaxRetries int              `yaml:"max_retries,omitempty"`
}

// ContactConfig controls where accepted leads are relayed.
type ContactConfig struct {
	Notifier NotifierKind `yaml:"notifier"`
	NATS     NATSConfig   `yaml:"nats,omitempty"`
}

// NATSConfig configures JetStream lead publishing.
type NATSConfig struct {
	URL     string        `yaml:"url,omitempty"`
	Stream  string        `yaml:"stream,omitempty"`
	Subject string        `yaml:"subject,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ContentConfig locates static marketing pages.
type ContentConfig struct {
	PagesDir string `yaml:"pages_dir"`
	Watch    bool   `yaml:"watch,omitempty"`
}

// MonitoringConfig controls metrics exposure and the CMS health probe.
type MonitoringConfig struct {
	Metrics        bool          `yaml:"metrics"`
	HealthInterval time.Duration `yaml:"health_interval,omitempty"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load loads configuration from the specified file. An empty path yields the defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
				WithContext("path", configPath).
				Build()
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	compression := true
	example := Config{
		Site: SiteConfig{
			Name:    "Northwind Digital",
			Tagline: "Websites that earn their keep",
			BaseURL: "https://www.example.com",
			Email:   "hello@example.com",
			Social: []SocialLink{
				{Name: "LinkedIn", URL: "https://www.linkedin.com/company/example"},
			},
			Service: []ServiceConfig{
				{Title: "Web Design", Description: "Fast, accessible marketing sites."},
				{Title: "SEO", Description: "Technical audits and content strategy."},
				{Title: "Digital Marketing", Description: "Campaigns that convert."},
			},
		},
		Server: ServerConfig{
			Port:        8080,
			AdminPort:   9090,
			Compression: &compression,
		},
		CMS: CMSConfig{
			Kind:        CMSKindWordPress,
			BaseURL:     "https://cms.example.com",
			Username:    "${WP_USERNAME}",
			AppPassword: "${WP_APP_PASSWORD}",
			PerPage:     100,
		},
		Contact: ContactConfig{
			Notifier: NotifierLog,
			NATS: NATSConfig{
				URL:     "nats://127.0.0.1:4222",
				Stream:  "LEADS",
				Subject: "leads.contact",
			},
		},
		Content:    ContentConfig{PagesDir: "content/pages", Watch: true},
		Monitoring: MonitoringConfig{Metrics: true, HealthInterval: 30 * time.Second},
		Logging:    LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- config file is not a secret; credentials are env references
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
