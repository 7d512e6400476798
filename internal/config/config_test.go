package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agencysite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 9090, cfg.Server.AdminPort)
	require.Equal(t, CMSKindLocal, cfg.CMS.Kind)
	require.Equal(t, "content/posts", cfg.CMS.Directory)
	require.Equal(t, NotifierLog, cfg.Contact.Notifier)
	require.Equal(t, "content/pages", cfg.Content.PagesDir)
	require.Equal(t, 30*time.Second, cfg.Monitoring.HealthInterval)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.True(t, cfg.Server.CompressionEnabled())
	require.Len(t, cfg.Site.Service, 3)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("AGENCY_WP_PASSWORD", "s3cret")
	path := writeConfig(t, `
site:
  name: Acme
  base_url: https://acme.example/
cms:
  base_url: https://cms.acme.example
  username: editor
  app_password: ${AGENCY_WP_PASSWORD}
  timeout: 3s
server:
  compression: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "https://acme.example", cfg.Site.BaseURL)
	require.Equal(t, CMSKindWordPress, cfg.CMS.Kind)
	require.Equal(t, "s3cret", cfg.CMS.AppPassword)
	require.Equal(t, 3*time.Second, cfg.CMS.Timeout)
	require.Equal(t, RetryBackoffExponential, cfg.CMS.Retry.Backoff)
	require.Equal(t, 2, cfg.CMS.Retry.MaxRetries)
	require.False(t, cfg.Server.CompressionEnabled())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "site: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "relative base url",
			yaml:    "site:\n  base_url: example.com\n",
			wantErr: "site.base_url",
		},
		{
			name:    "bad email",
			yaml:    "site:\n  email: not-an-email\n",
			wantErr: "site.email",
		},
		{
			name:    "same ports",
			yaml:    "server:\n  port: 8000\n  admin_port: 8000\n",
			wantErr: "must differ",
		},
		{
			name:    "unknown cms kind",
			yaml:    "cms:\n  kind: drupal\n",
			wantErr: "cms.kind",
		},
		{
			name:    "wordpress without base url",
			yaml:    "cms:\n  kind: wordpress\n",
			wantErr: "cms.base_url",
		},
		{
			name:    "half credentials",
			yaml:    "cms:\n  base_url: https://cms.example\n  username: bob\n",
			wantErr: "set together",
		},
		{
			name:    "nats without url",
			yaml:    "contact:\n  notifier: nats\n",
			wantErr: "contact.nats.url",
		},
		{
			name:    "unknown notifier",
			yaml:    "contact:\n  notifier: smtp\n",
			wantErr: "contact.notifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agencysite.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, CMSKindWordPress, cfg.CMS.Kind)
	require.Equal(t, 30*time.Second, cfg.Monitoring.HealthInterval)

	err = Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}

func TestLogLevelNormalization(t *testing.T) {
	require.Equal(t, LogLevelWarn, NormalizeLogLevel(" WARNING "))
	require.Equal(t, LogLevelInfo, NormalizeLogLevel("chatty"))
	require.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	require.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
}
