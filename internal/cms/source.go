// Package cms provides the blog post sources: a WordPress REST client and a
// local Markdown directory.
package cms

import (
	"context"
	"net/http"

	"git.home.luguber.info/inful/agencysite/internal/config"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
	"git.home.luguber.info/inful/agencysite/internal/posts"
	"git.home.luguber.info/inful/agencysite/internal/retry"
)

// Source supplies blog posts.
type Source interface {
	// AllPosts returns every published post, newest first.
	AllPosts(ctx context.Context) ([]posts.Post, error)
	// PostBySlug returns the post with slug, or nil and no error when there is none.
	PostBySlug(ctx context.Context, slug string) (*posts.Post, error)
}

// HealthChecker probes whether a source is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// SourceWithHealth is a Source that can also be probed.
type SourceWithHealth interface {
	Source
	HealthChecker
}

// New builds the source selected by cfg.Kind.
func New(cfg config.CMSConfig, recorder metrics.Recorder) (SourceWithHealth, error) {
	switch cfg.Kind {
	case config.CMSKindWordPress:
		return NewWordPressClient(WordPressOptions{
			BaseURL:     cfg.BaseURL,
			Username:    cfg.Username,
			AppPassword: cfg.AppPassword,
			PerPage:     cfg.PerPage,
			HTTPClient:  &http.Client{Timeout: cfg.Timeout},
			Retry:       retry.FromConfig(cfg.Retry),
			Recorder:    recorder,
		}), nil
	case config.CMSKindLocal:
		return NewLocalSource(cfg.Directory, recorder), nil
	default:
		return nil, errors.ConfigError("unsupported cms kind").
			WithContext("kind", string(cfg.Kind)).
			Build()
	}
}
