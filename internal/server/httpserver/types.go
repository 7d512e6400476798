package httpserver

import (
	"net/http"

	"git.home.luguber.info/inful/agencysite/internal/cms"
	"git.home.luguber.info/inful/agencysite/internal/contact"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
	"git.home.luguber.info/inful/agencysite/internal/pages"
	"git.home.luguber.info/inful/agencysite/internal/server/handlers"
	"git.home.luguber.info/inful/agencysite/internal/site"
	"git.home.luguber.info/inful/agencysite/internal/view"
)

// Deps are the collaborators the servers route to.
type Deps struct {
	Profile  site.Profile
	Pages    *pages.Registry
	Source   cms.Source
	Renderer *view.Renderer
	Contact  *contact.Service

	// Optional: readiness source for /readyz. Nil means always ready.
	Readiness handlers.ReadinessSource
	// Optional: request metrics recorder.
	Recorder metrics.Recorder
	// Optional: Prometheus exposition handler mounted at /metrics.
	MetricsHandler http.Handler
}
