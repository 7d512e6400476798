// Package responses defines the JSON bodies returned by the site and admin servers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/agencysite/internal/health"
)

// HealthResponse is the liveness payload served at /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// ReadinessResponse is served at /readyz.
type ReadinessResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Checks    []health.Check `json:"checks"`
}

// ContactResponse acknowledges a contact submission.
type ContactResponse struct {
	Status string `json:"status"`
	LeadID string `json:"lead_id,omitempty"`
}
