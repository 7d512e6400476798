package contact

import (
	"context"
	"time"
)

// Lead is an accepted submission with delivery metadata.
type Lead struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Service    string    `json:"service,omitempty"`
	Budget     string    `json:"budget,omitempty"`
	Message    string    `json:"message"`
}

// RequestMeta is the request context recorded on a lead.
type RequestMeta struct {
	RemoteAddr string
	UserAgent  string
}

// Notifier relays accepted leads.
type Notifier interface {
	Notify(ctx context.Context, lead Lead) error
}

func newLead(id string, at time.Time, s Submission, meta RequestMeta) Lead {
	return Lead{
		ID:         id,
		ReceivedAt: at.UTC(),
		RemoteAddr: meta.RemoteAddr,
		UserAgent:  meta.UserAgent,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Company:    s.Company,
		Service:    s.Service,
		Budget:     s.Budget,
		Message:    s.Message,
	}
}
