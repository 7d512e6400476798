// Package contact validates contact form submissions and relays accepted
// leads to a notifier.
package contact

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

// Submission is the JSON body posted to /api/contact. Website, PhoneNumber and
// URLField are honeypots: hidden fields that people leave empty and bots fill in.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Service string `json:"service,omitempty"`
	Budget  string `json:"budget,omitempty"`
	Message string `json:"message"`

	Website     string `json:"website,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	URLField    string `json:"url_field,omitempty"`
}

// IsSpam reports whether any honeypot field was filled in.
func (s Submission) IsSpam() bool {
	return strings.TrimSpace(s.Website) != "" ||
		strings.TrimSpace(s.PhoneNumber) != "" ||
		strings.TrimSpace(s.URLField) != ""
}

// fieldLimits caps each field in characters.
var fieldLimits = []struct {
	name     string
	get      func(*Submission) *string
	max      int
	required bool
}{
	{"name", func(s *Submission) *string { return &s.Name }, 100, true},
	{"email", func(s *Submission) *string { return &s.Email }, 254, true},
	{"phone", func(s *Submission) *string { return &s.Phone }, 40, false},
	{"company", func(s *Submission) *string { return &s.Company }, 120, false},
	{"service", func(s *Submission) *string { return &s.Service }, 80, false},
	{"budget", func(s *Submission) *string { return &s.Budget }, 80, false},
	{"message", func(s *Submission) *string { return &s.Message }, 5000, true},
}

// Normalized returns a copy with surrounding whitespace trimmed from every field.
func (s Submission) Normalized() Submission {
	out := s
	for _, f := range fieldLimits {
		p := f.get(&out)
		*p = strings.TrimSpace(*p)
	}
	return out
}

// Validate checks required fields, lengths and the email address. The error
// is a validation error naming the first offending field.
func (s Submission) Validate() error {
	n := s.Normalized()
	for _, f := range fieldLimits {
		v := *f.get(&n)
		if f.required && v == "" {
			return errors.ValidationError(f.name+" is required").WithContext("field", f.name).Build()
		}
		if utf8.RuneCountInString(v) > f.max {
			return errors.ValidationError(f.name+" is too long").
				WithContext("field", f.name).
				WithContext("max", f.max).
				Build()
		}
	}

	if !validEmail(n.Email) {
		return errors.ValidationError("email is not a valid address").WithContext("field", "email").Build()
	}
	return nil
}

// validEmail accepts a bare RFC 5322 address whose domain has a dot.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}
