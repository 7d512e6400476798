// Package site holds the agency profile shared by every rendered page and the
// structured data (JSON-LD) emitted for search engines.
package site

import (
	"strings"

	"git.home.luguber.info/inful/agencysite/internal/config"
)

// Service is one offering listed on the home and services pages.
type Service struct {
	Title       string
	Description string
	Icon        string
}

// SocialLink is a named external profile of the agency.
type SocialLink struct {
	Name string
	URL  string
}

// Profile is the immutable description of the agency. Build it once with
// NewProfile and pass it by value.
type Profile struct {
	Name     string
	Tagline  string
	BaseURL  string
	Email    string
	Phone    string
	Logo     string
	Services []Service
	Social   []SocialLink
}

// NewProfile copies the site section of the configuration.
func NewProfile(cfg config.SiteConfig) Profile {
	p := Profile{
		Name:    cfg.Name,
		Tagline: cfg.Tagline,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Email:   cfg.Email,
		Phone:   cfg.Phone,
		Logo:    cfg.Logo,
	}
	for _, s := range cfg.Service {
		p.Services = append(p.Services, Service{Title: s.Title, Description: s.Description, Icon: s.Icon})
	}
	for _, l := range cfg.Social {
		p.Social = append(p.Social, SocialLink{Name: l.Name, URL: l.URL})
	}
	return p
}

// URL joins path to the base URL.
func (p Profile) URL(path string) string {
	if path == "" || path == "/" {
		return p.BaseURL + "/"
	}
	return p.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// LogoURL returns the absolute logo URL, or "" when no logo is configured.
func (p Profile) LogoURL() string {
	logo := strings.TrimSpace(p.Logo)
	switch {
	case logo == "":
		return ""
	case strings.HasPrefix(logo, "http"):
		return logo
	default:
		return p.URL(logo)
	}
}
