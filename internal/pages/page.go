// Package pages loads the static marketing pages (home, about, services and
// friends) from Markdown files and keeps them in an atomically swapped
// registry that a file watcher can refresh while the server is running.
package pages

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/agencysite/internal/frontmatter"
	"git.home.luguber.info/inful/agencysite/internal/markdown"
)

// HomeSlug is the page served at "/".
const HomeSlug = "home"

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Page is a rendered static page.
type Page struct {
	Slug        string
	Title       string
	Description string
	Order       int
	Nav         bool
	HTML        string
	// Fingerprint is the mdfp hash of frontmatter and body.
	Fingerprint string
}

// Path is the URL path the page is served at.
func (p Page) Path() string {
	if p.Slug == HomeSlug {
		return "/"
	}
	return "/" + p.Slug
}

// ETag is the strong entity tag derived from the fingerprint.
func (p Page) ETag() string {
	return `"` + p.Fingerprint + `"`
}

type pageMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
	Nav         *bool  `yaml:"nav"`
}

// slugFromFile maps "about.md" to "about"; "index.md" is the home page.
func slugFromFile(name string) string {
	slug := strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if slug == "index" {
		return HomeSlug
	}
	return slug
}

// parse renders one page document.
func parse(slug string, raw []byte, r *markdown.Renderer) (Page, error) {
	if !slugPattern.MatchString(slug) {
		return Page{}, fmt.Errorf("invalid page slug %q", slug)
	}

	fm, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return Page{}, err
	}

	var meta pageMatter
	if len(bytes.TrimSpace(fm)) > 0 {
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return Page{}, fmt.Errorf("decode frontmatter: %w", err)
		}
	}

	html, err := r.Render(body)
	if err != nil {
		return Page{}, fmt.Errorf("render markdown: %w", err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = strings.ToUpper(slug[:1]) + strings.ReplaceAll(slug[1:], "-", " ")
	}

	return Page{
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(meta.Description),
		Order:       meta.Order,
		Nav:         meta.Nav == nil || *meta.Nav,
		HTML:        html,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(fm), string(body)),
	}, nil
}
