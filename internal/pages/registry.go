package pages

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/markdown"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
)

type snapshot struct {
	bySlug map[string]Page
	nav    []Page
}

// Registry holds the current set of pages. Reads never block; Reload swaps
// in a complete new set or keeps the old one on failure.
type Registry struct {
	dir      string
	renderer *markdown.Renderer
	recorder metrics.Recorder
	current  atomic.Pointer[snapshot]
}

// NewRegistry creates an empty registry for dir. Call Reload before use.
func NewRegistry(dir string, recorder metrics.Recorder) *Registry {
	r := &Registry{
		dir:      dir,
		renderer: markdown.NewRenderer(markdown.Options{Unsafe: true}),
		recorder: metrics.OrNoop(recorder),
	}
	r.current.Store(&snapshot{bySlug: map[string]Page{}})
	return r
}

// Dir returns the watched pages directory.
func (r *Registry) Dir() string { return r.dir }

// Get returns the page with slug.
func (r *Registry) Get(slug string) (Page, bool) {
	p, ok := r.current.Load().bySlug[slug]
	return p, ok
}

// Nav returns the pages shown in navigation, ordered by Order then title.
func (r *Registry) Nav() []Page {
	return r.current.Load().nav
}

// All returns every page ordered like Nav.
func (r *Registry) All() []Page {
	s := r.current.Load()
	out := make([]Page, 0, len(s.bySlug))
	for _, p := range s.bySlug {
		out = append(out, p)
	}
	sortPages(out)
	return out
}

// Reload reads the directory and swaps in the result.
func (r *Registry) Reload() error {
	s, err := r.load()
	r.recorder.IncPageReload(err == nil)
	if err != nil {
		return err
	}
	r.current.Store(s)
	slog.Debug("Pages loaded", logfields.Count(len(s.bySlug)), slog.String("dir", r.dir))
	return nil
}

func (r *Registry) load() (*snapshot, error) {
	bySlug := make(map[string]Page, len(builtinPages))
	for slug, raw := range builtinPages {
		p, err := parse(slug, []byte(raw), r.renderer)
		if err != nil {
			return nil, fmt.Errorf("built-in page %s: %w", slug, err)
		}
		bySlug[slug] = p
	}

	entries, err := os.ReadDir(r.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		entries = nil
	case err != nil:
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		path := filepath.Join(r.dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", path, err)
		}
		p, err := parse(slugFromFile(e.Name()), raw, r.renderer)
		if err != nil {
			slog.Warn("Skipping page", logfields.File(path), logfields.Error(err))
			continue
		}
		bySlug[p.Slug] = p
	}

	s := &snapshot{bySlug: bySlug}
	for _, p := range bySlug {
		if p.Nav {
			s.nav = append(s.nav, p)
		}
	}
	sortPages(s.nav)
	return s, nil
}

func sortPages(ps []Page) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Order != ps[j].Order {
			return ps[i].Order < ps[j].Order
		}
		return ps[i].Title < ps[j].Title
	})
}
