// Package view renders the public site from html/template files embedded in
// the binary. Every page template is parsed together with layout.html.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/site"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names accepted by Render.
const (
	Home     = "home"
	Page     = "page"
	BlogList = "blog_list"
	BlogPost = "blog_post"
	NotFound = "not_found"
	Error    = "error"
)

var names = []string{Home, Page, BlogList, BlogPost, NotFound, Error}

// Renderer executes the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render executes template name into w. Output is buffered so a failing
// template writes nothing.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StructuredData encodes a JSON-LD document for the page head.
func StructuredData(v any) (template.JS, error) {
	s, err := site.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(s), nil //nolint:gosec // encoding/json output is script-safe
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"isodate": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	// trusted marks CMS and page bodies as HTML; both come from the site's own editors.
	"trusted": func(s string) template.HTML {
		return template.HTML(s) //nolint:gosec // editor-controlled content
	},
	"blogURL": blogURL,
}

func blogURL(query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/blog"
	}
	return "/blog?" + v.Encode()
}
