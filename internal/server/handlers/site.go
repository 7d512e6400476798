package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/cms"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/observability"
	"git.home.luguber.info/inful/agencysite/internal/pages"
	"git.home.luguber.info/inful/agencysite/internal/posts"
	"git.home.luguber.info/inful/agencysite/internal/site"
	"git.home.luguber.info/inful/agencysite/internal/view"
)

// LatestPostsOnHome is the number of posts teased on the home page.
const LatestPostsOnHome = 3

// ContactSlug is the static page that carries the lead form.
const ContactSlug = "contact"

// SiteHandlers serves the public HTML pages.
type SiteHandlers struct {
	profile  site.Profile
	pages    *pages.Registry
	source   cms.Source
	renderer *view.Renderer
	now      func() time.Time
}

// NewSiteHandlers wires the public page handlers.
func NewSiteHandlers(profile site.Profile, registry *pages.Registry, source cms.Source, renderer *view.Renderer) *SiteHandlers {
	return &SiteHandlers{
		profile:  profile,
		pages:    registry,
		source:   source,
		renderer: renderer,
		now:      time.Now,
	}
}

func (h *SiteHandlers) layout(r *http.Request, title, description, path, active string) view.Layout {
	return view.Layout{
		Site:        h.profile,
		Nav:         h.pages.Nav(),
		Title:       title,
		Description: description,
		Canonical:   h.profile.URL(path),
		Active:      active,
		RequestID:   observability.RequestID(r.Context()),
		Now:         h.now(),
	}
}

// allPosts loads the collection; a source failure degrades to no posts.
func (h *SiteHandlers) allPosts(ctx context.Context) []posts.Post {
	all, err := h.source.AllPosts(ctx)
	if err != nil {
		observability.WarnContext(ctx, "Blog posts unavailable", logfields.Error(err))
		return nil
	}
	return all
}

// HandleHome renders the home page with the service table and latest posts.
func (h *SiteHandlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	page, _ := h.pages.Get(pages.HomeSlug)
	l := h.layout(r, h.profile.Name, page.Description, "/", pages.HomeSlug)
	if org, err := view.StructuredData(h.profile.Organization()); err == nil {
		l.StructuredData = append(l.StructuredData, org)
	}

	h.render(w, r, http.StatusOK, view.Home, view.HomeData{
		Layout: l,
		Page:   page,
		Latest: posts.Latest(h.allPosts(r.Context()), LatestPostsOnHome),
	})
}

// HandlePage renders a static page by slug.
func (h *SiteHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")
	if slug == pages.HomeSlug {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
		return
	}
	page, ok := h.pages.Get(slug)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	w.Header().Set("ETag", page.ETag())
	if notModified(r, page.ETag()) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.render(w, r, http.StatusOK, view.Page, view.PageData{
		Layout:      h.layout(r, page.Title, page.Description, page.Path(), page.Slug),
		Page:        page,
		ContactForm: slug == ContactSlug,
	})
}

// HandleBlogList renders the searchable, paginated post listing.
func (h *SiteHandlers) HandleBlogList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing := posts.List(h.allPosts(r.Context()), q.Get("q"), posts.ParsePage(q.Get("page")))

	title := "Blog"
	if listing.Query != "" {
		title = "Search: " + listing.Query
	}
	l := h.layout(r, title, "Articles from "+h.profile.Name, "/blog", "blog")

	h.render(w, r, http.StatusOK, view.BlogList, view.BlogListData{Layout: l, Listing: listing})
}

// HandleBlogPost renders one article. Source failures render as not found.
func (h *SiteHandlers) HandleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	post, err := h.source.PostBySlug(r.Context(), slug)
	if err != nil {
		observability.WarnContext(r.Context(), "Post lookup failed", logfields.Slug(slug), logfields.Error(err))
	}
	if err != nil || post == nil {
		h.HandleNotFound(w, r)
		return
	}

	l := h.layout(r, post.Title, post.Excerpt, "/blog/"+post.Slug, "blog")
	if ld, err := view.StructuredData(h.profile.BlogPosting(*post)); err == nil {
		l.StructuredData = append(l.StructuredData, ld)
	}

	h.render(w, r, http.StatusOK, view.BlogPost, view.BlogPostData{
		Layout:   l,
		Post:     *post,
		Body:     post.HTML(),
		Author:   post.AuthorOr(h.profile.Name),
		ReadTime: post.ReadTime(),
		Image:    post.FeaturedImageURL(h.profile.BaseURL),
	})
}

// HandleNotFound renders the 404 page.
func (h *SiteHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, view.NotFound, view.ErrorData{
		Layout: h.layout(r, "Page not found", "", r.URL.Path, ""),
		Status: http.StatusNotFound,
	})
}

func (h *SiteHandlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		observability.ErrorContext(r.Context(), "Template rendering failed",
			slog.String("template", name), logfields.Error(err))
		h.renderError(w, r)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// renderError writes the 500 page, falling back to plain text if even that fails.
func (h *SiteHandlers) renderError(w http.ResponseWriter, r *http.Request) {
	w.Header().Del("ETag")
	var buf bytes.Buffer
	err := h.renderer.Render(&buf, view.Error, view.ErrorData{
		Layout: h.layout(r, "Error", "", r.URL.Path, ""),
		Status: http.StatusInternalServerError,
	})
	if err != nil {
		http.Error(w, strings.ToLower(http.StatusText(http.StatusInternalServerError)), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, buf.Bytes())
}

