package view

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/agencysite/internal/pages"
	"git.home.luguber.info/inful/agencysite/internal/posts"
	"git.home.luguber.info/inful/agencysite/internal/site"
)

func layout() Layout {
	return Layout{
		Site: site.Profile{
			Name:     "Acme",
			Tagline:  "Websites that work",
			BaseURL:  "https://acme.example",
			Services: []site.Service{{Title: "SEO", Description: "Rank"}},
		},
		Nav:    []pages.Page{{Slug: "about", Title: "About"}},
		Title:  "Acme",
		Active: "about",
		Now:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func render(t *testing.T, name string, data any) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data))
	return buf.String()
}

func TestRenderHome(t *testing.T) {
	out := render(t, Home, HomeData{
		Layout: layout(),
		Page:   pages.Page{Slug: "home", HTML: "<p>Welcome</p>"},
		Latest: []posts.Post{{Slug: "first", Title: "First post", Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}},
	})
	require.Contains(t, out, "<title>Acme</title>")
	require.Contains(t, out, "<p>Welcome</p>")
	require.Contains(t, out, `<a href="/blog/first">First post</a>`)
	require.Contains(t, out, "March 9, 2024")
	require.Contains(t, out, `<a href="/about" class="active">About</a>`)
	require.Contains(t, out, "&copy; 2025 Acme")
}

func TestRenderPageWithContactForm(t *testing.T) {
	l := layout()
	l.Title = "Contact"
	out := render(t, Page, PageData{Layout: l, Page: pages.Page{Slug: "contact", Title: "Contact"}, ContactForm: true})
	require.Contains(t, out, "<title>Contact | Acme</title>")
	require.Contains(t, out, `name="website"`)
	require.Contains(t, out, "<option>SEO</option>")
}

func TestRenderBlogListPagination(t *testing.T) {
	all := make([]posts.Post, 20)
	for i := range all {
		all[i] = posts.Post{Slug: "p", Title: "Go tips"}
	}
	listing := posts.List(all, "go", 2)

	out := render(t, BlogList, BlogListData{Layout: layout(), Listing: listing})
	require.Contains(t, out, `href="/blog?q=go" rel="prev"`)
	require.Contains(t, out, `href="/blog?page=3&amp;q=go" rel="next"`)
	require.Contains(t, out, `<span aria-current="page">2</span>`)
	require.Contains(t, out, "20 results for")
}

func TestRenderBlogListEmpty(t *testing.T) {
	out := render(t, BlogList, BlogListData{Layout: layout(), Listing: posts.List(nil, "", 1)})
	require.Contains(t, out, "No articles found.")
	require.NotContains(t, out, "Pagination")
}

func TestRenderBlogPostStructuredData(t *testing.T) {
	l := layout()
	post := posts.Post{Slug: "hello", Title: "Hello </script>"}
	ld, err := StructuredData(l.Site.BlogPosting(post))
	require.NoError(t, err)
	l.StructuredData = []template.JS{ld}

	out := render(t, BlogPost, BlogPostData{Layout: l, Post: post, Body: "<p>Body</p>", Author: "Acme", ReadTime: 1})
	require.Contains(t, out, `<script type="application/ld+json">{"@context":"https://schema.org"`)
	require.Contains(t, out, "<p>Body</p>")
	require.Contains(t, out, "1 min read")
	require.Equal(t, 1, bytes.Count([]byte(out), []byte("</script>")))
}

func TestRenderErrorPages(t *testing.T) {
	out := render(t, NotFound, ErrorData{Layout: layout(), Status: 404})
	require.Contains(t, out, "Page not found")

	out = render(t, Error, ErrorData{Layout: layout(), Status: 500})
	require.Contains(t, out, "Something went wrong")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.Error(t, r.Render(&bytes.Buffer{}, "missing", nil))
}

func TestBlogURL(t *testing.T) {
	require.Equal(t, "/blog", blogURL("", 1))
	require.Equal(t, "/blog?page=2", blogURL("", 2))
	require.Equal(t, "/blog?q=a+b", blogURL("a b", 1))
}
