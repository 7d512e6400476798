package view

import (
	"html/template"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/pages"
	"git.home.luguber.info/inful/agencysite/internal/posts"
	"git.home.luguber.info/inful/agencysite/internal/site"
)

// Layout is the data every template shares.
type Layout struct {
	Site           site.Profile
	Nav            []pages.Page
	Title          string
	Description    string
	Canonical      string
	Active         string
	StructuredData []template.JS
	RequestID      string
	Now            time.Time
}

// FullTitle is the document title.
func (l Layout) FullTitle() string {
	if l.Title == "" || l.Title == l.Site.Name {
		return l.Site.Name
	}
	return l.Title + " | " + l.Site.Name
}

// HomeData feeds the home template.
type HomeData struct {
	Layout
	Page   pages.Page
	Latest []posts.Post
}

// PageData feeds the static page template.
type PageData struct {
	Layout
	Page pages.Page
	// ContactForm adds the lead form below the page body.
	ContactForm bool
}

// BlogListData feeds the blog listing template.
type BlogListData struct {
	Layout
	Listing posts.Listing
}

// BlogPostData feeds the article template.
type BlogPostData struct {
	Layout
	Post     posts.Post
	Body     string
	Author   string
	ReadTime int
	Image    string
}

// ErrorData feeds the not found and error templates.
type ErrorData struct {
	Layout
	Status  int
	Message string
}
