// Package posts holds the blog post model and the search/pagination used by
// the blog listing.
package posts

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/content"
)

// DefaultCategory is the category shown for posts that have none.
const DefaultCategory = "General"

// Post is a blog article as delivered by the CMS. Content is raw CMS body
// text: either HTML or the plain-text dialect understood by content.Normalize.
type Post struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Author        string    `json:"author,omitempty"`
	Date          time.Time `json:"date"`
	Tags          []string  `json:"tags,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	FeaturedImage string    `json:"featured_image,omitempty"`
}

// PrimaryCategory returns the first category, or DefaultCategory.
func (p Post) PrimaryCategory() string {
	for _, c := range p.Categories {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return DefaultCategory
}

// ReadTime is the estimated reading time in minutes of the rendered body.
func (p Post) ReadTime() int {
	return content.ReadTime(p.Content)
}

// HTML is the body normalized for rendering.
func (p Post) HTML() string {
	return content.Normalize(p.Content)
}

// AuthorOr returns the post author, or fallback when the CMS did not name one.
func (p Post) AuthorOr(fallback string) string {
	if a := strings.TrimSpace(p.Author); a != "" {
		return a
	}
	return fallback
}

// HasFeaturedImage reports whether the post carries a featured image.
func (p Post) HasFeaturedImage() bool {
	return strings.TrimSpace(p.FeaturedImage) != ""
}

// FeaturedImageURL returns an absolute featured image URL. Paths relative to
// the site are joined to baseURL; empty means no image.
func (p Post) FeaturedImageURL(baseURL string) string {
	img := strings.TrimSpace(p.FeaturedImage)
	if img == "" {
		return ""
	}
	if strings.HasPrefix(img, "http") {
		return img
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(img, "/")
}

// haystack is the lower-cased text a search query is matched against.
func (p Post) haystack() string {
	return strings.ToLower(strings.Join([]string{
		p.Title,
		p.Excerpt,
		p.Content,
		strings.Join(p.Tags, " "),
		p.PrimaryCategory(),
	}, " "))
}
