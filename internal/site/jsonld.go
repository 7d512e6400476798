package site

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/posts"
)

const schemaContext = "https://schema.org"

// Organization is the schema.org Organization describing the agency.
type Organization struct {
	Context     string   `json:"@context,omitempty"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Description string   `json:"description,omitempty"`
	Email       string   `json:"email,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
}

// Person is a schema.org Person reference.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// WebPage is a schema.org WebPage reference.
type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// BlogPosting is the schema.org BlogPosting for a single article.
type BlogPosting struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description,omitempty"`
	Image            string       `json:"image,omitempty"`
	DatePublished    string       `json:"datePublished,omitempty"`
	Author           Person       `json:"author"`
	Publisher        Organization `json:"publisher"`
	MainEntityOfPage WebPage      `json:"mainEntityOfPage"`
	ArticleSection   string       `json:"articleSection,omitempty"`
	Keywords         []string     `json:"keywords,omitempty"`
	WordCount        int          `json:"wordCount,omitempty"`
}

// Organization returns the agency's schema.org description.
func (p Profile) Organization() Organization {
	org := p.publisher()
	org.Context = schemaContext
	org.Description = p.Tagline
	org.Email = p.Email
	org.Telephone = p.Phone
	for _, s := range p.Social {
		if s.URL != "" {
			org.SameAs = append(org.SameAs, s.URL)
		}
	}
	return org
}

func (p Profile) publisher() Organization {
	return Organization{
		Type: "Organization",
		Name: p.Name,
		URL:  p.URL("/"),
		Logo: p.LogoURL(),
	}
}

// BlogPosting describes post for search engines. Posts without an author are
// attributed to the agency.
func (p Profile) BlogPosting(post posts.Post) BlogPosting {
	bp := BlogPosting{
		Context:          schemaContext,
		Type:             "BlogPosting",
		Headline:         post.Title,
		Description:      post.Excerpt,
		Image:            post.FeaturedImageURL(p.BaseURL),
		Author:           Person{Type: "Person", Name: post.AuthorOr(p.Name)},
		Publisher:        p.publisher(),
		MainEntityOfPage: WebPage{Type: "WebPage", ID: p.URL("/blog/" + post.Slug)},
		ArticleSection:   post.PrimaryCategory(),
		Keywords:         post.Tags,
	}
	if !post.Date.IsZero() {
		bp.DatePublished = post.Date.UTC().Format(time.RFC3339)
	}
	return bp
}

// Marshal encodes a JSON-LD document. encoding/json escapes <, > and & so the
// result is safe inside a <script> element.
func Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
