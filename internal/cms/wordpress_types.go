package cms

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/agencysite/internal/posts"
)

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID       int        `json:"id"`
	Date     string     `json:"date"`
	DateGMT  string     `json:"date_gmt"`
	Slug     string     `json:"slug"`
	Status   string     `json:"status"`
	Title    wpRendered `json:"title"`
	Excerpt  wpRendered `json:"excerpt"`
	Content  wpRendered `json:"content"`
	Embedded wpEmbedded `json:"_embedded"`
}

type wpEmbedded struct {
	Author        []wpAuthor `json:"author"`
	FeaturedMedia []wpMedia  `json:"wp:featuredmedia"`
	Terms         [][]wpTerm `json:"wp:term"`
}

type wpAuthor struct {
	Name string `json:"name"`
}

type wpMedia struct {
	SourceURL string `json:"source_url"`
}

type wpTerm struct {
	Taxonomy string `json:"taxonomy"`
	Name     string `json:"name"`
}

const wpDateLayout = "2006-01-02T15:04:05"

func (w wpPost) toPost() posts.Post {
	p := posts.Post{
		Slug:    w.Slug,
		Title:   htmlText(w.Title.Rendered),
		Excerpt: htmlText(w.Excerpt.Rendered),
		Content: w.Content.Rendered,
		Date:    w.date(),
	}
	if len(w.Embedded.Author) > 0 {
		p.Author = strings.TrimSpace(w.Embedded.Author[0].Name)
	}
	if len(w.Embedded.FeaturedMedia) > 0 {
		p.FeaturedImage = w.Embedded.FeaturedMedia[0].SourceURL
	}
	for _, group := range w.Embedded.Terms {
		for _, t := range group {
			name := htmlText(t.Name)
			switch t.Taxonomy {
			case "category":
				if name != "" && !strings.EqualFold(name, "Uncategorized") {
					p.Categories = append(p.Categories, name)
				}
			case "post_tag":
				if name != "" {
					p.Tags = append(p.Tags, name)
				}
			}
		}
	}
	return p
}

func (w wpPost) date() time.Time {
	if t, err := time.Parse(wpDateLayout, w.DateGMT); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(wpDateLayout, w.Date); err == nil {
		return t
	}
	return time.Time{}
}

// htmlText reduces a rendered HTML fragment to its trimmed text content.
// WordPress renders titles with entities (&#8217;) and excerpts inside <p>.
func htmlText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	text := doc.Find("body").Text()
	text = strings.TrimSuffix(strings.TrimSpace(text), "[…]")
	return strings.Join(strings.Fields(text), " ")
}
