package posts

import (
	"strconv"
	"strings"
)

// PageSize is the number of posts on one listing page.
const PageSize = 9

// Listing is one page of search results.
type Listing struct {
	Items       []Post
	Query       string
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// HasPrev reports whether a previous page exists.
func (l Listing) HasPrev() bool { return l.CurrentPage > 1 }

// HasNext reports whether a following page exists.
func (l Listing) HasNext() bool { return l.CurrentPage < l.TotalPages }

// PrevPage returns the previous page number.
func (l Listing) PrevPage() int { return max(1, l.CurrentPage-1) }

// NextPage returns the following page number.
func (l Listing) NextPage() int { return min(l.TotalPages, l.CurrentPage+1) }

// Pages lists every page number, for pagination links.
func (l Listing) Pages() []int {
	out := make([]int, l.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// List filters all by a case-insensitive substring query and returns the
// requested page. Order of all is preserved. An empty query matches every post.
// Out of range pages are clamped, so List never fails: the worst case is an
// empty page 1 of 1.
func List(all []Post, query string, page int) Listing {
	q := strings.ToLower(strings.TrimSpace(query))

	matched := all
	if q != "" {
		matched = make([]Post, 0, len(all))
		for _, p := range all {
			if strings.Contains(p.haystack(), q) {
				matched = append(matched, p)
			}
		}
	}

	total := len(matched)
	totalPages := max(1, (total+PageSize-1)/PageSize)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * PageSize
	end := min(start+PageSize, total)

	items := make([]Post, 0, end-start)
	items = append(items, matched[start:end]...)

	return Listing{
		Items:       items,
		Query:       strings.TrimSpace(query),
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}

// ParsePage reads a page query parameter; absent or unparseable values yield 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Latest returns at most n posts from the front of all.
func Latest(all []Post, n int) []Post {
	if n <= 0 {
		return nil
	}
	return all[:min(n, len(all))]
}
