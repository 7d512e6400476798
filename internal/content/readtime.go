package content

import (
	"math"
	"strings"

	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used by ReadTime.
const WordsPerMinute = 200

// ReadTime estimates reading time in whole minutes, never less than one.
func ReadTime(content string) int {
	words := len(strings.Fields(StripTags(content)))
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	return max(1, minutes)
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "em": true, "i": true,
	"mark": true, "small": true, "span": true, "strong": true, "sub": true, "sup": true,
}

// StripTags removes markup and returns the text content with whitespace
// collapsed. Script and style bodies are dropped, entities are decoded.
func StripTags(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				switch tt {
				case html.StartTagToken:
					skip++
				case html.EndTagToken:
					skip = max(0, skip-1)
				}
			}
			if !inlineTags[tag] {
				b.WriteByte(' ')
			}
		}
	}
}
