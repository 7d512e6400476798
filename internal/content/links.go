package content

import (
	"regexp"
	"strings"
)

// inlineLink matches either a Markdown link or a bare http(s) URL preceded by
// start of text, whitespace or an opening parenthesis.
var inlineLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)|(^|[\s(])(https?://[^\s<]+)`)

const trailingPunct = ".,;:!?'\""

// linkify converts Markdown links and bare URLs in a single line of text into anchors.
func linkify(text string) string {
	matches := inlineLink.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[2] >= 0 {
			b.WriteString(text[last:m[0]])
			b.WriteString(anchor(text[m[4]:m[5]], text[m[2]:m[3]]))
			last = m[1]
			continue
		}

		// bare URL: keep the leading separator, trim sentence punctuation off the end
		b.WriteString(text[last:m[7]])
		href, tail := splitTrailing(text[m[8]:m[9]])
		b.WriteString(anchor(href, attr(href)))
		b.WriteString(tail)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func splitTrailing(u string) (string, string) {
	end := len(u)
	for end > 0 {
		c := u[end-1]
		if strings.IndexByte(trailingPunct, c) >= 0 {
			end--
			continue
		}
		if c == ')' && strings.Count(u[:end], "(") < strings.Count(u[:end], ")") {
			end--
			continue
		}
		break
	}
	return u[:end], u[end:]
}

// anchor renders an anchor; absolute http(s) targets open in a new tab.
func anchor(href, text string) string {
	if isExternal(href) {
		return `<a href="` + attr(href) + `" target="_blank" rel="noopener noreferrer">` + text + `</a>`
	}
	return `<a href="` + attr(href) + `">` + text + `</a>`
}

func isExternal(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
