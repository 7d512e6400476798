package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"short", "just a few words", 1},
		{"rounds down", words(299), 1},
		{"rounds half up", words(300), 2},
		{"five minutes", words(1000), 5},
		{"markup ignored", "<p>" + strings.Repeat("<span class=\"x\">w</span> ", 400) + "</p>", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ReadTime(tt.content))
		})
	}
}

func TestReadTime_Monotonic(t *testing.T) {
	prev := 0
	for n := 0; n <= 2000; n += 50 {
		got := ReadTime(words(n))
		require.GreaterOrEqual(t, got, 1)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"<p>Hello <strong>bold</strong> world</p>", "Hello bold world"},
		{"<h1>Title</h1><p>Body</p>", "Title Body"},
		{"Fish &amp; Chips", "Fish & Chips"},
		{"<p>a</p><script>var x = 1;</script><p>b</p>", "a b"},
		{"<style>p{}</style>ok", "ok"},
		{"line<br>break", "line break"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, StripTags(tt.input), tt.input)
	}
}
