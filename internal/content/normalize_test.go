package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "paragraph", input: "Hello world", want: "<p>Hello world</p>"},
		{name: "heading", input: "## Title", want: "<h2>Title</h2>"},
		{name: "heading clamped", input: "######## Deep", want: "<h6>Deep</h6>"},
		{name: "hash without space is text", input: "#hashtag", want: "<p>#hashtag</p>"},
		{name: "list grouping", input: "- a\n- b", want: "<ul><li>a</li><li>b</li></ul>"},
		{name: "list type switch", input: "- a\n1. b", want: "<ul><li>a</li></ul><ol><li>b</li></ol>"},
		{name: "ordered with paren", input: "1) one\n2) two", want: "<ol><li>one</li><li>two</li></ol>"},
		{name: "mixed markers one list", input: "* a\n+ b\n- c", want: "<ul><li>a</li><li>b</li><li>c</li></ul>"},
		{
			name:  "multi-line paragraph",
			input: "line one\nline two\n\nnext",
			want:  "<p>line one<br>line two</p><p>next</p>",
		},
		{
			name:  "paragraph then list",
			input: "Intro\n- a",
			want:  "<p>Intro</p><ul><li>a</li></ul>",
		},
		{
			name:  "list closed by blank line",
			input: "- a\n\n- b",
			want:  "<ul><li>a</li></ul><ul><li>b</li></ul>",
		},
		{
			name:  "crlf",
			input: "# Hi\r\nthere\r\n",
			want:  "<h1>Hi</h1><p>there</p>",
		},
		{
			name:  "image",
			input: "![alt](/x.png)",
			want:  `<img src="/x.png" alt="alt" loading="lazy">`,
		},
		{
			name:  "image attributes escaped",
			input: `![a "quoted" alt](/x.png?a=1&b=2)`,
			want:  `<img src="/x.png?a=1&amp;b=2" alt="a &#34;quoted&#34; alt" loading="lazy">`,
		},
		{
			name:  "heading link",
			input: "# See [docs](/docs)",
			want:  `<h1>See <a href="/docs">docs</a></h1>`,
		},
		{
			name:  "external link in list",
			input: "- [Site](https://example.com)",
			want:  `<ul><li><a href="https://example.com" target="_blank" rel="noopener noreferrer">Site</a></li></ul>`,
		},
		{
			name:  "bare url in sentence",
			input: "Visit https://example.com/a.",
			want:  `<p>Visit <a href="https://example.com/a" target="_blank" rel="noopener noreferrer">https://example.com/a</a>.</p>`,
		},
		{
			name:  "bare url in parens",
			input: "(see https://example.com)",
			want:  `<p>(see <a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a>)</p>`,
		},
		{
			name:  "non-video url line is paragraph link",
			input: "https://example.com/not-a-video",
			want:  `<p><a href="https://example.com/not-a-video" target="_blank" rel="noopener noreferrer">https://example.com/not-a-video</a></p>`,
		},
		{
			name:  "mp4 video",
			input: "https://cdn.example.com/clip.mp4",
			want:  `<video controls preload="metadata"><source src="https://cdn.example.com/clip.mp4" type="video/mp4"></video>`,
		},
		{
			name:  "webm with query",
			input: "https://cdn.example.com/clip.WEBM?t=3",
			want:  `<video controls preload="metadata"><source src="https://cdn.example.com/clip.WEBM?t=3" type="video/webm"></video>`,
		},
		{
			name:  "youtube without id falls back to anchor",
			input: "https://www.youtube.com/",
			want:  `<p><a href="https://www.youtube.com/" target="_blank" rel="noopener noreferrer">https://www.youtube.com/</a></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_PassThrough(t *testing.T) {
	inputs := []string{
		"<p>Already HTML</p>",
		"Intro\n<UL><li>x</li></UL>\n# not a heading",
		"text <img src=x> more",
		"<table><tr><td>1</td></tr></table>",
		"< pre>spaced</pre>",
	}
	for _, in := range inputs {
		require.Equal(t, in, Normalize(in), "pass-through must be byte-identical")
		require.Equal(t, Normalize(in), Normalize(Normalize(in)))
	}
}

func TestNormalize_NonStructuralTagsAreNotPassThrough(t *testing.T) {
	got := Normalize("Use <strong>bold</strong> and <path d=x>")
	require.True(t, strings.HasPrefix(got, "<p>"), got)
}

func TestNormalize_YouTube(t *testing.T) {
	tests := []struct {
		input string
		id    string
	}{
		{"https://youtu.be/zzzzzzzzzzz", "zzzzzzzzzzz"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?feature=share&v=abc_DEF-123", "abc_DEF-123"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			require.Contains(t, got, `<iframe src="https://www.youtube.com/embed/`+tt.id+`"`)
			require.NotContains(t, got, "<p>")
		})
	}
}

func TestNormalize_VideoLineClosesOpenBlocks(t *testing.T) {
	got := Normalize("- item\nhttps://youtu.be/abcdefghijk\ntext")
	require.True(t, strings.HasPrefix(got, "<ul><li>item</li></ul><div class=\"video-embed\">"), got)
	require.True(t, strings.HasSuffix(got, "</div><p>text</p>"), got)
}

func TestNormalize_ListItemWinsOverBareURL(t *testing.T) {
	got := Normalize("1. https://example.com/clip.mp4")
	require.True(t, strings.HasPrefix(got, "<ol><li><a href=\"https://example.com/clip.mp4\""), got)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := "# A\r\n- b"
	copyIn := strings.Clone(in)
	_ = Normalize(in)
	require.Equal(t, copyIn, in)
}

func TestNormalize_EndToEndPost(t *testing.T) {
	raw := "# Intro\nSEO matters.\n\n- Point one\n- Point two"

	require.Equal(t,
		"<h1>Intro</h1><p>SEO matters.</p><ul><li>Point one</li><li>Point two</li></ul>",
		Normalize(raw))
	require.Equal(t, 1, ReadTime(Normalize(raw)))
}
