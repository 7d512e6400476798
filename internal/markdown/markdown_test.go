package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer(Options{})

	out, err := r.Render([]byte("# Our Work\n\nWe build **fast** sites.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, out, `<h1 id="our-work">Our Work</h1>`)
	require.Contains(t, out, "<strong>fast</strong>")
	require.Contains(t, out, "<table>")
}

func TestRender_RawHTML(t *testing.T) {
	src := []byte("<div class=\"cta\">Call us</div>\n")

	safe, err := NewRenderer(Options{}).Render(src)
	require.NoError(t, err)
	require.NotContains(t, safe, `<div class="cta">`)

	unsafe, err := NewRenderer(Options{Unsafe: true}).Render(src)
	require.NoError(t, err)
	require.Contains(t, unsafe, `<div class="cta">Call us</div>`)
}

func TestFirstImage(t *testing.T) {
	r := NewRenderer(Options{})

	require.Equal(t, "/img/a.png", r.FirstImage([]byte("Intro\n\n![a](/img/a.png)\n\n![b](/img/b.png)")))
	require.Empty(t, r.FirstImage([]byte("no images here")))
}
