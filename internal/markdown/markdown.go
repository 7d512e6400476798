// Package markdown renders Markdown documents to HTML with goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Options controls how Markdown is rendered.
type Options struct {
	// Unsafe lets raw HTML in the source through to the output.
	Unsafe bool
}

// Renderer converts Markdown bodies (frontmatter already removed) to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a GFM renderer with automatic heading IDs.
func NewRenderer(opts Options) *Renderer {
	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return &Renderer{md: goldmark.New(rendererOpts...)}
}

// Render converts body to HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FirstImage returns the destination of the first image in body, or "".
func (r *Renderer) FirstImage(body []byte) string {
	root := r.md.Parser().Parse(text.NewReader(body))

	var dest string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			dest = string(img.Destination)
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return dest
}
