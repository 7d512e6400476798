package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/agencysite/internal/content"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/posts"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File string `arg:"" optional:"" help:"File holding a CMS body, or - for stdin" default:"-"`
	Text bool   `help:"Print plain text and the read time instead of HTML"`
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	raw, err := readInput(r.File)
	if err != nil {
		return err
	}

	if r.Text {
		p := posts.Post{Content: string(raw)}
		_, err = fmt.Fprintf(g.out(), "%s\n\n%d min read\n", contentText(p), p.ReadTime())
		return err
	}
	_, err = io.WriteString(g.out(), content.Normalize(string(raw))+"\n")
	return err
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	// #nosec G304 -- the operator names the file on the command line
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read input").
			WithContext("file", name).
			Build()
	}
	return raw, nil
}

func contentText(p posts.Post) string {
	return content.StripTags(p.HTML())
}
