package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/agencysite/internal/cms"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/posts"
)

// PostsCmd groups the post inspection commands.
type PostsCmd struct {
	List PostsListCmd `cmd:"" help:"List posts with the blog's search and pagination"`
	Show PostsShowCmd `cmd:"" help:"Show one post"`
}

// PostsListCmd implements 'posts list'.
type PostsListCmd struct {
	Query string `short:"q" help:"Search query"`
	Page  string `short:"p" help:"Page number" default:"1"`
	JSON  bool   `help:"Print the listing as JSON"`
}

func (p *PostsListCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := cms.New(cfg.CMS, nil)
	if err != nil {
		return err
	}
	all, err := src.AllPosts(context.Background())
	if err != nil {
		return err
	}
	return writeListing(g.out(), posts.List(all, p.Query, posts.ParsePage(p.Page)), p.JSON)
}

func writeListing(w io.Writer, l posts.Listing, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSLUG\tCATEGORY\tREAD\tTITLE")
	for _, p := range l.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d min\t%s\n",
			p.Date.Format("2006-01-02"), p.Slug, p.PrimaryCategory(), p.ReadTime(), p.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d of %d (%d posts)\n", l.CurrentPage, l.TotalPages, l.TotalItems)
	return err
}

// PostsShowCmd implements 'posts show'.
type PostsShowCmd struct {
	Slug string `arg:"" help:"Post slug"`
	HTML bool   `help:"Print the normalized HTML body instead of text"`
}

func (p *PostsShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := cms.New(cfg.CMS, nil)
	if err != nil {
		return err
	}
	post, err := src.PostBySlug(context.Background(), p.Slug)
	if err != nil {
		return err
	}
	if post == nil {
		return errors.NotFoundError("post not found").WithContext("slug", p.Slug).Build()
	}
	return writePost(g.out(), *post, cfg.Site.Name, p.HTML)
}

func writePost(w io.Writer, p posts.Post, org string, asHTML bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:    %s\n", p.Title)
	fmt.Fprintf(&b, "Slug:     %s\n", p.Slug)
	fmt.Fprintf(&b, "Author:   %s\n", p.AuthorOr(org))
	if !p.Date.IsZero() {
		fmt.Fprintf(&b, "Date:     %s\n", p.Date.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Category: %s\n", p.PrimaryCategory())
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:     %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(&b, "Read:     %d min\n\n", p.ReadTime())
	if asHTML {
		b.WriteString(p.HTML())
	} else {
		b.WriteString(contentText(p))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
