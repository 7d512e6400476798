package cms

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/frontmatter"
	"git.home.luguber.info/inful/agencysite/internal/posts"
)

var anyTag = regexp.MustCompile(`<[A-Za-z][^>]*>`)

// ExportResult summarizes an Export run.
type ExportResult struct {
	Written []string
	Skipped []string
}

// Export writes every post from src into dir as a local-source Markdown file.
// HTML bodies are converted to Markdown; plain-text bodies are kept verbatim
// and marked format: text. Existing files are skipped unless overwrite is set.
func Export(ctx context.Context, src Source, dir string, overwrite bool) (ExportResult, error) {
	var res ExportResult

	all, err := src.AllPosts(ctx)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return res, errors.WrapError(err, errors.CategoryFileSystem, "failed to create export directory").
			WithContext("dir", dir).
			Build()
	}

	for _, p := range all {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		slug := Slugify(p.Slug)
		if slug == "" {
			res.Skipped = append(res.Skipped, p.Slug)
			continue
		}
		path := filepath.Join(dir, slug+".md")
		if _, err := os.Stat(path); err == nil && !overwrite {
			res.Skipped = append(res.Skipped, path)
			continue
		}

		doc, err := exportDocument(p)
		if err != nil {
			return res, err
		}
		if err := os.WriteFile(path, doc, 0o600); err != nil {
			return res, errors.WrapError(err, errors.CategoryFileSystem, "failed to write post").
				WithContext("file", path).
				Build()
		}
		res.Written = append(res.Written, path)
	}
	return res, nil
}

func exportDocument(p posts.Post) ([]byte, error) {
	meta := PostMatter{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		Date:          p.Date,
		Tags:          p.Tags,
		Categories:    p.Categories,
		FeaturedImage: p.FeaturedImage,
	}

	body := p.Content
	if anyTag.MatchString(body) {
		md, err := htmltomarkdown.ConvertString(body)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryContent, "failed to convert post to markdown").
				WithContext("slug", p.Slug).
				Build()
		}
		body = md
	} else {
		meta.Format = FormatText
	}

	out, err := frontmatter.Render(meta, []byte(body))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryContent, "failed to encode frontmatter").
			WithContext("slug", p.Slug).
			Build()
	}
	return out, nil
}
