package cms

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/agencysite/internal/content"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/frontmatter"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/markdown"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
	"git.home.luguber.info/inful/agencysite/internal/posts"
)

// Body formats a local post can declare in frontmatter.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

const excerptLength = 160

// PostMatter is the frontmatter of a local post file.
type PostMatter struct {
	Title         string    `yaml:"title,omitempty"`
	Slug          string    `yaml:"slug,omitempty"`
	Excerpt       string    `yaml:"excerpt,omitempty"`
	Author        string    `yaml:"author,omitempty"`
	Date          time.Time `yaml:"date,omitempty"`
	Tags          []string  `yaml:"tags,omitempty"`
	Categories    []string  `yaml:"categories,omitempty"`
	FeaturedImage string    `yaml:"featured_image,omitempty"`
	Format        string    `yaml:"format,omitempty"`
	Draft         bool      `yaml:"draft,omitempty"`
}

// LocalSource reads posts from *.md files in a directory. The directory is
// read on every call; there is no cache.
type LocalSource struct {
	dir      string
	renderer *markdown.Renderer
	recorder metrics.Recorder
	titler   cases.Caser
}

// NewLocalSource creates a source over dir.
func NewLocalSource(dir string, recorder metrics.Recorder) *LocalSource {
	return &LocalSource{
		dir:      dir,
		renderer: markdown.NewRenderer(markdown.Options{Unsafe: true}),
		recorder: metrics.OrNoop(recorder),
		titler:   cases.Title(language.English),
	}
}

// AllPosts loads every non-draft post, newest first. Files that fail to parse
// are logged and skipped.
func (s *LocalSource) AllPosts(ctx context.Context) ([]posts.Post, error) {
	start := time.Now()
	out, err := s.load(ctx)
	s.recorder.ObserveCMSFetch("list", time.Since(start), err == nil)
	return out, err
}

// PostBySlug scans the directory for a post with slug.
func (s *LocalSource) PostBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	start := time.Now()
	all, err := s.load(ctx)
	s.recorder.ObserveCMSFetch("get", time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Slug == slug {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Ping checks that the posts directory exists.
func (s *LocalSource) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "posts directory unavailable").
			WithContext("dir", s.dir).
			Build()
	}
	if !info.IsDir() {
		return errors.FileSystemError("posts path is not a directory").WithContext("dir", s.dir).Build()
	}
	return nil
}

func (s *LocalSource) load(ctx context.Context) ([]posts.Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []posts.Post{}, nil
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read posts directory").
			WithContext("dir", s.dir).
			Build()
	}

	out := make([]posts.Post, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, e.Name())
		p, draft, err := s.readPost(path)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable post", logfields.File(path), logfields.Error(err))
			continue
		}
		if draft {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (s *LocalSource) readPost(path string) (posts.Post, bool, error) {
	// #nosec G304 -- path comes from listing the configured posts directory
	raw, err := os.ReadFile(path)
	if err != nil {
		return posts.Post{}, false, err
	}

	var m PostMatter
	body, err := frontmatter.Decode(raw, &m)
	if err != nil {
		return posts.Post{}, false, errors.WrapError(err, errors.CategoryContent, "invalid frontmatter").
			WithContext("file", path).
			Build()
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := posts.Post{
		Slug:          m.Slug,
		Title:         m.Title,
		Excerpt:       m.Excerpt,
		Author:        m.Author,
		Date:          m.Date,
		Tags:          m.Tags,
		Categories:    m.Categories,
		FeaturedImage: m.FeaturedImage,
	}
	if p.Slug == "" {
		p.Slug = Slugify(name)
	}
	if p.Title == "" {
		p.Title = s.titler.String(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	}

	switch strings.ToLower(m.Format) {
	case FormatText:
		p.Content = string(body)
	default:
		html, err := s.renderer.Render(body)
		if err != nil {
			return posts.Post{}, false, errors.WrapError(err, errors.CategoryContent, "failed to render post").
				WithContext("file", path).
				Build()
		}
		p.Content = html
		if p.FeaturedImage == "" {
			p.FeaturedImage = s.renderer.FirstImage(body)
		}
	}

	if p.Excerpt == "" {
		p.Excerpt = excerpt(content.StripTags(content.Normalize(p.Content)), excerptLength)
	}
	return p, m.Draft, nil
}

// Slugify lower-cases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// excerpt cuts text at a word boundary no longer than limit and marks the cut.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
