package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = ctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

// localSite writes a config pointing the CMS at a directory of local posts.
func localSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	postsDir := filepath.Join(dir, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0o750))

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(postsDir, name), []byte(body), 0o600))
	}
	write("seo-basics.md", "---\ntitle: SEO Basics\ndate: 2024-03-01\ncategories: [Marketing]\ntags: [seo]\n---\nStart with **keywords**.\n")
	write("launch.md", "---\ntitle: We Launched\ndate: 2024-04-01\nformat: text\n---\n# Big news\nVisit https://example.com\n")

	cfgPath := filepath.Join(dir, "agencysite.yaml")
	cfg := "site:\n  name: Acme\n  base_url: https://acme.example\ncms:\n  kind: local\n  directory: " + postsDir + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func TestPostsList(t *testing.T) {
	cfg := localSite(t)

	out, err := run(t, "-c", cfg, "posts", "list")
	require.NoError(t, err)
	require.Contains(t, out, "launch")
	require.Contains(t, out, "seo-basics")
	require.Contains(t, out, "page 1 of 1 (2 posts)")

	out, err = run(t, "-c", cfg, "posts", "list", "-q", "marketing")
	require.NoError(t, err)
	require.Contains(t, out, "seo-basics")
	require.NotContains(t, out, "launch")
}

func TestPostsListJSON(t *testing.T) {
	out, err := run(t, "-c", localSite(t), "posts", "list", "--json", "--page", "zzz")
	require.NoError(t, err)
	require.Contains(t, out, `"CurrentPage": 1`)
}

func TestPostsShow(t *testing.T) {
	cfg := localSite(t)

	out, err := run(t, "-c", cfg, "posts", "show", "launch", "--html")
	require.NoError(t, err)
	require.Contains(t, out, "Author:   Acme")
	require.Contains(t, out, "<h1>Big news</h1>")

	_, err = run(t, "-c", cfg, "posts", "show", "missing")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRender(t *testing.T) {
	in := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(in, []byte("## Title\n- one\n- two\n"), 0o600))

	out, err := run(t, "render", in)
	require.NoError(t, err)
	require.Equal(t, "<h2>Title</h2><ul><li>one</li><li>two</li></ul>\n", out)

	out, err = run(t, "render", "--text", in)
	require.NoError(t, err)
	require.Contains(t, out, "1 min read")

	_, err = run(t, "render", filepath.Join(t.TempDir(), "missing.txt"))
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")

	out, err := run(t, "-c", path, "init")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote configuration")
	require.FileExists(t, path)

	_, err = run(t, "-c", path, "init")
	require.Error(t, err)

	_, err = run(t, "-c", path, "init", "--force")
	require.NoError(t, err)
}

func TestExport(t *testing.T) {
	cfg := localSite(t)
	target := filepath.Join(t.TempDir(), "exported")

	out, err := run(t, "-c", cfg, "export", "--dir", target)
	require.NoError(t, err)
	require.Contains(t, out, "exported 2 posts")

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	_, err = run(t, "-c", cfg, "export")
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestMissingConfigIsConfigError(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"), "posts", "list")
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
