package pages

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/agencysite/internal/metrics"
)

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestRegistryBuiltinsWhenDirMissing(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, r.Reload())

	for _, slug := range []string{"home", "about", "services", "portfolio", "contact"} {
		p, ok := r.Get(slug)
		require.True(t, ok, slug)
		require.NotEmpty(t, p.HTML)
		require.NotEmpty(t, p.Fingerprint)
	}

	home, _ := r.Get(HomeSlug)
	require.Equal(t, "/", home.Path())
	require.False(t, home.Nav)

	nav := r.Nav()
	require.Len(t, nav, 4)
	require.Equal(t, "about", nav[0].Slug)
	require.Equal(t, "contact", nav[3].Slug)
}

func TestRegistryFilesOverrideBuiltins(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about.md", "---\ntitle: Our Story\norder: 5\n---\n# Hello\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	writePage(t, dir, "team-culture.md", "Just text.\n")
	writePage(t, dir, "Bad_Name.md", "x")
	writePage(t, dir, "notes.txt", "ignored")

	r := NewRegistry(dir, nil)
	require.NoError(t, r.Reload())

	about, ok := r.Get("about")
	require.True(t, ok)
	require.Equal(t, "Our Story", about.Title)
	require.Contains(t, about.HTML, `<h1 id="hello">Hello</h1>`)
	require.Contains(t, about.HTML, "<table>")

	culture, ok := r.Get("team-culture")
	require.True(t, ok)
	require.Equal(t, "Team culture", culture.Title)
	require.True(t, culture.Nav)

	_, ok = r.Get("bad_name")
	require.False(t, ok)
	_, ok = r.Get("notes")
	require.False(t, ok)
}

func TestFingerprintTracksContent(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about.md", "---\ntitle: A\n---\none\n")

	r := NewRegistry(dir, nil)
	require.NoError(t, r.Reload())
	first, _ := r.Get("about")
	require.Equal(t, `"`+first.Fingerprint+`"`, first.ETag())

	require.NoError(t, r.Reload())
	same, _ := r.Get("about")
	require.Equal(t, first.Fingerprint, same.Fingerprint)

	writePage(t, dir, "about.md", "---\ntitle: A\n---\ntwo\n")
	require.NoError(t, r.Reload())
	changed, _ := r.Get("about")
	require.NotEqual(t, first.Fingerprint, changed.Fingerprint)
}

func TestReloadRecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	r := NewRegistry(t.TempDir(), rec)
	require.NoError(t, r.Reload())

	count, err := testutil.GatherAndCount(reg, "agencysite_page_reloads_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about.md", "---\ntitle: Before\n---\nbody\n")

	r := NewRegistry(dir, nil)
	require.NoError(t, r.Reload())

	w, err := NewWatcher(r, 20*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { require.NoError(t, w.Stop()) }()

	writePage(t, dir, "about.md", "---\ntitle: After\n---\nbody\n")

	require.Eventually(t, func() bool {
		p, _ := r.Get("about")
		return p.Title == "After"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcherRequiresDirectory(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "missing"), nil)
	w, err := NewWatcher(r, 0)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()
	require.Error(t, w.Start(context.Background()))
}
