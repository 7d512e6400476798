package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type meta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		fm      string
		body    string
		had     bool
		wantErr error
	}{
		{name: "no frontmatter", input: "# Hello\n", body: "# Hello\n"},
		{name: "basic", input: "---\ntitle: x\n---\nbody\n", fm: "title: x\n", body: "body\n", had: true},
		{name: "empty", input: "---\n---\nbody", fm: "", body: "body", had: true},
		{name: "crlf", input: "---\r\ntitle: x\r\n---\r\nbody\r\n", fm: "title: x\n", body: "body\n", had: true},
		{name: "closing at eof", input: "---\ntitle: x\n---", fm: "title: x\n", body: "", had: true},
		{name: "unterminated", input: "---\ntitle: x\nbody", wantErr: ErrMissingClosingDelimiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, had, err := Split([]byte(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.had, had)
			require.Equal(t, tt.fm, string(fm))
			require.Equal(t, tt.body, string(body))
		})
	}
}

func TestDecode(t *testing.T) {
	var m meta
	body, err := Decode([]byte("---\ntitle: Launch\ntags: [seo, web]\n---\nHello"), &m)
	require.NoError(t, err)
	require.Equal(t, "Launch", m.Title)
	require.Equal(t, []string{"seo", "web"}, m.Tags)
	require.Equal(t, "Hello", string(body))
}

func TestDecode_InvalidYAML(t *testing.T) {
	var m meta
	_, err := Decode([]byte("---\ntitle: [oops\n---\n"), &m)
	require.Error(t, err)
}

func TestRenderRoundTrip(t *testing.T) {
	out, err := Render(meta{Title: "Launch", Tags: []string{"seo"}}, []byte("Body text"))
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: Launch\ntags:\n  - seo\n---\nBody text\n", string(out))

	var m meta
	body, err := Decode(out, &m)
	require.NoError(t, err)
	require.Equal(t, "Launch", m.Title)
	require.Equal(t, "Body text\n", string(body))
}
