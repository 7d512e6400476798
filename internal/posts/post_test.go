package posts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPost_PrimaryCategory(t *testing.T) {
	require.Equal(t, "General", Post{}.PrimaryCategory())
	require.Equal(t, "General", Post{Categories: []string{"  "}}.PrimaryCategory())
	require.Equal(t, "Guides", Post{Categories: []string{"Guides", "SEO"}}.PrimaryCategory())
}

func TestPost_AuthorOr(t *testing.T) {
	require.Equal(t, "Acme", Post{}.AuthorOr("Acme"))
	require.Equal(t, "Jo", Post{Author: "Jo"}.AuthorOr("Acme"))
}

func TestPost_FeaturedImageURL(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{"", ""},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"/uploads/a.jpg", "https://acme.example/uploads/a.jpg"},
		{"uploads/a.jpg", "https://acme.example/uploads/a.jpg"},
	}
	for _, tt := range tests {
		p := Post{FeaturedImage: tt.image}
		require.Equal(t, tt.want, p.FeaturedImageURL("https://acme.example/"), tt.image)
		require.Equal(t, tt.want != "", p.HasFeaturedImage())
	}
}

func TestPost_EndToEndDetail(t *testing.T) {
	p := Post{
		Slug:       "a",
		Title:      "SEO Guide",
		Excerpt:    "Learn SEO",
		Content:    "# Intro\nSEO matters.\n\n- Point one\n- Point two",
		Tags:       []string{"seo"},
		Categories: []string{"Guides"},
	}

	require.Equal(t, "<h1>Intro</h1><p>SEO matters.</p><ul><li>Point one</li><li>Point two</li></ul>", p.HTML())
	require.Equal(t, 1, p.ReadTime())
	require.Equal(t, "Guides", p.PrimaryCategory())
}
