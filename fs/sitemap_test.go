package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Sitemap implements sitepatch.SitemapUpdater at compile time.
var _ sitepatch.SitemapUpdater = (*fs.Sitemap)(nil)

const sitemapXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/cities/brentwood.html</loc>
    <lastmod>2024-01-01</lastmod>
  </url>
  <url>
    <loc>https://example.com/cities/venice</loc>
  </url>
  <url>
    <loc>https://example.com/spaces/</loc>
    <lastmod>2024-01-01</lastmod>
  </url>
</urlset>
`

func TestPathToURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{
			name: "html page",
			path: "cities/brentwood.html",
			want: []string{"https://example.com/cities/brentwood.html", "https://example.com/cities/brentwood"},
		},
		{
			name: "directory index",
			path: "spaces/index.html",
			want: []string{"https://example.com/spaces/index.html", "https://example.com/spaces/"},
		},
		{
			name: "root index",
			path: "index.html",
			want: []string{"https://example.com/index.html", "https://example.com/"},
		},
		{
			name: "other file",
			path: "robots.txt",
			want: []string{"https://example.com/robots.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.PathToURLs("https://example.com/", tt.path))
		})
	}
}

func TestSitemap_Touch(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	t.Run("updates and adds lastmod for listed pages", func(t *testing.T) {
		t.Parallel()

		// Given a site with a sitemap
		siteDir := t.TempDir()
		path := filepath.Join(siteDir, "sitemap.xml")
		require.NoError(t, os.WriteFile(path, []byte(sitemapXML), 0644))
		sitemap := fs.NewSitemap(path, siteDir, "https://example.com")

		// When I touch two updated pages and one unlisted page
		n, err := sitemap.Touch(context.Background(), []string{
			filepath.Join(siteDir, "cities", "brentwood.html"),
			filepath.Join(siteDir, "cities", "venice.html"),
			filepath.Join(siteDir, "cities", "unlisted.html"),
		}, at)

		// Then both listed entries carry the run date
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, "<loc>https://example.com/cities/brentwood.html</loc>\n    <lastmod>2026-10-19</lastmod>")
		assert.Contains(t, out, "<lastmod>2026-10-19</lastmod></url>")

		// And other entries and unlisted pages are untouched
		assert.Contains(t, out, "<loc>https://example.com/spaces/</loc>\n    <lastmod>2024-01-01</lastmod>")
		assert.NotContains(t, out, "unlisted")
	})

	t.Run("does not rewrite when nothing changed", func(t *testing.T) {
		t.Parallel()

		siteDir := t.TempDir()
		path := filepath.Join(siteDir, "sitemap.xml")
		require.NoError(t, os.WriteFile(path, []byte(sitemapXML), 0644))

		n, err := fs.NewSitemap(path, siteDir, "https://example.com").
			Touch(context.Background(), []string{filepath.Join(siteDir, "about.html")}, at)

		require.NoError(t, err)
		assert.Zero(t, n)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sitemapXML, string(data))
	})

	t.Run("returns ENOTFOUND for missing sitemap", func(t *testing.T) {
		t.Parallel()

		siteDir := t.TempDir()

		_, err := fs.NewSitemap(filepath.Join(siteDir, "sitemap.xml"), siteDir, "https://example.com").
			Touch(context.Background(), []string{filepath.Join(siteDir, "a.html")}, at)

		require.Error(t, err)
		assert.Equal(t, sitepatch.ENOTFOUND, sitepatch.ErrorCode(err))
	})

	t.Run("rejects pages outside the site directory", func(t *testing.T) {
		t.Parallel()

		siteDir := t.TempDir()
		path := filepath.Join(siteDir, "sitemap.xml")
		require.NoError(t, os.WriteFile(path, []byte(sitemapXML), 0644))

		_, err := fs.NewSitemap(path, siteDir, "https://example.com").
			Touch(context.Background(), []string{filepath.Join(t.TempDir(), "a.html")}, at)

		require.Error(t, err)
		assert.Equal(t, sitepatch.EINVALID, sitepatch.ErrorCode(err))
	})
}
