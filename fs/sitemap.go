package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/jacinteriors/sitepatch"
)

// Ensure Sitemap implements sitepatch.SitemapUpdater at compile time.
var _ sitepatch.SitemapUpdater = (*Sitemap)(nil)

// Sitemap updates <lastmod> entries of a local sitemap.xml.
type Sitemap struct {
	path    string
	siteDir string
	siteURL string
}

// NewSitemap creates a Sitemap for the file at path. Page file paths are
// made relative to siteDir and joined to siteURL to find their <loc> entry.
func NewSitemap(path, siteDir, siteURL string) *Sitemap {
	return &Sitemap{path: path, siteDir: siteDir, siteURL: siteURL}
}

// PathToURLs returns the URLs a page file may be listed under: the file
// URL itself and its extensionless form. "index.html" maps to its
// directory URL.
// Example: cities/brentwood.html → https://example.com/cities/brentwood.html,
// https://example.com/cities/brentwood
func PathToURLs(siteURL, relPath string) []string {
	base := strings.TrimRight(siteURL, "/") + "/"
	rel := strings.TrimPrefix(filepath.ToSlash(relPath), "/")

	if rel == "index.html" || strings.HasSuffix(rel, "/index.html") {
		dir := strings.TrimSuffix(rel, "index.html")
		return []string{base + rel, base + dir}
	}
	if ext := filepath.Ext(rel); ext == ".html" || ext == ".htm" {
		return []string{base + rel, base + strings.TrimSuffix(rel, ext)}
	}
	return []string{base + rel}
}

// Touch sets lastmod to the date of at for listed pages that already have a
// sitemap entry. Entries are never added. The file is rewritten only when
// something changed.
func (s *Sitemap) Touch(ctx context.Context, paths []string, at time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, sitepatch.Errorf(sitepatch.ENOTFOUND, "sitemap %q not found", s.path)
		}
		return 0, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "urlset" {
		return 0, sitepatch.Errorf(sitepatch.EINVALID, "sitemap %q has no urlset", s.path)
	}

	want := make(map[string]bool)
	for _, p := range paths {
		rel, err := s.relPath(p)
		if err != nil {
			return 0, err
		}
		for _, u := range PathToURLs(s.siteURL, rel) {
			want[u] = true
		}
	}

	date := at.Format("2006-01-02")
	changed := 0
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil || !want[strings.TrimSpace(loc.Text())] {
			continue
		}
		lastmod := urlEl.SelectElement("lastmod")
		if lastmod == nil {
			lastmod = urlEl.CreateElement("lastmod")
		}
		if strings.TrimSpace(lastmod.Text()) == date {
			continue
		}
		lastmod.SetText(date)
		changed++
	}

	if changed == 0 {
		return 0, nil
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return 0, fmt.Errorf("encoding sitemap XML: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return 0, fmt.Errorf("writing sitemap: %w", err)
	}
	return changed, nil
}

// relPath returns p relative to the site directory.
func (s *Sitemap) relPath(p string) (string, error) {
	if s.siteDir == "" {
		return p, nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	siteDir, err := filepath.Abs(s.siteDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(siteDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", sitepatch.Errorf(sitepatch.EINVALID, "page %q is outside site directory %q", p, s.siteDir)
	}
	return rel, nil
}
