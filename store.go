package sitepatch

import (
	"context"
	"time"
)

// PageStore reads and writes whole HTML files at caller-supplied paths.
type PageStore interface {
	// ReadPage returns the file content.
	// Returns ENOTFOUND if the file does not exist.
	ReadPage(ctx context.Context, path string) (string, error)

	// WritePage replaces the file content. A failed write leaves the
	// previous content in place.
	WritePage(ctx context.Context, path string, content string) error
}

// ImageIndex finds gallery images for a page.
type ImageIndex interface {
	// FindImages returns images whose filename contains slug, with or
	// without hyphens, sorted by filename.
	FindImages(ctx context.Context, slug string) ([]GalleryImage, error)
}

// SitemapUpdater records page modification times in a site sitemap.
type SitemapUpdater interface {
	// Touch sets lastmod to at for each listed page path that already
	// has a sitemap entry and returns the number of entries changed.
	Touch(ctx context.Context, paths []string, at time.Time) (int, error)
}
