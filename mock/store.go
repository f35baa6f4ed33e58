package mock

import (
	"context"
	"time"

	"github.com/jacinteriors/sitepatch"
)

var _ sitepatch.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitepatch.PageStore.
type PageStore struct {
	ReadPageFn  func(ctx context.Context, path string) (string, error)
	WritePageFn func(ctx context.Context, path string, content string) error
}

func (s *PageStore) ReadPage(ctx context.Context, path string) (string, error) {
	return s.ReadPageFn(ctx, path)
}

func (s *PageStore) WritePage(ctx context.Context, path string, content string) error {
	return s.WritePageFn(ctx, path, content)
}

var _ sitepatch.ImageIndex = (*ImageIndex)(nil)

// ImageIndex is a mock implementation of sitepatch.ImageIndex.
type ImageIndex struct {
	FindImagesFn func(ctx context.Context, slug string) ([]sitepatch.GalleryImage, error)
}

func (x *ImageIndex) FindImages(ctx context.Context, slug string) ([]sitepatch.GalleryImage, error) {
	return x.FindImagesFn(ctx, slug)
}

var _ sitepatch.SitemapUpdater = (*SitemapUpdater)(nil)

// SitemapUpdater is a mock implementation of sitepatch.SitemapUpdater.
type SitemapUpdater struct {
	TouchFn func(ctx context.Context, paths []string, at time.Time) (int, error)
}

func (s *SitemapUpdater) Touch(ctx context.Context, paths []string, at time.Time) (int, error) {
	return s.TouchFn(ctx, paths, at)
}
