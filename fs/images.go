package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacinteriors/sitepatch"
)

// Ensure ImageIndex implements sitepatch.ImageIndex at compile time.
var _ sitepatch.ImageIndex = (*ImageIndex)(nil)

// imageExtensions are the file types listed in galleries.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageIndex finds gallery images in a flat asset directory by filename.
// It only lists files; it never copies, renames or reads image data.
type ImageIndex struct {
	dir string
}

// NewImageIndex creates a new ImageIndex over dir.
func NewImageIndex(dir string) *ImageIndex {
	return &ImageIndex{dir: dir}
}

// FindImages returns images whose lowercased filename contains slug or
// slug without hyphens ("santa-monica" also matches "santamonica-3.jpg").
// A missing directory has no images.
func (x *ImageIndex) FindImages(ctx context.Context, slug string) ([]sitepatch.GalleryImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, nil
	}
	compact := strings.ReplaceAll(slug, "-", "")

	entries, err := os.ReadDir(x.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("listing images in %s: %w", x.dir, err)
	}

	// ReadDir returns entries sorted by filename.
	var images []sitepatch.GalleryImage
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if !imageExtensions[filepath.Ext(lower)] {
			continue
		}
		if !strings.Contains(lower, slug) && !strings.Contains(lower, compact) {
			continue
		}
		images = append(images, sitepatch.GalleryImage{
			Filename:   name,
			SourcePath: filepath.Join(x.dir, name),
		})
	}
	return images, nil
}
