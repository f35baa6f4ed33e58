package mock

import "github.com/jacinteriors/sitepatch"

var _ sitepatch.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of sitepatch.Renderer.
type Renderer struct {
	RenderFn        func(sections []sitepatch.Section) string
	RenderGalleryFn func(images []sitepatch.GalleryImage) string
}

func (r *Renderer) Render(sections []sitepatch.Section) string {
	return r.RenderFn(sections)
}

func (r *Renderer) RenderGallery(images []sitepatch.GalleryImage) string {
	return r.RenderGalleryFn(images)
}
