package sitepatch

import (
	"html"
	"strings"
)

// Renderer serializes sections into an HTML fragment.
// Implementations must be pure: equal input yields byte-identical output.
type Renderer interface {
	Render(sections []Section) string
	RenderGallery(images []GalleryImage) string
}

// GalleryImage references an image file linked from a generated section.
// The image itself is owned by the site's asset directory; only the
// reference is recorded.
type GalleryImage struct {
	Filename   string `json:"filename"`
	SourcePath string `json:"sourcePath"`
}

// Theme holds the style tokens used by SectionRenderer.
type Theme struct {
	AltBackground     string
	DefaultBackground string
	ContentStyle      string
	SubHeadingStyle   string
	ParagraphStyle    string
	ListStyle         string
	GalleryGridStyle  string
	GalleryImageStyle string
	GalleryAlt        string
}

// DefaultTheme matches the site stylesheet's section layout.
var DefaultTheme = Theme{
	AltBackground:     "var(--color-bg-alt)",
	DefaultBackground: "white",
	ContentStyle:      "max-width: 900px; margin: 0 auto;",
	SubHeadingStyle:   "font-size: 1.125rem; font-weight: 600; margin-top: 1.5rem; margin-bottom: 1rem;",
	ParagraphStyle:    "margin-bottom: 1rem;",
	ListStyle:         "margin-left: 1.5rem; line-height: 1.8; margin-bottom: 1.5rem;",
	GalleryGridStyle:  "display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 1.5rem;",
	GalleryImageStyle: "width: 100%; height: 300px; object-fit: cover; border-radius: 8px; box-shadow: 0 4px 12px rgba(0,0,0,0.1);",
	GalleryAlt:        "Interior Design Project",
}

// SectionSeparator joins rendered sections.
const SectionSeparator = "\n\n"

var _ Renderer = (*SectionRenderer)(nil)

// SectionRenderer renders sections with the site's fixed visual template.
type SectionRenderer struct {
	Theme Theme

	// ImageURLPrefix is prepended to each gallery image filename.
	ImageURLPrefix string
}

// NewSectionRenderer returns a SectionRenderer using DefaultTheme.
func NewSectionRenderer(imageURLPrefix string) *SectionRenderer {
	return &SectionRenderer{Theme: DefaultTheme, ImageURLPrefix: imageURLPrefix}
}

// Render returns the sections as HTML joined by SectionSeparator.
// Even-indexed sections get the alternate background.
func (r *SectionRenderer) Render(sections []Section) string {
	if len(sections) == 0 {
		return ""
	}

	parts := make([]string, 0, len(sections))
	for i := range sections {
		parts = append(parts, r.renderSection(&sections[i], i))
	}
	return strings.Join(parts, SectionSeparator)
}

func (r *SectionRenderer) renderSection(s *Section, index int) string {
	bg := r.Theme.DefaultBackground
	if index%2 == 0 {
		bg = r.Theme.AltBackground
	}

	var b strings.Builder
	b.WriteString(`    <section class="section" style="background-color: ` + bg + `;">`)
	b.WriteString("\n        <div class=\"container\">")

	if s.Heading != "" {
		b.WriteString("\n            <div class=\"section-header\">")
		b.WriteString("\n                <h2>" + html.EscapeString(s.Heading) + "</h2>")
		b.WriteString("\n            </div>")
	}

	b.WriteString(`
            <div style="` + r.Theme.ContentStyle + `">`)

	inList := false
	for _, item := range s.Items {
		text := html.EscapeString(item.Text)
		if item.Kind == ItemListEntry {
			if !inList {
				b.WriteString(`
                <ul style="` + r.Theme.ListStyle + `">`)
				inList = true
			}
			b.WriteString("\n                    <li>" + text + "</li>")
			continue
		}

		if inList {
			b.WriteString("\n                </ul>")
			inList = false
		}
		switch item.Kind {
		case ItemSubHeading:
			b.WriteString(`
                <h3 style="` + r.Theme.SubHeadingStyle + `">` + text + `</h3>`)
		default:
			b.WriteString(`
                <p style="` + r.Theme.ParagraphStyle + `">` + text + `</p>`)
		}
	}
	if inList {
		b.WriteString("\n                </ul>")
	}

	b.WriteString("\n            </div>\n        </div>\n    </section>")
	return b.String()
}

// RenderGallery returns an image grid section, or "" for no images.
func (r *SectionRenderer) RenderGallery(images []GalleryImage) string {
	if len(images) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("    <section class=\"section\">\n        <div class=\"container\">")
	b.WriteString(`
            <div style="` + r.Theme.GalleryGridStyle + `">`)
	for _, img := range images {
		src := html.EscapeString(r.ImageURLPrefix + img.Filename)
		b.WriteString(`
                <img src="` + src + `" alt="` + html.EscapeString(r.Theme.GalleryAlt) +
			`" style="` + r.Theme.GalleryImageStyle + `" loading="lazy">`)
	}
	b.WriteString("\n            </div>\n        </div>\n    </section>")
	return b.String()
}

// RenderPage renders sections followed by the gallery, if any.
func RenderPage(r Renderer, sections []Section, images []GalleryImage) string {
	content := r.Render(sections)
	gallery := r.RenderGallery(images)
	switch {
	case gallery == "":
		return content
	case content == "":
		return gallery
	}
	return content + SectionSeparator + gallery
}
