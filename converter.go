package sitepatch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as rendered sections,
	// into Markdown for terminal previews.
	Convert(html string) (string, error)
}
