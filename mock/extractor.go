package mock

import "github.com/jacinteriors/sitepatch"

var _ sitepatch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitepatch.Extractor.
type Extractor struct {
	ExtractFn func(html string, strategies ...sitepatch.Strategy) ([]sitepatch.Section, error)
}

func (e *Extractor) Extract(html string, strategies ...sitepatch.Strategy) ([]sitepatch.Section, error) {
	return e.ExtractFn(html, strategies...)
}

var _ sitepatch.PhraseMatcher = (*PhraseMatcher)(nil)

// PhraseMatcher is a mock implementation of sitepatch.PhraseMatcher.
type PhraseMatcher struct {
	ContainsFn func(text string) bool
}

func (m *PhraseMatcher) Contains(text string) bool {
	return m.ContainsFn(text)
}
