package mock

import "github.com/jacinteriors/sitepatch"

var _ sitepatch.Patcher = (*Patcher)(nil)

// Patcher is a mock implementation of sitepatch.Patcher.
type Patcher struct {
	PatchFn func(doc string, start, end sitepatch.Anchor, replacement string) (string, error)
}

func (p *Patcher) Patch(doc string, start, end sitepatch.Anchor, replacement string) (string, error) {
	return p.PatchFn(doc, start, end, replacement)
}
