// Package ahocorasick matches text against fixed phrase lists in a single
// pass using an Aho-Corasick automaton.
package ahocorasick

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/jacinteriors/sitepatch"
)

// Ensure Matcher implements sitepatch.PhraseMatcher at compile time.
var _ sitepatch.PhraseMatcher = (*Matcher)(nil)

// Matcher reports case-insensitive substring matches against a phrase list.
// A Matcher built from no phrases matches nothing.
type Matcher struct {
	matcher *ahocorasick.Matcher
}

// NewMatcher builds a Matcher. Blank phrases are ignored.
func NewMatcher(phrases []string) *Matcher {
	normalized := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}

	m := &Matcher{}
	if len(normalized) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return m
}

// Contains returns true if text contains any phrase, ignoring case.
func (m *Matcher) Contains(text string) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	return len(m.matcher.Match([]byte(strings.ToLower(text)))) > 0
}

// Compile builds a Matcher as a sitepatch.PhraseMatcher, for use as the
// compile function of goquery.NewExtractor.
func Compile(phrases []string) sitepatch.PhraseMatcher {
	return NewMatcher(phrases)
}
