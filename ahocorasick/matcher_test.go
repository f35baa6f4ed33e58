package ahocorasick_test

import (
	"testing"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/ahocorasick"
	"github.com/stretchr/testify/assert"
)

var _ sitepatch.PhraseMatcher = (*ahocorasick.Matcher)(nil)

func TestMatcher_Contains(t *testing.T) {
	t.Parallel()

	stop := ahocorasick.NewMatcher([]string{"Contact", "Ready to create", "Ready to transform"})

	tests := []struct {
		text string
		want bool
	}{
		{text: "Contact Us", want: true},
		{text: "CONTACT", want: true},
		{text: "Ready to create your dream home?", want: true},
		{text: "Ready to Transform Your Space", want: true},
		{text: "Our Services", want: false},
		{text: "Ready to go", want: false},
		{text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, stop.Contains(tt.text))
		})
	}
}

func TestMatcher_Empty(t *testing.T) {
	t.Parallel()

	t.Run("no phrases matches nothing", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher(nil)

		assert.False(t, m.Contains("anything at all"))
	})

	t.Run("blank phrases are ignored", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"", "   ", " Caption "})

		assert.False(t, m.Contains("text"))
		assert.True(t, m.Contains("caption: the living room"))
	})

	t.Run("nil matcher matches nothing", func(t *testing.T) {
		t.Parallel()

		var m *ahocorasick.Matcher

		assert.False(t, m.Contains("text"))
	})
}
