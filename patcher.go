package sitepatch

import (
	"fmt"
	"strings"
)

// AnchorPosition selects which edge of a matched anchor is used.
type AnchorPosition string

// Anchor positions.
const (
	// AnchorBefore resolves to the offset where the match begins.
	AnchorBefore AnchorPosition = "before"

	// AnchorAfter resolves to the offset just past the match. For an
	// element this is past its matching close tag.
	AnchorAfter AnchorPosition = "after"
)

// Anchor identifies a boundary in a target document.
// Either Marker (an HTML comment's trimmed text) or Tag must be set.
type Anchor struct {
	Tag      string         `yaml:"tag,omitempty" toml:"tag,omitempty" json:"tag,omitempty"`
	Class    string         `yaml:"class,omitempty" toml:"class,omitempty" json:"class,omitempty"`
	Marker   string         `yaml:"marker,omitempty" toml:"marker,omitempty" json:"marker,omitempty"`
	Position AnchorPosition `yaml:"position" toml:"position" json:"position"`
}

// Validate returns an error if the anchor cannot be resolved.
func (a *Anchor) Validate() error {
	if a.Tag == "" && a.Marker == "" {
		return Errorf(EINVALID, "anchor requires a tag or a marker")
	}
	if a.Tag != "" && a.Marker != "" {
		return Errorf(EINVALID, "anchor cannot have both tag %q and marker %q", a.Tag, a.Marker)
	}
	switch a.Position {
	case AnchorBefore, AnchorAfter:
	default:
		return Errorf(EINVALID, "anchor position must be %q or %q", AnchorBefore, AnchorAfter)
	}
	return nil
}

// ValidateRange returns an error if start and end cannot bound a replaced
// region that leaves both anchors in place: start must resolve to the
// edge after its match and end to the edge before its match.
func ValidateRange(start, end Anchor) error {
	if err := start.Validate(); err != nil {
		return Errorf(EINVALID, "start anchor: %s", ErrorMessage(err))
	}
	if err := end.Validate(); err != nil {
		return Errorf(EINVALID, "end anchor: %s", ErrorMessage(err))
	}
	if start.Position != AnchorAfter {
		return Errorf(EINVALID, "start anchor position must be %q, got %q", AnchorAfter, start.Position)
	}
	if end.Position != AnchorBefore {
		return Errorf(EINVALID, "end anchor position must be %q, got %q", AnchorBefore, end.Position)
	}
	return nil
}

// Classes returns the required class tokens.
func (a Anchor) Classes() []string {
	return strings.Fields(a.Class)
}

// String describes the anchor for messages and logs.
func (a Anchor) String() string {
	if a.Marker != "" {
		return fmt.Sprintf("%s <!-- %s -->", a.Position, a.Marker)
	}
	if a.Class != "" {
		return fmt.Sprintf("%s <%s class=%q>", a.Position, a.Tag, a.Class)
	}
	return fmt.Sprintf("%s <%s>", a.Position, a.Tag)
}

// Patcher splices generated content into a target document.
type Patcher interface {
	// Patch replaces the region between the first match of start and the
	// following match of end with replacement, keeping both anchors.
	// Returns EINVALID if the anchors fail ValidateRange and EANCHOR if
	// either anchor is missing; the document is never
	// partially modified. Patching twice with the same replacement yields
	// the same output as patching once.
	Patch(doc string, start, end Anchor, replacement string) (string, error)
}
