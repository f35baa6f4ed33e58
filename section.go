package sitepatch

import "strings"

// ItemKind identifies the kind of a content item.
type ItemKind string

// Content item kinds.
const (
	ItemSubHeading ItemKind = "subheading"
	ItemParagraph  ItemKind = "paragraph"
	ItemListEntry  ItemKind = "list_entry"
)

// Item is a single piece of extracted content within a section.
// Text is trimmed, HTML-unescaped and never empty.
type Item struct {
	Kind ItemKind `json:"kind"`
	Text string   `json:"text"`
}

// SubHeading returns a sub-heading item.
func SubHeading(text string) Item {
	return Item{Kind: ItemSubHeading, Text: text}
}

// Paragraph returns a paragraph item.
func Paragraph(text string) Item {
	return Item{Kind: ItemParagraph, Text: text}
}

// ListEntry returns a list entry item.
func ListEntry(text string) Item {
	return Item{Kind: ItemListEntry, Text: text}
}

// Section is a heading plus its ordered content items.
// An empty heading marks an implicit intro section.
type Section struct {
	Heading string `json:"heading"`
	Items   []Item `json:"items"`
}

// Validate returns an error if the section would render as invalid output.
func (s *Section) Validate() error {
	if len(s.Items) == 0 {
		return Errorf(EINVALID, "section %q has no items", s.Heading)
	}
	for i, item := range s.Items {
		switch item.Kind {
		case ItemSubHeading, ItemParagraph, ItemListEntry:
		default:
			return Errorf(EINVALID, "section %q item %d: unknown kind %q", s.Heading, i, item.Kind)
		}
		if strings.TrimSpace(item.Text) == "" {
			return Errorf(EINVALID, "section %q item %d: empty text", s.Heading, i)
		}
	}
	return nil
}

// Strategy selects how content is located in a source document.
type Strategy string

// Extraction strategies.
const (
	// StrategyDescriptionBlock reads a flat container of paragraphs
	// into a single section without a heading.
	StrategyDescriptionBlock Strategy = "description-block"

	// StrategyHeadingDelimited groups the siblings following each section
	// heading of the main content root, stopping at contact/CTA headings.
	StrategyHeadingDelimited Strategy = "heading-delimited"

	// StrategyAuto runs the description-block pass followed by the
	// heading-delimited pass and concatenates their results.
	StrategyAuto Strategy = "auto"
)

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyDescriptionBlock:
		return StrategyDescriptionBlock, nil
	case StrategyHeadingDelimited:
		return StrategyHeadingDelimited, nil
	case StrategyAuto, "":
		return StrategyAuto, nil
	}
	return "", Errorf(EINVALID, "unknown extraction strategy %q", s)
}

// ExpandStrategies flattens StrategyAuto into its ordered passes.
// An empty list means StrategyAuto.
func ExpandStrategies(strategies []Strategy) []Strategy {
	if len(strategies) == 0 {
		strategies = []Strategy{StrategyAuto}
	}
	out := make([]Strategy, 0, len(strategies)+1)
	for _, s := range strategies {
		if s == StrategyAuto {
			out = append(out, StrategyDescriptionBlock, StrategyHeadingDelimited)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Extractor converts a loosely structured HTML document into sections.
type Extractor interface {
	// Extract parses the document and runs each strategy pass in order,
	// concatenating results. An empty result means there is nothing to
	// extract and is not an error. Returns EPARSE if the document cannot
	// be parsed at all.
	Extract(html string, strategies ...Strategy) ([]Section, error)
}

// PhraseMatcher reports whether text contains any of a fixed set of phrases.
type PhraseMatcher interface {
	Contains(text string) bool
}
