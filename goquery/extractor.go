// Package goquery extracts content sections from legacy HTML pages using
// CSS selectors and sibling walks over the parsed document tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jacinteriors/sitepatch"
)

// Ensure Extractor implements sitepatch.Extractor at compile time.
var _ sitepatch.Extractor = (*Extractor)(nil)

// Extractor implements sitepatch.Extractor for the legacy site's two
// page shapes: a flat description block and heading-delimited sections
// under a main content root.
type Extractor struct {
	rules sitepatch.ExtractRules

	stop        sitepatch.PhraseMatcher
	boilerplate sitepatch.PhraseMatcher
	intro       sitepatch.PhraseMatcher
	description sitepatch.PhraseMatcher
}

// NewExtractor creates an Extractor. Zero-valued rules are filled with
// defaults; compile builds a matcher for each phrase list.
func NewExtractor(rules sitepatch.ExtractRules, compile func([]string) sitepatch.PhraseMatcher) *Extractor {
	rules = rules.WithDefaults()
	return &Extractor{
		rules:       rules,
		stop:        compile(rules.StopPatterns),
		boilerplate: compile(rules.Boilerplate),
		intro:       compile(rules.IntroBoilerplate),
		description: compile(rules.DescriptionBoilerplate),
	}
}

// Extract parses html and runs each strategy pass in order.
func (e *Extractor) Extract(html string, strategies ...sitepatch.Strategy) ([]sitepatch.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitepatch.Errorf(sitepatch.EPARSE, "failed to parse HTML: %v", err)
	}

	var sections []sitepatch.Section
	for _, s := range sitepatch.ExpandStrategies(strategies) {
		switch s {
		case sitepatch.StrategyDescriptionBlock:
			sections = append(sections, e.descriptionBlock(doc)...)
		case sitepatch.StrategyHeadingDelimited:
			sections = append(sections, e.headingDelimited(doc)...)
		default:
			return nil, sitepatch.Errorf(sitepatch.EINVALID, "unknown extraction strategy %q", s)
		}
	}
	return sections, nil
}

// descriptionBlock reads the first description container as one headless
// section. Containers with headings are not flat and yield nothing.
func (e *Extractor) descriptionBlock(doc *goquery.Document) []sitepatch.Section {
	desc := doc.Find(e.rules.DescriptionSelector).First()
	if desc.Length() == 0 {
		return nil
	}
	if desc.Find("h1, h2, h3, h4, h5, h6").Length() > 0 {
		return nil
	}

	var items []sitepatch.Item
	desc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := cleanText(p.Text())
		if !e.keep(text, e.rules.MinDescriptionLength, e.description) {
			return
		}
		items = append(items, sitepatch.Paragraph(text))
	})

	if len(items) == 0 {
		return nil
	}
	return []sitepatch.Section{{Items: items}}
}

// headingDelimited groups the siblings of each h2 under the main root.
func (e *Extractor) headingDelimited(doc *goquery.Document) []sitepatch.Section {
	root := doc.Find(e.rules.RootSelector).First()
	if root.Length() == 0 {
		return nil
	}
	headings := root.Find("h2")
	if headings.Length() == 0 {
		return nil
	}

	var sections []sitepatch.Section
	if items := e.introItems(root, headings.First()); len(items) > 0 {
		sections = append(sections, sitepatch.Section{Items: items})
	}

	headings.EachWithBreak(func(_ int, h *goquery.Selection) bool {
		heading := cleanText(h.Text())
		if e.stop.Contains(heading) {
			return false
		}

		var items []sitepatch.Item
		h.NextUntil("h2").Each(func(_ int, sib *goquery.Selection) {
			items = append(items, e.classify(sib)...)
		})
		if len(items) == 0 {
			return true
		}

		// A blank heading continues the previous section.
		if heading == "" && len(sections) > 0 {
			last := &sections[len(sections)-1]
			last.Items = append(last.Items, items...)
			return true
		}
		sections = append(sections, sitepatch.Section{Heading: heading, Items: items})
		return true
	})

	return sections
}

// introItems collects paragraphs that precede the first section heading
// in document order. Paragraphs inside lists or the description container
// belong to other passes.
func (e *Extractor) introItems(root, first *goquery.Selection) []sitepatch.Item {
	stopAt := first.Get(0)

	var items []sitepatch.Item
	root.Find("h2, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Get(0) == stopAt {
			return false
		}
		if goquery.NodeName(s) != "p" {
			return true
		}
		if s.Closest("li").Length() > 0 || s.Closest(e.rules.DescriptionSelector).Length() > 0 {
			return true
		}

		text := cleanText(s.Text())
		if e.keep(text, e.rules.MinIntroLength, e.intro) {
			items = append(items, sitepatch.Paragraph(text))
		}
		return true
	})
	return items
}

// classify turns one sibling element of a section heading into items.
func (e *Extractor) classify(s *goquery.Selection) []sitepatch.Item {
	switch goquery.NodeName(s) {
	case "h3", "h4", "h5", "h6":
		if text := cleanText(s.Text()); text != "" {
			return []sitepatch.Item{sitepatch.SubHeading(text)}
		}

	case "p":
		text := cleanText(s.Text())
		if !e.keep(text, e.rules.MinParagraphLength, nil) {
			return nil
		}
		if entry, ok := stripBullet(text); ok {
			if entry == "" {
				return nil
			}
			return []sitepatch.Item{sitepatch.ListEntry(entry)}
		}
		return []sitepatch.Item{sitepatch.Paragraph(text)}

	case "ul", "ol":
		return listEntries(s)
	}
	return nil
}

// keep reports whether paragraph text passes the length threshold and the
// boilerplate filters.
func (e *Extractor) keep(text string, minLength int, extra sitepatch.PhraseMatcher) bool {
	if text == "" || textLength(text) < minLength {
		return false
	}
	if e.boilerplate.Contains(text) {
		return false
	}
	if extra != nil && extra.Contains(text) {
		return false
	}
	return true
}

// listEntries returns one entry per list item. Nested lists contribute
// their own items rather than being folded into their parent's text.
func listEntries(list *goquery.Selection) []sitepatch.Item {
	var items []sitepatch.Item
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		own := li.Clone()
		own.Find("ul, ol").Remove()
		if text := cleanText(own.Text()); text != "" {
			items = append(items, sitepatch.ListEntry(text))
		}
	})
	return items
}
