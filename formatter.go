package sitepatch

import "strings"

// IntroHeading labels a section without a heading in text output.
const IntroHeading = "(intro)"

// FormatSections formats sections as plain text for terminal display.
// Each section starts with "## " and its heading; sub-headings get "### ",
// list entries "- ". Sections are separated by blank lines.
func FormatSections(sections []Section) string {
	if len(sections) == 0 {
		return ""
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		heading := s.Heading
		if heading == "" {
			heading = IntroHeading
		}

		lines := make([]string, 0, len(s.Items)+1)
		lines = append(lines, "## "+heading)
		for _, item := range s.Items {
			switch item.Kind {
			case ItemSubHeading:
				lines = append(lines, "### "+item.Text)
			case ItemListEntry:
				lines = append(lines, "- "+item.Text)
			default:
				lines = append(lines, item.Text)
			}
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}
