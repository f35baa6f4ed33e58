package sitepatch

// Default extraction thresholds, in characters.
const (
	DefaultMinParagraphLength   = 20
	DefaultMinIntroLength       = 20
	DefaultMinDescriptionLength = 30
)

// Default selectors for legacy backup pages.
const (
	DefaultRootSelector        = "div.one-whole.column"
	DefaultDescriptionSelector = "div.description"
)

// ExtractRules configures where content is found and which text is noise.
// Phrase lists match case-insensitively anywhere in the text.
type ExtractRules struct {
	RootSelector        string `yaml:"rootSelector" toml:"rootSelector" json:"rootSelector"`
	DescriptionSelector string `yaml:"descriptionSelector" toml:"descriptionSelector" json:"descriptionSelector"`

	MinParagraphLength   int `yaml:"minParagraphLength" toml:"minParagraphLength" json:"minParagraphLength"`
	MinIntroLength       int `yaml:"minIntroLength" toml:"minIntroLength" json:"minIntroLength"`
	MinDescriptionLength int `yaml:"minDescriptionLength" toml:"minDescriptionLength" json:"minDescriptionLength"`

	// StopPatterns end heading-delimited extraction at the first section
	// heading that contains one of them.
	StopPatterns []string `yaml:"stopPatterns" toml:"stopPatterns" json:"stopPatterns"`

	// Boilerplate rejects paragraphs in every pass.
	Boilerplate []string `yaml:"boilerplate" toml:"boilerplate" json:"boilerplate"`

	// IntroBoilerplate additionally rejects intro paragraphs.
	IntroBoilerplate []string `yaml:"introBoilerplate" toml:"introBoilerplate" json:"introBoilerplate"`

	// DescriptionBoilerplate additionally rejects description paragraphs.
	DescriptionBoilerplate []string `yaml:"descriptionBoilerplate" toml:"descriptionBoilerplate" json:"descriptionBoilerplate"`
}

// DefaultExtractRules returns the rules used for the legacy site backup.
func DefaultExtractRules() ExtractRules {
	return ExtractRules{
		RootSelector:           DefaultRootSelector,
		DescriptionSelector:    DefaultDescriptionSelector,
		MinParagraphLength:     DefaultMinParagraphLength,
		MinIntroLength:         DefaultMinIntroLength,
		MinDescriptionLength:   DefaultMinDescriptionLength,
		StopPatterns:           []string{"Contact", "Ready to create", "Ready to transform"},
		Boilerplate:            []string{"Now Open in"},
		IntroBoilerplate:       []string{"Caption"},
		DescriptionBoilerplate: []string{"Contact"},
	}
}

// WithDefaults returns a copy of r with zero-valued fields filled from
// DefaultExtractRules. A nil phrase list takes the default; an empty,
// non-nil list disables the filter.
func (r ExtractRules) WithDefaults() ExtractRules {
	d := DefaultExtractRules()
	if r.RootSelector == "" {
		r.RootSelector = d.RootSelector
	}
	if r.DescriptionSelector == "" {
		r.DescriptionSelector = d.DescriptionSelector
	}
	if r.MinParagraphLength <= 0 {
		r.MinParagraphLength = d.MinParagraphLength
	}
	if r.MinIntroLength <= 0 {
		r.MinIntroLength = d.MinIntroLength
	}
	if r.MinDescriptionLength <= 0 {
		r.MinDescriptionLength = d.MinDescriptionLength
	}
	if r.StopPatterns == nil {
		r.StopPatterns = d.StopPatterns
	}
	if r.Boilerplate == nil {
		r.Boilerplate = d.Boilerplate
	}
	if r.IntroBoilerplate == nil {
		r.IntroBoilerplate = d.IntroBoilerplate
	}
	if r.DescriptionBoilerplate == nil {
		r.DescriptionBoilerplate = d.DescriptionBoilerplate
	}
	return r
}
