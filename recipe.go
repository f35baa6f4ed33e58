package sitepatch

import (
	"sort"
	"strconv"
	"sync"
)

// Recipe is a named, versioned description of one page patch: which
// extraction passes to run, where the generated content goes, and whether
// an image gallery follows it.
type Recipe struct {
	Name        string     `yaml:"name" toml:"name" json:"name"`
	Version     int        `yaml:"version" toml:"version" json:"version"`
	Description string     `yaml:"description" toml:"description" json:"description"`
	Strategies  []Strategy `yaml:"strategies" toml:"strategies" json:"strategies"`
	Start       Anchor     `yaml:"start" toml:"start" json:"start"`
	End         Anchor     `yaml:"end" toml:"end" json:"end"`
	Gallery     bool       `yaml:"gallery" toml:"gallery" json:"gallery"`
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "recipe name required")
	}
	for _, s := range r.Strategies {
		if _, err := ParseStrategy(string(s)); err != nil {
			return Errorf(EINVALID, "recipe %q: %s", r.Name, ErrorMessage(err))
		}
	}
	if err := ValidateRange(r.Start, r.End); err != nil {
		return Errorf(EINVALID, "recipe %q: %s", r.Name, ErrorMessage(err))
	}
	return nil
}

// ID returns the recipe's versioned identifier, e.g. "city-sections@v3".
func (r *Recipe) ID() string {
	return r.Name + "@v" + strconv.Itoa(r.Version)
}

// Built-in recipe names.
const (
	RecipeCitySections    = "city-sections"
	RecipeServiceSections = "service-sections"
	RecipeMarkerSections  = "marker-sections"
)

// Comment markers used by the marker-sections recipe.
const (
	MarkerStart = "sitepatch:start"
	MarkerEnd   = "sitepatch:end"
)

// headerEnd is the end of a page's first <section>, its intro header.
var headerEnd = Anchor{Tag: "section", Position: AnchorAfter}

// ctaStart is the start of the page's fixed call-to-action block.
var ctaStart = Anchor{Tag: "section", Class: "cta-section", Position: AnchorBefore}

// DefaultRecipes returns the built-in recipes.
func DefaultRecipes() []*Recipe {
	return []*Recipe{
		{
			Name:        RecipeCitySections,
			Version:     3,
			Description: "City landing page: backup content and city gallery between header and CTA",
			Strategies:  []Strategy{StrategyAuto},
			Start:       headerEnd,
			End:         ctaStart,
			Gallery:     true,
		},
		{
			Name:        RecipeServiceSections,
			Version:     2,
			Description: "Service page: heading-delimited sections between header and CTA",
			Strategies:  []Strategy{StrategyHeadingDelimited},
			Start:       headerEnd,
			End:         ctaStart,
		},
		{
			Name:        RecipeMarkerSections,
			Version:     1,
			Description: "Any page: content between sitepatch comment markers",
			Strategies:  []Strategy{StrategyAuto},
			Start:       Anchor{Marker: MarkerStart, Position: AnchorAfter},
			End:         Anchor{Marker: MarkerEnd, Position: AnchorBefore},
		},
	}
}

// RecipeRegistry holds recipes by name. It is safe for concurrent use.
type RecipeRegistry struct {
	mu      sync.RWMutex
	recipes map[string]*Recipe
}

// NewRecipeRegistry returns a registry containing the given recipes.
func NewRecipeRegistry(recipes ...*Recipe) *RecipeRegistry {
	r := &RecipeRegistry{recipes: make(map[string]*Recipe)}
	for _, recipe := range recipes {
		r.recipes[recipe.Name] = recipe
	}
	return r
}

// Get returns the recipe with the given name.
// Returns ENOTFOUND if no recipe is registered under that name.
func (r *RecipeRegistry) Get(name string) (*Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.recipes[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "recipe %q not found", name)
	}
	return recipe, nil
}

// Register validates and adds a recipe, replacing any recipe of the same name.
func (r *RecipeRegistry) Register(recipe *Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipe.Name] = recipe
	return nil
}

// List returns all recipes sorted by name.
func (r *RecipeRegistry) List() []*Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipes := make([]*Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})
	return recipes
}
