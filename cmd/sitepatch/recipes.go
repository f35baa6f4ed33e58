package main

import (
	"fmt"

	"github.com/jacinteriors/sitepatch"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the recipes command.
func (c *RecipesCmd) Run(deps *Dependencies) error {
	recipes := sitepatch.NewRecipeRegistry(sitepatch.DefaultRecipes()...)
	if path := configPath(c.Config, deps); path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
			return err
		}
		recipes = cfg.RecipeRegistry()
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Recipe", "Strategies", "Start", "End", "Gallery", "Description"})
	for _, r := range recipes.List() {
		t.AppendRow(table.Row{
			r.ID(),
			sitepatch.ExpandStrategies(r.Strategies),
			r.Start.String(),
			r.End.String(),
			r.Gallery,
			r.Description,
		})
	}
	t.Render()
	return nil
}
