package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jacinteriors/sitepatch"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "SITEPATCH_CONFIG"

// Config describes a site and the pages to regenerate from its backup.
// Relative directories are resolved against the config file's directory.
type Config struct {
	BackupDir      string `yaml:"backupDir" toml:"backupDir"`
	SiteDir        string `yaml:"siteDir" toml:"siteDir"`
	ImageDir       string `yaml:"imageDir" toml:"imageDir"`
	ImageURLPrefix string `yaml:"imageURLPrefix" toml:"imageURLPrefix"`
	SiteURL        string `yaml:"siteURL" toml:"siteURL"`
	Sitemap        string `yaml:"sitemap" toml:"sitemap"`
	Concurrency    int    `yaml:"concurrency" toml:"concurrency"`

	Rules   sitepatch.ExtractRules `yaml:"rules" toml:"rules"`
	Recipes []*sitepatch.Recipe    `yaml:"recipes" toml:"recipes"`
	Groups  []Group                `yaml:"groups" toml:"groups"`

	// path is the file the config was loaded from.
	path string
}

// Group is a set of pages sharing a recipe and a target directory.
type Group struct {
	Name      string `yaml:"name" toml:"name"`
	Recipe    string `yaml:"recipe" toml:"recipe"`
	TargetDir string `yaml:"targetDir" toml:"targetDir"`

	// Pages maps a page slug to its backup page name.
	Pages map[string]string `yaml:"pages" toml:"pages"`
}

// DefaultConfigPath returns the config path from the environment, if any.
func DefaultConfigPath() string {
	return os.Getenv(ConfigEnv)
}

// LoadConfig reads and validates the config file at path. The format is
// chosen by extension: .yaml/.yml or .toml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, sitepatch.Errorf(sitepatch.EINVALID, "no config file: pass --config or set %s", ConfigEnv)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, sitepatch.Errorf(sitepatch.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{path: path}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, sitepatch.Errorf(sitepatch.EINVALID, "config %s: %v", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, sitepatch.Errorf(sitepatch.EINVALID, "config %s: %v", path, err)
		}
	default:
		return nil, sitepatch.Errorf(sitepatch.EINVALID, "config %s: unsupported format %q (use .yaml, .yml or .toml)", path, ext)
	}

	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// resolve makes directories relative to base absolute.
func (c *Config) resolve(base string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.BackupDir = join(c.BackupDir)
	c.SiteDir = join(c.SiteDir)
	c.ImageDir = join(c.ImageDir)
	c.Sitemap = join(c.Sitemap)
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.BackupDir == "" {
		return sitepatch.Errorf(sitepatch.EINVALID, "config: backupDir required")
	}
	if c.SiteDir == "" {
		return sitepatch.Errorf(sitepatch.EINVALID, "config: siteDir required")
	}
	if c.Sitemap != "" && c.SiteURL == "" {
		return sitepatch.Errorf(sitepatch.EINVALID, "config: siteURL required with sitemap")
	}
	if c.Concurrency < 0 {
		return sitepatch.Errorf(sitepatch.EINVALID, "config: concurrency must not be negative")
	}
	for _, r := range c.Recipes {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	registry := c.RecipeRegistry()
	for i, g := range c.Groups {
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if _, err := registry.Get(g.Recipe); err != nil {
			return sitepatch.Errorf(sitepatch.EINVALID, "config: group %s: %s", name, sitepatch.ErrorMessage(err))
		}
		if len(g.Pages) == 0 {
			return sitepatch.Errorf(sitepatch.EINVALID, "config: group %s has no pages", name)
		}
	}
	return nil
}

// RecipeRegistry returns the built-in recipes plus the configured ones.
// A configured recipe replaces a built-in of the same name.
func (c *Config) RecipeRegistry() *sitepatch.RecipeRegistry {
	return sitepatch.NewRecipeRegistry(append(sitepatch.DefaultRecipes(), c.Recipes...)...)
}

// Jobs returns one job per configured page, in group order and sorted by
// slug within a group. If only is non-empty, jobs are limited to those
// slugs; an unknown slug returns ENOTFOUND.
func (c *Config) Jobs(only []string) ([]sitepatch.Job, error) {
	want := make(map[string]bool, len(only))
	for _, slug := range only {
		want[slug] = false
	}

	var jobs []sitepatch.Job
	for _, g := range c.Groups {
		slugs := make([]string, 0, len(g.Pages))
		for slug := range g.Pages {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)

		for _, slug := range slugs {
			if len(want) > 0 {
				if _, ok := want[slug]; !ok {
					continue
				}
				want[slug] = true
			}
			jobs = append(jobs, sitepatch.Job{
				Name:   slug,
				Source: filepath.Join(c.BackupDir, htmlName(g.Pages[slug])),
				Target: filepath.Join(c.SiteDir, g.TargetDir, htmlName(slug)),
				Recipe: g.Recipe,
			})
		}
	}

	for _, slug := range only {
		if !want[slug] {
			return nil, sitepatch.Errorf(sitepatch.ENOTFOUND, "page %q is not in config", slug)
		}
	}
	return jobs, nil
}

// WatchPaths returns the directories whose changes invalidate a run: the
// backup directory and the directory holding the config file.
func (c *Config) WatchPaths() []string {
	paths := []string{c.BackupDir}
	if c.path != "" {
		paths = append(paths, filepath.Dir(c.path))
	}
	return paths
}

// htmlName appends ".html" to names without an extension.
func htmlName(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".html"
	}
	return name
}
