// Package config loads the TOML configuration of an export run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kittclouds/conllkit/pkg/lookups"
)

// Lookup declares one lookup table with an explicit category.
type Lookup struct {
	Name     string           `toml:"name"`
	Path     string           `toml:"path"`
	Category lookups.Category `toml:"category"`
}

// Config is the run configuration.
type Config struct {
	Name       string   `toml:"name"`
	Tokenizer  string   `toml:"tokenizer"`
	Normalize  bool     `toml:"normalize"`
	Misc       bool     `toml:"misc"`
	Workers    int      `toml:"workers"`
	Texts      string   `toml:"texts"`
	LookupsDir string   `toml:"lookups_dir"`
	Output     string   `toml:"output"`
	Zip        bool     `toml:"zip"`
	Database   string   `toml:"database"`
	Stopwords  string   `toml:"stopwords"`
	ExtraTags  []string `toml:"extra_tags"`
	AnyTag     bool     `toml:"any_tag"`
	Lookups    []Lookup `toml:"lookup"`

	// dir is the directory of the loaded file; relative paths resolve
	// against it.
	dir string
}

// Default returns the configuration used when no file is given. The layout
// mirrors a language project: new_lang/texts and new_lang/lookups.
func Default() *Config {
	return &Config{
		Tokenizer:  "standard",
		Workers:    4,
		Texts:      filepath.Join("new_lang", "texts"),
		LookupsDir: filepath.Join("new_lang", "lookups"),
		Output:     "conll_export",
		Zip:        true,
		Stopwords:  "en",
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no run can use.
func (c *Config) Validate() error {
	var errs []error
	if c.Tokenizer == "" {
		errs = append(errs, errors.New("tokenizer must be set"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Texts == "" {
		errs = append(errs, errors.New("texts must be set"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must be set"))
	}
	for i, l := range c.Lookups {
		if l.Path == "" {
			errs = append(errs, fmt.Errorf("lookup %d: path must be set", i))
		}
		if l.Category == lookups.CategoryUnknown {
			errs = append(errs, fmt.Errorf("lookup %d (%s): category must be lemma, pos or entity", i, l.Path))
		}
	}
	return errors.Join(errs...)
}

// Resolve makes a configured path absolute relative to the config file.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Sources returns the lookup sources of the run: the declared [[lookup]]
// tables, or, when none are declared, the files found in LookupsDir.
func (c *Config) Sources() ([]lookups.Source, error) {
	if len(c.Lookups) == 0 {
		dir := c.Resolve(c.LookupsDir)
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("config: lookups dir: %w", err)
		}
		return lookups.DiscoverSources(dir)
	}

	sources := make([]lookups.Source, 0, len(c.Lookups))
	for _, l := range c.Lookups {
		src := lookups.NewFileSource(c.Resolve(l.Path), l.Category)
		if l.Name != "" {
			src.Name = l.Name
		}
		sources = append(sources, src)
	}
	return sources, nil
}
