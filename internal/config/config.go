// Package config loads the YAML run configuration of a simulation sweep.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"minion-profit/internal/catalog"
	"minion-profit/internal/enumerate"
	"minion-profit/internal/model"
	"minion-profit/internal/sink"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: game data file. Empty selects the built-in catalog.
	CatalogFile string `yaml:"catalog_file" json:"catalog_file,omitempty" jsonschema:"description=Catalog YAML file; empty selects the built-in catalog"`
	// PricesFile is a snapshot written by the price updater.
	PricesFile string `yaml:"prices_file" json:"prices_file,omitempty" jsonschema:"description=Price snapshot JSON file"`
	// FetchAuctions allows auction lookups for items the snapshot has no price for.
	FetchAuctions bool `yaml:"fetch_auctions" json:"fetch_auctions,omitempty"`

	// Optional: load the sweep from a separate YAML. If both DimensionsFile and Dimensions
	// are provided, non-empty fields of Dimensions override the file.
	DimensionsFile string               `yaml:"dimensions_file" json:"dimensions_file,omitempty"`
	Dimensions     enumerate.Dimensions `yaml:"dimensions" json:"dimensions"`

	Assumptions AssumptionsConfig `yaml:"assumptions" json:"assumptions"`
	Workers     int               `yaml:"workers" json:"workers,omitempty" jsonschema:"minimum=0,description=Worker goroutines; 0 uses GOMAXPROCS"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// AssumptionsConfig overrides the catalog assumptions; nil fields keep the catalog value.
type AssumptionsConfig struct {
	BonusesAdditive      *bool `yaml:"bonuses_additive" json:"bonuses_additive,omitempty"`
	SoulflowEnginesStack *bool `yaml:"soulflow_engines_stack" json:"soulflow_engines_stack,omitempty"`
	ConcurrentMinions    *int  `yaml:"concurrent_minions" json:"concurrent_minions,omitempty" jsonschema:"minimum=1"`
}

type OutputConfig struct {
	Path     string `yaml:"path" json:"path,omitempty"`
	Format   string `yaml:"format" json:"format,omitempty" jsonschema:"description=csv, jsonl or sqlite; empty guesses from the path extension"`
	OmitBulk bool   `yaml:"omit_bulk" json:"omit_bulk,omitempty" jsonschema:"description=Drop the per-item maps before writing"`
}

// Default is the configuration used when no file is given: the built-in catalog and sweep.
func Default() *Config {
	return &Config{Dimensions: enumerate.DefaultDimensions()}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	c.CatalogFile = resolve(dir, c.CatalogFile)
	c.PricesFile = resolve(dir, c.PricesFile)

	base := enumerate.DefaultDimensions()
	if c.DimensionsFile != "" {
		loaded, err := loadDimensionsFile(resolve(dir, c.DimensionsFile))
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	c.Dimensions = MergeDimensions(base, c.Dimensions)
	return &c, nil
}

// resolve interprets a relative path against the config file directory, falling back to
// the path as given (relative to cwd) if that doesn't exist.
func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	cand := filepath.Join(dir, path)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return path
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if err := c.Dimensions.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("dimensions: %w", err))
	}
	if c.Workers < 0 {
		errs = append(errs, errors.New("workers must be >= 0"))
	}
	if _, err := sink.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	}
	if n := c.Assumptions.ConcurrentMinions; n != nil && *n < 1 {
		errs = append(errs, errors.New("assumptions.concurrent_minions must be >= 1"))
	}
	return errors.Join(errs...)
}

// Catalog loads the configured catalog and applies the assumption overrides.
func (c *Config) Catalog() (*model.Catalog, error) {
	cat, err := catalog.Load(c.CatalogFile)
	if err != nil {
		return nil, err
	}
	c.Assumptions.Apply(&cat.Assumptions)
	return cat, nil
}

// Apply overlays the set fields onto a.
func (o AssumptionsConfig) Apply(a *model.Assumptions) {
	if o.BonusesAdditive != nil {
		a.BonusesAdditive = *o.BonusesAdditive
	}
	if o.SoulflowEnginesStack != nil {
		a.SoulflowEnginesStack = *o.SoulflowEnginesStack
	}
	if o.ConcurrentMinions != nil {
		a.ConcurrentMinions = *o.ConcurrentMinions
	}
}

type dimensionsFileWrapper struct {
	Dimensions enumerate.Dimensions `yaml:"dimensions"`
}

func loadDimensionsFile(path string) (enumerate.Dimensions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return enumerate.Dimensions{}, err
	}
	var w dimensionsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return enumerate.Dimensions{}, fmt.Errorf("dimensions file %s: %w", path, err)
	}
	return w.Dimensions, nil
}

// MergeDimensions overlays non-empty lists and set flags from override onto base.
func MergeDimensions(base, override enumerate.Dimensions) enumerate.Dimensions {
	out := base
	overlay(&out.Minions, override.Minions)
	overlay(&out.Fuels, override.Fuels)
	overlay(&out.Items, override.Items)
	overlay(&out.Storages, override.Storages)
	overlay(&out.Hoppers, override.Hoppers)
	overlay(&out.MithrilInfusion, override.MithrilInfusion)
	overlay(&out.FreeWill, override.FreeWill)
	overlay(&out.Postcard, override.Postcard)
	overlay(&out.BeaconBoosts, override.BeaconBoosts)
	overlay(&out.PetBonuses, override.PetBonuses)
	overlay(&out.CrystalBonuses, override.CrystalBonuses)
	overlay(&out.Horizons, override.Horizons)
	out.IncludeNoFuel = out.IncludeNoFuel || override.IncludeNoFuel
	out.IncludeNoItem = out.IncludeNoItem || override.IncludeNoItem
	out.IncludeNoStorage = out.IncludeNoStorage || override.IncludeNoStorage
	out.IncludeNoHopper = out.IncludeNoHopper || override.IncludeNoHopper
	return out
}

func overlay[T any](dst *[]T, src []T) {
	if len(src) > 0 {
		*dst = append([]T(nil), src...)
	}
}
