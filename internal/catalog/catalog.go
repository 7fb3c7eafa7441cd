// Package catalog loads the read-only game data: minion species, fuels, held items,
// storages, hoppers and the smelting and compaction tables.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"minion-profit/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns a fresh copy of the built-in catalog.
func Default() (*model.Catalog, error) {
	c, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*model.Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document and checks the structure every simulation relies on.
// Entries with bad effect parameters are accepted; they fail the tasks that use them.
func Parse(raw []byte) (*model.Catalog, error) {
	var c model.Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if err := checkStructure(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func checkStructure(c *model.Catalog) error {
	if len(c.Minions) == 0 {
		return errors.New("no minions defined")
	}
	seen := map[string]bool{}
	for _, m := range c.Minions {
		if m.Name == "" {
			return errors.New("minion without a name")
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate minion %q", m.Name)
		}
		seen[m.Name] = true
		for i, l := range m.Levels {
			if l.Tier != i+1 {
				return fmt.Errorf("minion %q: level %d has tier %d", m.Name, i+1, l.Tier)
			}
		}
	}
	return nil
}

// Problems lists catalog entries that will fail any task using them. The list is sorted
// so it can be logged deterministically.
func Problems(c *model.Catalog) []string {
	var out []string
	add := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(format, args...))
	}
	for _, m := range c.Minions {
		if len(m.Levels) == 0 {
			add("minion %q has no levels", m.Name)
		}
		for _, l := range m.Levels {
			if l.SecondsPerAction <= 0 {
				add("minion %q tier %d: seconds_per_action must be > 0", m.Name, l.Tier)
			}
		}
	}
	for _, f := range c.Fuels {
		if _, err := f.Effect.Resolve(); err != nil {
			add("fuel %q: %v", f.Name, err)
		}
		if f.DurationHours != nil && *f.DurationHours <= 0 {
			add("fuel %q: duration_hours must be > 0", f.Name)
		}
	}
	for _, it := range c.Items {
		if _, err := it.Effect.Resolve(); err != nil {
			add("item %q: %v", it.Name, err)
		}
		if len(it.EligibleMinions) == 0 {
			add("item %q has no eligible minions", it.Name)
		}
	}
	for name, rule := range c.Compactor {
		if rule.InputCount <= 0 || rule.Output == "" {
			add("compactor rule %q is incomplete", name)
		}
	}
	for name, rule := range c.SuperCompactor {
		if rule.InputCount <= 0 || rule.Output == "" {
			add("super compactor rule %q is incomplete", name)
		}
	}
	sort.Strings(out)
	return out
}

// Names returns the names of the catalog entries of one kind, in catalog order.
func Names(c *model.Catalog, kind string) ([]string, error) {
	var out []string
	switch kind {
	case "minions":
		for _, m := range c.Minions {
			out = append(out, m.Name)
		}
	case "fuels":
		for _, f := range c.Fuels {
			out = append(out, f.Name)
		}
	case "items":
		for _, it := range c.Items {
			out = append(out, it.Name)
		}
	case "storages":
		for _, s := range c.Storages {
			out = append(out, s.Name)
		}
	case "hoppers":
		for _, h := range c.Hoppers {
			out = append(out, h.Name)
		}
	default:
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	return out, nil
}
