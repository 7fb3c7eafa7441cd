package model

import (
	"fmt"
	"strings"
)

// Skill categories used by fuel pruning and fuel effects.
const (
	SkillCombat  = "combat"
	SkillFarming = "farming"
	SkillMining  = "mining"
)

// AllMinions is the eligibility wildcard for held items.
const AllMinions = "all"

// SlotCapacity is the number of units a single inventory slot holds.
const SlotCapacity = 64

// FuelStack is the number of fuel units assumed to be loaded at once.
const FuelStack = 64

// Drop is one weighted output of a minion action.
// Percentage is 0..100.
type Drop struct {
	Item       string  `yaml:"item" json:"item"`
	Amount     float64 `yaml:"amount" json:"amount"`
	Percentage float64 `yaml:"percentage" json:"percentage"`
}

// Action is one half of a minion cycle (spawn or harvest).
type Action struct {
	Name  string `yaml:"name" json:"name"`
	Drops []Drop `yaml:"drops,omitempty" json:"drops,omitempty"`
}

// Level holds the per-tier stats of a minion.
type Level struct {
	Tier             int            `yaml:"tier" json:"tier"`
	SecondsPerAction float64        `yaml:"seconds_per_action" json:"seconds_per_action"`
	InventorySlots   int            `yaml:"inventory_slots" json:"inventory_slots"`
	Materials        map[string]int `yaml:"materials" json:"materials"`
	// NonCurrencyRequirement names what the tier needs besides items (an NPC, a quest...).
	// Empty means the tier can be bought outright.
	NonCurrencyRequirement string `yaml:"non_currency_requirement,omitempty" json:"non_currency_requirement,omitempty"`
}

// Minion is an immutable species definition.
type Minion struct {
	Name       string   `yaml:"name" json:"name"`
	Skill      string   `yaml:"skill" json:"skill"`
	SpawnsMobs bool     `yaml:"spawns_mobs" json:"spawns_mobs"`
	Levels     []Level  `yaml:"levels" json:"levels"`
	Actions    []Action `yaml:"actions" json:"actions"`
}

// MaxLevel is the highest tier defined for the species.
func (m *Minion) MaxLevel() int { return len(m.Levels) }

// Level returns the stats of the 1-based tier.
func (m *Minion) Level(tier int) (Level, error) {
	if tier < 1 || tier > len(m.Levels) {
		return Level{}, fmt.Errorf("%w: minion %q has no tier %d", ErrConfiguration, m.Name, tier)
	}
	return m.Levels[tier-1], nil
}

// EligibleLevels returns the final tier, preceded by the second-to-last tier when the
// final tier cannot be bought with items alone.
func (m *Minion) EligibleLevels() []int {
	n := len(m.Levels)
	if n == 0 {
		return nil
	}
	if n > 1 && m.Levels[n-1].NonCurrencyRequirement != "" {
		return []int{n - 1, n}
	}
	return []int{n}
}

// Fuel is a consumable loaded into the fuel slot.
type Fuel struct {
	Name string `yaml:"name" json:"name"`
	// DurationHours is the lifetime of one unit; nil means unlimited.
	DurationHours   *float64    `yaml:"duration_hours,omitempty" json:"duration_hours,omitempty"`
	PercentageBoost float64     `yaml:"percentage_boost,omitempty" json:"percentage_boost,omitempty"`
	CombatOnly      bool        `yaml:"combat_only,omitempty" json:"combat_only,omitempty"`
	Effect          *EffectSpec `yaml:"effect,omitempty" json:"effect,omitempty"`
}

// Finite reports whether the fuel burns out.
func (f *Fuel) Finite() bool { return f != nil && f.DurationHours != nil }

// LifetimeSeconds is how long a full stack of the fuel lasts. Zero for unlimited fuel.
func (f *Fuel) LifetimeSeconds() float64 {
	if !f.Finite() {
		return 0
	}
	return *f.DurationHours * 3600 * FuelStack
}

// HeldItem is an upgrade occupying one of the two item slots.
type HeldItem struct {
	Name            string      `yaml:"name" json:"name"`
	PercentageBoost float64     `yaml:"percentage_boost,omitempty" json:"percentage_boost,omitempty"`
	Stackable       bool        `yaml:"stackable" json:"stackable"`
	EligibleMinions []string    `yaml:"eligible_minions" json:"eligible_minions"`
	Effect          *EffectSpec `yaml:"effect,omitempty" json:"effect,omitempty"`
}

// EligibleFor reports whether the item can be placed in the named minion.
func (h *HeldItem) EligibleFor(minion string) bool {
	for _, name := range h.EligibleMinions {
		if name == AllMinions || name == minion {
			return true
		}
	}
	return false
}

// Storage is a storage chest upgrade.
type Storage struct {
	Name       string `yaml:"name" json:"name"`
	ExtraSlots int    `yaml:"extra_slots" json:"extra_slots"`
}

// ItemName is the tradeable name of the storage chest.
func (s *Storage) ItemName() string { return s.Name + " Storage" }

// Hopper sells overflow to the NPC at a reduced rate.
type Hopper struct {
	Name           string  `yaml:"name" json:"name"`
	SellPercentage float64 `yaml:"sell_percentage" json:"sell_percentage"`
}

// CompactionRule turns InputCount units of one item into one unit of Output.
type CompactionRule struct {
	InputCount int    `yaml:"input_count" json:"input_count"`
	Output     string `yaml:"output" json:"output"`
}

// Assumptions carries the modeling choices the game data leaves open.
type Assumptions struct {
	// BonusesAdditive adds pet and crystal bonuses to the speed percentage;
	// when false they multiply it.
	BonusesAdditive bool `yaml:"bonuses_additive" json:"bonuses_additive"`
	// SoulflowEnginesStack lets a second soulflow engine apply its effect again.
	SoulflowEnginesStack bool `yaml:"soulflow_engines_stack" json:"soulflow_engines_stack"`
	// ConcurrentMinions is the number of minions sharing island-wide upgrades.
	ConcurrentMinions int `yaml:"concurrent_minions" json:"concurrent_minions"`
}

// Catalog is the read-only game data shared by every simulation of a run.
type Catalog struct {
	Minions        []Minion                  `yaml:"minions" json:"minions"`
	Fuels          []Fuel                    `yaml:"fuels" json:"fuels"`
	Items          []HeldItem                `yaml:"items" json:"items"`
	Storages       []Storage                 `yaml:"storages" json:"storages"`
	Hoppers        []Hopper                  `yaml:"hoppers" json:"hoppers"`
	Smelting       map[string]string         `yaml:"smelting" json:"smelting"`
	Compactor      map[string]CompactionRule `yaml:"compactor" json:"compactor"`
	SuperCompactor map[string]CompactionRule `yaml:"super_compactor" json:"super_compactor"`
	// ExclusivePairs lists held items that may not be combined in one minion.
	ExclusivePairs [][2]string `yaml:"exclusive_pairs" json:"exclusive_pairs"`
	// PlaceholderMaterials are level materials with no market price (tools, pelts...).
	PlaceholderMaterials []string    `yaml:"placeholder_materials" json:"placeholder_materials"`
	Assumptions          Assumptions `yaml:"assumptions" json:"assumptions"`
}

func (c *Catalog) Minion(name string) (*Minion, error) {
	for i := range c.Minions {
		if c.Minions[i].Name == name {
			return &c.Minions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown minion %q", ErrConfiguration, name)
}

// Fuel returns nil for the empty name.
func (c *Catalog) Fuel(name string) (*Fuel, error) {
	if name == "" {
		return nil, nil
	}
	for i := range c.Fuels {
		if c.Fuels[i].Name == name {
			return &c.Fuels[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown fuel %q", ErrConfiguration, name)
}

// Item returns nil for the empty name.
func (c *Catalog) Item(name string) (*HeldItem, error) {
	if name == "" {
		return nil, nil
	}
	for i := range c.Items {
		if c.Items[i].Name == name {
			return &c.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown item %q", ErrConfiguration, name)
}

// Storage returns nil for the empty name.
func (c *Catalog) Storage(name string) (*Storage, error) {
	if name == "" {
		return nil, nil
	}
	for i := range c.Storages {
		if c.Storages[i].Name == name {
			return &c.Storages[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown storage %q", ErrConfiguration, name)
}

// Hopper returns nil for the empty name.
func (c *Catalog) Hopper(name string) (*Hopper, error) {
	if name == "" {
		return nil, nil
	}
	for i := range c.Hoppers {
		if c.Hoppers[i].Name == name {
			return &c.Hoppers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown hopper %q", ErrConfiguration, name)
}

// Exclusive reports whether the two items form a forbidden combination, in either order.
func (c *Catalog) Exclusive(a, b string) bool {
	for _, p := range c.ExclusivePairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// IsPlaceholder reports whether a level material is skipped when pricing setup cost.
// Names compare case-insensitively.
func (c *Catalog) IsPlaceholder(material string) bool {
	for _, p := range c.PlaceholderMaterials {
		if strings.EqualFold(p, material) {
			return true
		}
	}
	return false
}

// ConcurrentMinions defaults to 29 when unset.
func (c *Catalog) ConcurrentMinions() int {
	if c.Assumptions.ConcurrentMinions > 0 {
		return c.Assumptions.ConcurrentMinions
	}
	return 29
}
