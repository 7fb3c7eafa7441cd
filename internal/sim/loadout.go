package sim

import (
	"fmt"

	"minion-profit/internal/model"
)

// Loadout is a task resolved against the catalog. Pointers reference read-only catalog
// entries; nil means the slot is empty.
type Loadout struct {
	Task   model.Task
	Minion *model.Minion
	Level  model.Level

	Fuel       *model.Fuel
	FuelEffect model.Effect

	Items       [2]*model.HeldItem
	ItemEffects [2]model.Effect

	Storage *model.Storage
	Hopper  *model.Hopper
}

// Resolve looks up every name of t and validates the combination.
// All failures wrap model.ErrConfiguration.
func Resolve(cat *model.Catalog, t model.Task) (*Loadout, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	l := &Loadout{Task: t}
	var err error
	if l.Minion, err = cat.Minion(t.Minion); err != nil {
		return nil, err
	}
	if l.Level, err = l.Minion.Level(t.Level); err != nil {
		return nil, err
	}
	if l.Level.SecondsPerAction <= 0 {
		return nil, fmt.Errorf("%w: minion %q tier %d has no action time", model.ErrConfiguration, t.Minion, t.Level)
	}
	if l.Fuel, err = cat.Fuel(t.Fuel); err != nil {
		return nil, err
	}
	if l.Fuel != nil {
		if l.FuelEffect, err = l.Fuel.Effect.Resolve(); err != nil {
			return nil, fmt.Errorf("fuel %q: %w", l.Fuel.Name, err)
		}
		if l.Fuel.DurationHours != nil && *l.Fuel.DurationHours <= 0 {
			return nil, fmt.Errorf("%w: fuel %q has a non-positive duration", model.ErrConfiguration, l.Fuel.Name)
		}
	}
	for i, name := range [2]string{t.Item1, t.Item2} {
		item, err := cat.Item(name)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		if !item.EligibleFor(l.Minion.Name) {
			return nil, fmt.Errorf("%w: item %q cannot be used in a %s minion", model.ErrConfiguration, item.Name, l.Minion.Name)
		}
		if l.ItemEffects[i], err = item.Effect.Resolve(); err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Name, err)
		}
		l.Items[i] = item
	}
	if t.Item1 != "" && t.Item1 == t.Item2 && !l.Items[0].Stackable {
		return nil, fmt.Errorf("%w: item %q does not stack", model.ErrConfiguration, t.Item1)
	}
	if t.Item1 != "" && t.Item2 != "" && cat.Exclusive(t.Item1, t.Item2) {
		return nil, fmt.Errorf("%w: items %q and %q cannot be combined", model.ErrConfiguration, t.Item1, t.Item2)
	}
	if l.Storage, err = cat.Storage(t.Storage); err != nil {
		return nil, err
	}
	if l.Hopper, err = cat.Hopper(t.Hopper); err != nil {
		return nil, err
	}
	return l, nil
}

// Compaction reports which compaction stages the held items enable.
func (l *Loadout) Compaction() (compactor, super bool) {
	for _, e := range l.ItemEffects {
		switch e.(type) {
		case model.Compactor:
			compactor = true
		case model.SuperCompactor:
			super = true
		}
	}
	return compactor, super
}

// PrimarySlots and StorageSlots size the inventory.
func (l *Loadout) PrimarySlots() int { return l.Level.InventorySlots }

func (l *Loadout) StorageSlots() int {
	if l.Storage == nil {
		return 0
	}
	return l.Storage.ExtraSlots
}
