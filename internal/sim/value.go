package sim

import (
	"context"
	"fmt"
	"strings"

	"minion-profit/internal/model"
)

// Item names priced for modifiers and island upgrades.
const (
	ItemMithrilInfusion    = "Mithril Infusion"
	ItemFreeWill           = "Free Will"
	ItemPostcard           = "Postcard"
	ItemBeacon             = "Beacon V"
	ItemPowerCrystal       = "Power Crystal"
	ItemScorchedCrystal    = "Scorched Power Crystal"
	materialCoins          = "coins"
	beaconCrystalDaysShare = 2
)

// PriceReference resolves market data by item name.
type PriceReference interface {
	// Lookup fails with model.ErrNotFound for unknown names.
	Lookup(ctx context.Context, name string) (model.PriceRecord, error)
	// LowestPrice falls back to the auction average when the item has no bazaar price.
	LowestPrice(ctx context.Context, name string) (float64, error)
}

// Valuation is the coin value of a window, before truncation.
type Valuation struct {
	HopperCoins float64
	NPC         float64
	InstantSell float64
	SellOrder   float64
	Optimal     float64
	FuelCost    float64
}

// SetupCost splits what a setup costs into what can and cannot be sold back.
type SetupCost struct {
	Recoverable    float64
	NonRecoverable float64
}

func (s SetupCost) Total() float64 { return s.Recoverable + s.NonRecoverable }

// Value prices the inventory, the hopper overflow and the consumables burnt during the window.
func Value(ctx context.Context, prices PriceReference, cat *model.Catalog, l *Loadout, inventory, overflow map[string]int64) (Valuation, error) {
	var v Valuation
	seconds := float64(l.Task.Seconds)

	if l.Hopper != nil {
		for _, item := range sortedKeys(overflow) {
			rec, err := prices.Lookup(ctx, item)
			if err != nil {
				return Valuation{}, fmt.Errorf("hopper value: %w", err)
			}
			v.HopperCoins += float64(overflow[item]) * rec.NPC() * l.Hopper.SellPercentage / 100
		}
	}

	for _, item := range sortedKeys(inventory) {
		rec, err := prices.Lookup(ctx, item)
		if err != nil {
			return Valuation{}, fmt.Errorf("inventory value: %w", err)
		}
		n := float64(inventory[item])
		npc, instant, order := rec.NPC()*n, rec.InstantSell()*n, rec.SellOrder()*n
		v.NPC += npc
		v.InstantSell += instant
		v.SellOrder += order
		v.Optimal += max(npc, instant, order)
	}

	if l.Fuel.Finite() {
		unit, err := buyPrice(ctx, prices, l.Fuel.Name)
		if err != nil {
			return Valuation{}, fmt.Errorf("fuel cost: %w", err)
		}
		v.FuelCost = seconds / (*l.Fuel.DurationHours * 3600) * unit
	}

	if l.Task.BeaconBoost > 0 {
		crystal := ItemPowerCrystal
		if l.Task.BeaconBoost%2 == 1 {
			crystal = ItemScorchedCrystal
		}
		price, err := prices.LowestPrice(ctx, crystal)
		if err != nil {
			return Valuation{}, fmt.Errorf("beacon crystal: %w", err)
		}
		perDay := price / beaconCrystalDaysShare / float64(cat.ConcurrentMinions())
		v.FuelCost += perDay * seconds / secondsPerDay
	}
	return v, nil
}

// buyPrice is what one unit costs to buy: the sell-order price when the bazaar has one.
func buyPrice(ctx context.Context, prices PriceReference, name string) (float64, error) {
	rec, err := prices.Lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	if rec.BazaarBuyPrice != nil {
		return *rec.BazaarBuyPrice, nil
	}
	return prices.LowestPrice(ctx, name)
}

// Setup prices the one-off investment behind a loadout.
func Setup(ctx context.Context, prices PriceReference, cat *model.Catalog, l *Loadout) (SetupCost, error) {
	var s SetupCost
	share := float64(cat.ConcurrentMinions())

	levels, err := LevelCost(ctx, prices, cat, l.Minion, l.Task.Level)
	if err != nil {
		return SetupCost{}, err
	}
	s.NonRecoverable += levels

	type part struct {
		name        string
		divisor     float64
		recoverable bool
	}
	var parts []part
	if l.Fuel != nil && !l.Fuel.Finite() {
		parts = append(parts, part{l.Fuel.Name, 1, true})
	}
	if l.Hopper != nil {
		parts = append(parts, part{l.Hopper.Name, 1, true})
	}
	for _, it := range l.Items {
		if it != nil {
			parts = append(parts, part{it.Name, 1, true})
		}
	}
	if l.Storage != nil {
		parts = append(parts, part{l.Storage.ItemName(), 1, true})
	}
	if l.Task.MithrilInfusion {
		parts = append(parts, part{ItemMithrilInfusion, 1, false})
	}
	if l.Task.FreeWill {
		parts = append(parts, part{ItemFreeWill, 1, false})
	}
	if l.Task.Postcard {
		parts = append(parts, part{ItemPostcard, share, true})
	}
	if l.Task.BeaconBoost > 0 {
		parts = append(parts, part{ItemBeacon, share, true})
	}

	for _, p := range parts {
		price, err := prices.LowestPrice(ctx, p.name)
		if err != nil {
			return SetupCost{}, fmt.Errorf("setup cost: %w", err)
		}
		if p.recoverable {
			s.Recoverable += price / p.divisor
		} else {
			s.NonRecoverable += price / p.divisor
		}
	}
	return s, nil
}

// LevelCost is the material cost of upgrading a minion from nothing to tier.
// Placeholder materials are skipped and coins count at face value.
func LevelCost(ctx context.Context, prices PriceReference, cat *model.Catalog, m *model.Minion, tier int) (float64, error) {
	var total float64
	for t := 1; t <= tier; t++ {
		lvl, err := m.Level(t)
		if err != nil {
			return 0, err
		}
		for _, material := range sortedKeys(lvl.Materials) {
			n := float64(lvl.Materials[material])
			switch {
			case cat.IsPlaceholder(material):
				continue
			case strings.EqualFold(material, materialCoins):
				total += n
			default:
				price, err := prices.LowestPrice(ctx, material)
				if err != nil {
					return 0, fmt.Errorf("tier %d material: %w", t, err)
				}
				total += price * n
			}
		}
	}
	return total, nil
}

// PricedItems lists every item name a simulation over cat may look up, sorted.
func PricedItems(cat *model.Catalog) []string {
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" {
			seen[name] = true
		}
	}
	for _, name := range []string{ItemMithrilInfusion, ItemFreeWill, ItemPostcard, ItemBeacon, ItemPowerCrystal, ItemScorchedCrystal} {
		add(name)
	}
	for _, m := range cat.Minions {
		for _, lvl := range m.Levels {
			for material := range lvl.Materials {
				if !cat.IsPlaceholder(material) && !strings.EqualFold(material, materialCoins) {
					add(material)
				}
			}
		}
		for _, a := range m.Actions {
			for _, d := range a.Drops {
				add(d.Item)
			}
		}
	}
	effectItems := func(spec *model.EffectSpec) {
		if spec == nil {
			return
		}
		add(spec.Item)
		for _, it := range spec.Items {
			add(it)
		}
	}
	for _, f := range cat.Fuels {
		add(f.Name)
		effectItems(f.Effect)
	}
	for _, it := range cat.Items {
		add(it.Name)
		effectItems(it.Effect)
	}
	for i := range cat.Storages {
		add(cat.Storages[i].ItemName())
	}
	for _, h := range cat.Hoppers {
		add(h.Name)
	}
	for _, out := range cat.Smelting {
		add(out)
	}
	for _, rules := range []map[string]model.CompactionRule{cat.Compactor, cat.SuperCompactor} {
		for _, r := range rules {
			add(r.Output)
		}
	}
	return sortedKeys(seen)
}
