// Package enumerate generates every legal minion setup and simulates them in parallel.
package enumerate

import (
	"iter"

	"minion-profit/internal/model"
)

// Tasks lazily yields the pruned cross product of d over cat. Names missing from the
// catalog are passed through unpruned so that the tasks report a configuration error.
func Tasks(cat *model.Catalog, d Dimensions) iter.Seq[model.Task] {
	d = d.Normalize()
	return func(yield func(model.Task) bool) {
		fuels := withEmpty(d.Fuels, d.IncludeNoFuel)
		items := withEmpty(d.Items, d.IncludeNoItem)
		storages := withEmpty(d.Storages, d.IncludeNoStorage)
		hoppers := withEmpty(d.Hoppers, d.IncludeNoHopper)

		for _, minionName := range d.Minions {
			minion, _ := cat.Minion(minionName)
			levels := []int{0}
			if minion != nil {
				levels = minion.EligibleLevels()
			}
			for _, level := range levels {
				for _, fuel := range fuels {
					if !fuelAllowed(cat, minion, fuel) {
						continue
					}
					for i := range items {
						for j := i; j < len(items); j++ {
							if !pairAllowed(cat, minion, items[i], items[j]) {
								continue
							}
							base := model.Task{
								Minion: minionName,
								Level:  level,
								Fuel:   fuel,
								Item1:  items[i],
								Item2:  items[j],
							}
							if !modifiers(base, d, storages, hoppers, yield) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// modifiers expands the remaining dimensions of base; false means the consumer stopped.
func modifiers(base model.Task, d Dimensions, storages, hoppers []string, yield func(model.Task) bool) bool {
	for _, storage := range storages {
		for _, mithril := range d.MithrilInfusion {
			for _, freeWill := range d.FreeWill {
				for _, postcard := range d.Postcard {
					for _, beacon := range d.BeaconBoosts {
						for _, pet := range d.PetBonuses {
							for _, crystal := range d.CrystalBonuses {
								for _, hopper := range hoppers {
									for _, seconds := range d.Horizons {
										t := base
										t.Storage = storage
										t.MithrilInfusion = mithril
										t.FreeWill = freeWill
										t.Postcard = postcard
										t.BeaconBoost = beacon
										t.PetBonus = pet
										t.CrystalBonus = crystal
										t.Hopper = hopper
										t.Seconds = seconds
										if !yield(t) {
											return false
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
	return true
}

// Count is the number of tasks Tasks yields.
func Count(cat *model.Catalog, d Dimensions) int {
	n := 0
	for range Tasks(cat, d) {
		n++
	}
	return n
}

func withEmpty(names []string, includeEmpty bool) []string {
	out := make([]string, 0, len(names)+1)
	if includeEmpty {
		out = append(out, "")
	}
	return append(out, names...)
}

func fuelAllowed(cat *model.Catalog, minion *model.Minion, name string) bool {
	if minion == nil || name == "" {
		return true
	}
	fuel, err := cat.Fuel(name)
	if err != nil {
		return true
	}
	return !fuel.CombatOnly || minion.Skill == model.SkillCombat
}

// pairAllowed applies stackability, eligibility and the exclusive pairs to an unordered pair.
func pairAllowed(cat *model.Catalog, minion *model.Minion, a, b string) bool {
	if a != "" && b != "" && cat.Exclusive(a, b) {
		return false
	}
	for _, name := range []string{a, b} {
		if name == "" {
			continue
		}
		item, err := cat.Item(name)
		if err != nil {
			continue
		}
		if minion != nil && !item.EligibleFor(minion.Name) {
			return false
		}
		if a == b && !item.Stackable {
			return false
		}
	}
	return true
}
