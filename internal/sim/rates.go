package sim

import (
	"sort"

	"minion-profit/internal/model"
)

const secondsPerDay = 86400

// Rates is the output of one loadout before time is applied.
type Rates struct {
	// PerCycle is scaled by drop-multiplying fuels.
	PerCycle map[string]float64
	// Unmultiplied holds rates derived after the fuel multiplier that must not be scaled again.
	Unmultiplied map[string]float64
	// PerDay holds fixed daily yields independent of minion speed.
	PerDay map[string]float64
	// Speed is the speed percentage; 100 is the base speed.
	Speed float64
}

// ComputeRates derives drop rates and speed for a loadout. withFuel=false computes the
// same loadout with the fuel slot emptied, which is how a depleted fuel behaves.
func ComputeRates(cat *model.Catalog, l *Loadout, withFuel bool) Rates {
	r := Rates{
		PerCycle:     map[string]float64{},
		Unmultiplied: map[string]float64{},
		PerDay:       map[string]float64{},
	}
	for _, a := range l.Minion.Actions {
		for _, d := range a.Drops {
			r.PerCycle[d.Item] += d.Amount * d.Percentage / 100
		}
	}

	t := l.Task
	// speed accumulates in slot order; factor holds the multiplicative bonuses.
	speed := 100.0
	factor := 1.0
	if t.MithrilInfusion {
		speed += 10
	}
	if t.FreeWill {
		speed += 10
	}
	if t.Postcard {
		speed += 5
	}
	speed += float64(t.BeaconBoost)
	if cat.Assumptions.BonusesAdditive {
		speed += float64(t.PetBonus + t.CrystalBonus)
	} else {
		factor *= (1 + float64(t.PetBonus)/100) * (1 + float64(t.CrystalBonus)/100)
	}

	if withFuel && l.Fuel != nil {
		switch e := l.FuelEffect.(type) {
		case nil:
			speed += l.Fuel.PercentageBoost
		case model.DropMultiplier:
			for item := range r.PerCycle {
				r.PerCycle[item] *= e.Factor
			}
		case model.FlatSpeed:
			speed += e.Percent
			if l.Minion.Skill == model.SkillCombat {
				speed += e.CombatPercent
			}
		default:
			speed += l.Fuel.PercentageBoost
		}
	}

	soulflowApplied := false
	for i, item := range l.Items {
		if item == nil {
			continue
		}
		switch e := l.ItemEffects[i].(type) {
		case nil:
			speed += item.PercentageBoost
		case model.DropMultiplier:
			for k := range r.PerCycle {
				r.PerCycle[k] *= e.Factor
			}
		case model.FlatSpeed:
			speed += e.Percent
			if l.Minion.Skill == model.SkillCombat {
				speed += e.CombatPercent
			}
		case model.DiamondSpreading:
			// Assignment: a second copy does not add another yield.
			r.Unmultiplied[e.Item] = sumValues(r.PerCycle) / e.Divisor
		case model.SoulflowEngine:
			if soulflowApplied && !cat.Assumptions.SoulflowEnginesStack {
				continue
			}
			soulflowApplied = true
			speed *= e.SpeedFactor
			r.PerDay[e.Item] += secondsPerDay / e.SecondsPerUnit
			if e.BonusMinion != "" && e.BonusMinion == l.Minion.Name {
				speed += e.BonusPerLevel * float64(t.Level)
			}
		case model.CorruptSoil:
			if !l.Minion.SpawnsMobs {
				continue
			}
			add := corruptSoilYield(l.Minion, e)
			for _, k := range e.Items {
				r.PerCycle[k] += add
			}
		case model.FuelInjector:
			speed += e.SpeedPercent
			r.PerDay[e.Item] += secondsPerDay / e.SecondsPerUnit
		case model.AutoSmelter:
			r.PerCycle = smelt(r.PerCycle, cat.Smelting)
		case model.SuperCompactor:
			if e.Smelts {
				r.PerCycle = smelt(r.PerCycle, cat.Smelting)
			}
		case model.Compactor:
			// applied to absolute counts after projection
		}
	}

	r.Speed = speed * factor
	return r
}

// corruptSoilYield is the per-cycle addition of each corrupted item: one per harvesting
// action, or the drop probabilities of the scaled species.
func corruptSoilYield(m *model.Minion, e model.CorruptSoil) float64 {
	var n float64
	for _, a := range m.Actions {
		if len(a.Drops) == 0 {
			continue
		}
		if e.ScaledMinion != "" && m.Name == e.ScaledMinion {
			for _, d := range a.Drops {
				n += d.Percentage / 100
			}
			continue
		}
		n++
	}
	return n
}

// smelt returns a new map with smeltable keys renamed to their smelted form.
func smelt(in map[string]float64, table map[string]string) map[string]float64 {
	out := make(map[string]float64, len(in))
	for item, v := range in {
		if to, ok := table[item]; ok {
			item = to
		}
		out[item] += v
	}
	return out
}

func sumValues(m map[string]float64) float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// fixed order keeps float sums reproducible
	sort.Strings(keys)
	var s float64
	for _, k := range keys {
		s += m[k]
	}
	return s
}
