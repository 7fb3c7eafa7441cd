package sim

import "math"

// Projection is the integer yield of a time window.
type Projection struct {
	Counts map[string]int64
	// FuelEmpty is set when a finite fuel ran out inside the window.
	FuelEmpty bool
}

// Project integrates rates over seconds. fueled applies while the fuel lasts and
// unfueled afterwards; lifetime <= 0 means the fuel never runs out. Each phase is
// floored separately and the phases are summed.
func Project(fueled, unfueled Rates, secondsPerAction, lifetime, seconds float64) Projection {
	p := Projection{Counts: map[string]int64{}}
	if lifetime <= 0 || seconds <= lifetime {
		integrate(p.Counts, fueled, secondsPerAction, seconds)
	} else {
		p.FuelEmpty = true
		integrate(p.Counts, fueled, secondsPerAction, lifetime)
		integrate(p.Counts, unfueled, secondsPerAction, seconds-lifetime)
	}
	for item, rate := range fueled.PerDay {
		p.Counts[item] += floorCount(rate * seconds / secondsPerDay)
	}
	return p
}

func integrate(dst map[string]int64, r Rates, secondsPerAction, window float64) {
	cycle := EffectiveCycle(secondsPerAction, r.Speed)
	if cycle <= 0 || math.IsInf(cycle, 0) {
		return
	}
	for item, rate := range r.PerCycle {
		dst[item] += floorCount(rate * window / cycle)
	}
	for item, rate := range r.Unmultiplied {
		dst[item] += floorCount(rate * window / cycle)
	}
}

// EffectiveCycle is the duration of one spawn+harvest cycle at the given speed percentage.
func EffectiveCycle(secondsPerAction, speed float64) float64 {
	if speed <= 0 {
		return math.Inf(1)
	}
	return secondsPerAction * 2 / (speed / 100)
}

func floorCount(x float64) int64 {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	return int64(math.Floor(x))
}
