// Package sim simulates the offline output of one minion setup and prices it.
package sim

import (
	"context"
	"errors"
	"fmt"

	"minion-profit/internal/model"
)

type Engine struct {
	Catalog *model.Catalog
	Prices  PriceReference
}

func New(cat *model.Catalog, prices PriceReference) *Engine {
	return &Engine{Catalog: cat, Prices: prices}
}

// Run simulates one task on an empty inventory.
func (e *Engine) Run(ctx context.Context, t model.Task) (*model.Result, error) {
	return e.RunWith(ctx, t, nil)
}

// RunWith simulates one task on inv, which is mutated. A nil inv starts empty; passing the
// same inventory to consecutive calls chains windows.
func (e *Engine) RunWith(ctx context.Context, t model.Task, inv *Inventory) (*model.Result, error) {
	if e.Catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if e.Prices == nil {
		return nil, errors.New("price reference is nil")
	}
	l, err := Resolve(e.Catalog, t)
	if err != nil {
		return nil, err
	}

	fueled, unfueled, lifetime := PhaseRates(e.Catalog, l)
	proj := Project(fueled, unfueled, l.Level.SecondsPerAction, lifetime, float64(t.Seconds))

	useCompactor, useSuper := l.Compaction()
	comp, err := Compact(proj.Counts, e.Catalog.Compactor, e.Catalog.SuperCompactor, useCompactor, useSuper)
	if err != nil {
		return nil, err
	}

	if inv == nil {
		inv = NewInventory(l.PrimarySlots(), l.StorageSlots())
	}
	overflow := map[string]int64{}
	// Compacted items reach the inventory before raw drops.
	for _, batch := range []map[string]int64{comp.Compacted, comp.Raw} {
		for item, n := range inv.Place(StacksOf(batch)) {
			overflow[item] += n
		}
	}
	contents := inv.Contents()

	val, err := Value(ctx, e.Prices, e.Catalog, l, contents, overflow)
	if err != nil {
		return nil, err
	}
	setup, err := Setup(ctx, e.Prices, e.Catalog, l)
	if err != nil {
		return nil, err
	}

	res := buildResult(t, fueled.Speed, proj.Counts, contents, overflow, l.Hopper != nil, val, setup)
	res.FuelEmpty = proj.FuelEmpty
	return res, nil
}

// buildResult truncates every money figure exactly once.
func buildResult(t model.Task, speed float64, raw, contents, overflow map[string]int64, hopper bool, v Valuation, s SetupCost) *model.Result {
	seconds := float64(t.Seconds)
	perDay := func(coins float64) int64 {
		return int64((coins + v.HopperCoins - v.FuelCost) / seconds * secondsPerDay)
	}
	res := &model.Result{
		Task:            t,
		SpeedPercentage: int(speed),
		RawDrops:        copyCounts(raw),
		InInventory:     contents,
		SoldToHopper:    map[string]int64{},

		HopperCoins: int64(v.HopperCoins),
		FuelCost:    int64(v.FuelCost),

		CoinsNPC:         int64(v.NPC),
		CoinsInstantSell: int64(v.InstantSell),
		CoinsSellOrder:   int64(v.SellOrder),
		CoinsOptimal:     int64(v.Optimal),

		ProfitNPC:         perDay(v.NPC),
		ProfitInstantSell: perDay(v.InstantSell),
		ProfitSellOrder:   perDay(v.SellOrder),
		ProfitOptimal:     perDay(v.Optimal),
		ProfitHopperOnly:  perDay(0),

		InventoryFull: len(overflow) > 0,

		CostTotal:          int64(s.Total()),
		CostRecoverable:    int64(s.Recoverable),
		CostNonRecoverable: int64(s.NonRecoverable),
	}
	if hopper {
		res.SoldToHopper = copyCounts(overflow)
	}
	res.APRInstantSell = annualize(res.ProfitInstantSell, s.Total())
	res.APRHopperOnly = annualize(res.ProfitHopperOnly, s.Total())
	return res
}

// annualize returns the yearly return of a daily profit on cost, in percent.
func annualize(dailyProfit int64, cost float64) model.APR {
	apr, err := APR(float64(dailyProfit), cost)
	if err != nil {
		return model.UndefinedAPR
	}
	return model.NewAPR(int64(apr))
}

// APR fails with model.ErrDivisionUndefined when cost is zero.
func APR(dailyProfit, cost float64) (float64, error) {
	if cost == 0 {
		return 0, fmt.Errorf("%w: setup cost is zero", model.ErrDivisionUndefined)
	}
	return dailyProfit * 365 / cost * 100, nil
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// PhaseRates returns the rates while the fuel lasts, the rates once it is spent and the
// fuel lifetime in seconds (0 for unlimited fuel). Unmultiplied yields keep their fueled
// value after the fuel runs out.
func PhaseRates(cat *model.Catalog, l *Loadout) (fueled, unfueled Rates, lifetime float64) {
	fueled = ComputeRates(cat, l, true)
	if !l.Fuel.Finite() {
		return fueled, fueled, 0
	}
	lifetime = l.Fuel.LifetimeSeconds()
	if float64(l.Task.Seconds) <= lifetime {
		return fueled, fueled, lifetime
	}
	unfueled = ComputeRates(cat, l, false)
	unfueled.Unmultiplied = fueled.Unmultiplied
	return fueled, unfueled, lifetime
}
