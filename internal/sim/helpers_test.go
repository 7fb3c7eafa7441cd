package sim

import (
	"context"
	"fmt"

	"minion-profit/internal/model"
)

// fakePrices is an in-memory price reference.
type fakePrices map[string]model.PriceRecord

func (f fakePrices) Lookup(_ context.Context, name string) (model.PriceRecord, error) {
	rec, ok := f[name]
	if !ok {
		return model.PriceRecord{}, fmt.Errorf("%w: %q", model.ErrNotFound, name)
	}
	return rec, nil
}

func (f fakePrices) LowestPrice(ctx context.Context, name string) (float64, error) {
	rec, err := f.Lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	return rec.LowestPrice()
}

func bazaar(name string, npc, sell, buy float64) model.PriceRecord {
	return model.PriceRecord{
		Name:            name,
		NPCSellPrice:    model.Float(npc),
		BazaarSellPrice: model.Float(sell),
		BazaarBuyPrice:  model.Float(buy),
	}
}

// testCatalog has one minion "Widget" producing one X per cycle at 24s per action.
func testCatalog() *model.Catalog {
	hours := 1.0
	return &model.Catalog{
		Minions: []model.Minion{
			{
				Name:  "Widget",
				Skill: model.SkillMining,
				Levels: []model.Level{
					{Tier: 1, SecondsPerAction: 24, InventorySlots: 1, Materials: map[string]int{"X": 10, "Coins": 500, "Wooden Sword": 1}},
					{Tier: 2, SecondsPerAction: 24, InventorySlots: 2, Materials: map[string]int{"X": 20}},
				},
				Actions: []model.Action{
					{Name: "spawn"},
					{Name: "harvest", Drops: []model.Drop{{Item: "X", Amount: 1, Percentage: 100}}},
				},
			},
			{
				Name:       "Ghoul",
				Skill:      model.SkillCombat,
				SpawnsMobs: true,
				Levels:     []model.Level{{Tier: 1, SecondsPerAction: 10, InventorySlots: 5}},
				Actions: []model.Action{
					{Name: "spawn"},
					{Name: "harvest", Drops: []model.Drop{
						{Item: "Bone", Amount: 2, Percentage: 50},
						{Item: "Bone", Amount: 1, Percentage: 100},
						{Item: "Ore", Amount: 1, Percentage: 20},
					}},
				},
			},
			{
				Name:       "Slime",
				Skill:      model.SkillCombat,
				SpawnsMobs: true,
				Levels:     []model.Level{{Tier: 1, SecondsPerAction: 10, InventorySlots: 5}},
				Actions: []model.Action{
					{Name: "spawn"},
					{Name: "harvest", Drops: []model.Drop{{Item: "Slimeball", Amount: 1, Percentage: 40}}},
				},
			},
		},
		Fuels: []model.Fuel{
			{Name: "Turbo", DurationHours: &hours, PercentageBoost: 100},
			{Name: "Lava", PercentageBoost: 25},
			{Name: "Cheese", DurationHours: &hours, Effect: &model.EffectSpec{Kind: model.KindDropMultiplier, Factor: 2}},
			{Name: "Flame", CombatOnly: true, Effect: &model.EffectSpec{Kind: model.KindFlatSpeed, SpeedPercent: 35, CombatSpeedPercent: 5}},
		},
		Items: []model.HeldItem{
			{Name: "Expander", PercentageBoost: 5, Stackable: true, EligibleMinions: []string{model.AllMinions}},
			{Name: "Spreading", Stackable: true, EligibleMinions: []string{model.AllMinions},
				Effect: &model.EffectSpec{Kind: model.KindDiamondSpreading, Item: "Diamond"}},
			{Name: "Lesser Engine", EligibleMinions: []string{model.AllMinions},
				Effect: &model.EffectSpec{Kind: model.KindSoulflowEngine, Item: "Soulflow", SecondsPerUnit: 180}},
			{Name: "Engine", EligibleMinions: []string{model.AllMinions},
				Effect: &model.EffectSpec{Kind: model.KindSoulflowEngine, Item: "Soulflow", SecondsPerUnit: 90, BonusMinion: "Ghoul", BonusPerLevel: 3}},
			{Name: "Soil", EligibleMinions: []string{"Ghoul", "Slime", "Widget"},
				Effect: &model.EffectSpec{Kind: model.KindCorruptSoil, Items: []string{"Fragment", "Sulphur"}, ScaledMinion: "Slime"}},
			{Name: "Injector", Stackable: true, EligibleMinions: []string{model.AllMinions},
				Effect: &model.EffectSpec{Kind: model.KindFuelInjector, Item: "Berry", SecondsPerUnit: 300, SpeedPercent: 15}},
			{Name: "Smelter", EligibleMinions: []string{model.AllMinions}, Effect: &model.EffectSpec{Kind: model.KindAutoSmelter}},
			{Name: "Compactor", EligibleMinions: []string{model.AllMinions}, Effect: &model.EffectSpec{Kind: model.KindCompactor}},
			{Name: "Super", EligibleMinions: []string{model.AllMinions}, Effect: &model.EffectSpec{Kind: model.KindSuperCompactor}},
			{Name: "Dwarven", EligibleMinions: []string{model.AllMinions}, Effect: &model.EffectSpec{Kind: model.KindSuperCompactor, Smelts: true}},
			{Name: "Broken", EligibleMinions: []string{model.AllMinions}, Effect: &model.EffectSpec{Kind: model.KindFuelInjector}},
			{Name: "Ghoul Only", EligibleMinions: []string{"Ghoul"}},
		},
		Storages: []model.Storage{{Name: "Large", ExtraSlots: 15}},
		Hoppers:  []model.Hopper{{Name: "Enchanted Hopper", SellPercentage: 90}},
		Smelting: map[string]string{"Ore": "Ingot"},
		Compactor: map[string]model.CompactionRule{
			"X": {InputCount: 4, Output: "X Block"},
		},
		SuperCompactor: map[string]model.CompactionRule{
			"X":           {InputCount: 160, Output: "Enchanted X"},
			"Enchanted X": {InputCount: 160, Output: "Enchanted X Block"},
		},
		ExclusivePairs:       [][2]string{{"Super", "Dwarven"}},
		PlaceholderMaterials: []string{"wooden sword"},
		Assumptions:          model.Assumptions{BonusesAdditive: true, ConcurrentMinions: 29},
	}
}

func testPrices() fakePrices {
	p := fakePrices{}
	for _, r := range []model.PriceRecord{
		bazaar("X", 2, 3, 4),
		bazaar("X Block", 8, 13, 15),
		bazaar("Enchanted X", 320, 500, 550),
		bazaar("Turbo", 0, 90, 100),
		bazaar("Cheese", 0, 900, 1000),
		bazaar("Lava", 0, 40000, 50000),
		bazaar("Expander", 0, 1000, 1200),
		bazaar("Compactor", 0, 600, 700),
		bazaar("Super", 0, 5000, 5500),
		bazaar("Large Storage", 0, 800, 900),
		bazaar("Enchanted Hopper", 0, 2000, 2100),
		bazaar("Mithril Infusion", 0, 290, 300),
		bazaar("Free Will", 0, 58, 60),
		bazaar("Power Crystal", 0, 5800, 6000),
		bazaar("Scorched Power Crystal", 0, 11600, 12000),
	} {
		p[r.Name] = r
	}
	p["Postcard"] = model.PriceRecord{Name: "Postcard", AuctionAverage: model.Float(2900)}
	p["Beacon V"] = model.PriceRecord{Name: "Beacon V", AuctionAverage: model.Float(29000)}
	p["Untradeable"] = model.PriceRecord{Name: "Untradeable", NPCSellPrice: model.Float(1)}
	return p
}

func resolve(cat *model.Catalog, t model.Task) *Loadout {
	l, err := Resolve(cat, t)
	if err != nil {
		panic(err)
	}
	return l
}
