package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"minion-profit/internal/model"
)

// column maps one result field to a flat cell. field returns a pointer into the result.
type column struct {
	name  string
	field func(r *model.Result) any
}

// columns is the flat layout shared by the CSV and sqlite sinks. Names match the JSON tags.
var columns = []column{
	{"minion", func(r *model.Result) any { return &r.Minion }},
	{"minion_level", func(r *model.Result) any { return &r.Level }},
	{"fuel", func(r *model.Result) any { return &r.Fuel }},
	{"item_1", func(r *model.Result) any { return &r.Item1 }},
	{"item_2", func(r *model.Result) any { return &r.Item2 }},
	{"storage", func(r *model.Result) any { return &r.Storage }},
	{"hopper", func(r *model.Result) any { return &r.Hopper }},
	{"mithril_infusion", func(r *model.Result) any { return &r.MithrilInfusion }},
	{"free_will", func(r *model.Result) any { return &r.FreeWill }},
	{"postcard", func(r *model.Result) any { return &r.Postcard }},
	{"beacon_boost_percent", func(r *model.Result) any { return &r.BeaconBoost }},
	{"pet_bonus_percent", func(r *model.Result) any { return &r.PetBonus }},
	{"crystal_bonus_percent", func(r *model.Result) any { return &r.CrystalBonus }},
	{"seconds", func(r *model.Result) any { return &r.Seconds }},
	{"percentage_boost", func(r *model.Result) any { return &r.SpeedPercentage }},
	{"raw_item_drops", func(r *model.Result) any { return &r.RawDrops }},
	{"in_inventory", func(r *model.Result) any { return &r.InInventory }},
	{"sold_to_hopper", func(r *model.Result) any { return &r.SoldToHopper }},
	{"hopper_coins", func(r *model.Result) any { return &r.HopperCoins }},
	{"cost_of_fuel", func(r *model.Result) any { return &r.FuelCost }},
	{"coins_if_inventory_sold_to_npc", func(r *model.Result) any { return &r.CoinsNPC }},
	{"coins_if_inventory_instant_sold_to_bz", func(r *model.Result) any { return &r.CoinsInstantSell }},
	{"coins_if_inventory_sell_order_to_bz", func(r *model.Result) any { return &r.CoinsSellOrder }},
	{"coins_if_inventory_sold_optimally", func(r *model.Result) any { return &r.CoinsOptimal }},
	{"profit_24h_if_inventory_sold_to_npc", func(r *model.Result) any { return &r.ProfitNPC }},
	{"profit_24h_if_inventory_instant_sold_to_bz", func(r *model.Result) any { return &r.ProfitInstantSell }},
	{"profit_24h_if_inventory_sell_order_to_bz", func(r *model.Result) any { return &r.ProfitSellOrder }},
	{"profit_24h_if_inventory_sold_optimally", func(r *model.Result) any { return &r.ProfitOptimal }},
	{"profit_24h_only_hopper", func(r *model.Result) any { return &r.ProfitHopperOnly }},
	{"apr_instant_sell", func(r *model.Result) any { return &r.APRInstantSell }},
	{"apr_only_hopper", func(r *model.Result) any { return &r.APRHopperOnly }},
	{"inventory_full", func(r *model.Result) any { return &r.InventoryFull }},
	{"fuel_empty", func(r *model.Result) any { return &r.FuelEmpty }},
	{"minion_cost_total", func(r *model.Result) any { return &r.CostTotal }},
	{"minion_cost_recoverable", func(r *model.Result) any { return &r.CostRecoverable }},
	{"minion_cost_non_recoverable", func(r *model.Result) any { return &r.CostNonRecoverable }},
}

func columnNames() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// sqlValue converts a field pointer to a database/sql argument. Undefined APRs and
// absent maps become NULL; maps are stored as JSON text.
func sqlValue(p any) (any, error) {
	switch v := p.(type) {
	case *string:
		return *v, nil
	case *int:
		return int64(*v), nil
	case *int64:
		return *v, nil
	case *bool:
		return *v, nil
	case *model.APR:
		if !v.Defined {
			return nil, nil
		}
		return v.Percent, nil
	case *map[string]int64:
		if *v == nil {
			return nil, nil
		}
		raw, err := json.Marshal(*v)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
	return nil, fmt.Errorf("unsupported column type %T", p)
}

// cell renders a field pointer as CSV text.
func cell(p any) (string, error) {
	v, err := sqlValue(p)
	if err != nil || v == nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return fmt.Sprint(v), nil
}

// scanner holds a nullable destination for one column and copies it into the result.
type scanner struct {
	dest  any
	apply func() error
}

func newScanner(p any) (scanner, error) {
	switch v := p.(type) {
	case *string:
		var ns sql.NullString
		return scanner{&ns, func() error { *v = ns.String; return nil }}, nil
	case *int:
		var ni sql.NullInt64
		return scanner{&ni, func() error { *v = int(ni.Int64); return nil }}, nil
	case *int64:
		var ni sql.NullInt64
		return scanner{&ni, func() error { *v = ni.Int64; return nil }}, nil
	case *bool:
		var nb sql.NullBool
		return scanner{&nb, func() error { *v = nb.Bool; return nil }}, nil
	case *model.APR:
		var ni sql.NullInt64
		return scanner{&ni, func() error {
			*v = model.UndefinedAPR
			if ni.Valid {
				*v = model.NewAPR(ni.Int64)
			}
			return nil
		}}, nil
	case *map[string]int64:
		var ns sql.NullString
		return scanner{&ns, func() error {
			*v = nil
			if !ns.Valid || ns.String == "" {
				return nil
			}
			return json.Unmarshal([]byte(ns.String), v)
		}}, nil
	}
	return scanner{}, fmt.Errorf("unsupported column type %T", p)
}
