package model

import (
	"encoding/json"
	"strconv"
)

// APR is an annualized return percentage. It is undefined when the setup cost is zero.
type APR struct {
	Percent int64
	Defined bool
}

// UndefinedAPR is the APR of a zero-cost setup.
var UndefinedAPR = APR{}

func NewAPR(percent int64) APR { return APR{Percent: percent, Defined: true} }

func (a APR) String() string {
	if !a.Defined {
		return "undefined"
	}
	return strconv.FormatInt(a.Percent, 10)
}

// MarshalJSON encodes an undefined APR as null.
func (a APR) MarshalJSON() ([]byte, error) {
	if !a.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(a.Percent)
}

func (a *APR) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = UndefinedAPR
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = NewAPR(v)
	return nil
}

// Result holds every figure derived for one task. Maps are owned by the result.
// Money is in whole coins, truncated once when the result is built.
type Result struct {
	Task

	SpeedPercentage int `json:"percentage_boost"`

	RawDrops     map[string]int64 `json:"raw_item_drops,omitempty"`
	InInventory  map[string]int64 `json:"in_inventory,omitempty"`
	SoldToHopper map[string]int64 `json:"sold_to_hopper,omitempty"`

	HopperCoins int64 `json:"hopper_coins"`
	FuelCost    int64 `json:"cost_of_fuel"`

	CoinsNPC         int64 `json:"coins_if_inventory_sold_to_npc"`
	CoinsInstantSell int64 `json:"coins_if_inventory_instant_sold_to_bz"`
	CoinsSellOrder   int64 `json:"coins_if_inventory_sell_order_to_bz"`
	CoinsOptimal     int64 `json:"coins_if_inventory_sold_optimally"`

	ProfitNPC         int64 `json:"profit_24h_if_inventory_sold_to_npc"`
	ProfitInstantSell int64 `json:"profit_24h_if_inventory_instant_sold_to_bz"`
	ProfitSellOrder   int64 `json:"profit_24h_if_inventory_sell_order_to_bz"`
	ProfitOptimal     int64 `json:"profit_24h_if_inventory_sold_optimally"`
	ProfitHopperOnly  int64 `json:"profit_24h_only_hopper"`

	APRInstantSell APR `json:"apr_instant_sell"`
	APRHopperOnly  APR `json:"apr_only_hopper"`

	InventoryFull bool `json:"inventory_full"`
	FuelEmpty     bool `json:"fuel_empty"`

	CostTotal          int64 `json:"minion_cost_total"`
	CostRecoverable    int64 `json:"minion_cost_recoverable"`
	CostNonRecoverable int64 `json:"minion_cost_non_recoverable"`
}

// Profit returns the daily profit of a channel.
func (r *Result) Profit(c Channel) int64 {
	switch c {
	case ChannelNPC:
		return r.ProfitNPC
	case ChannelInstantSell:
		return r.ProfitInstantSell
	case ChannelSellOrder:
		return r.ProfitSellOrder
	case ChannelOptimal:
		return r.ProfitOptimal
	case ChannelHopperOnly:
		return r.ProfitHopperOnly
	}
	return 0
}

// WithoutBulk returns a copy with the per-item maps dropped.
func (r Result) WithoutBulk() Result {
	r.RawDrops = nil
	r.InInventory = nil
	r.SoldToHopper = nil
	return r
}
