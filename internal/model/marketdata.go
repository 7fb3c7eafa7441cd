package model

import "fmt"

// PriceRecord is the market data known for one item, as exported by the items and bazaar
// endpoints. Nil fields mean the source had no value.
//
// Example:
//
//	{
//	  "name": "Enchanted Mutton",
//	  "id": "ENCHANTED_MUTTON",
//	  "npc_sell_price": 320,
//	  "bz_sell_price": 1071.3,
//	  "bz_buy_price": 1160.9
//	}
type PriceRecord struct {
	Name string `json:"name"`
	ID   string `json:"id"`

	NPCSellPrice *float64 `json:"npc_sell_price,omitempty"`

	// BazaarSellPrice is what an instant sell earns; BazaarBuyPrice is what a sell order earns
	// (and what an instant buy costs).
	BazaarSellPrice *float64 `json:"bz_sell_price,omitempty"`
	BazaarBuyPrice  *float64 `json:"bz_buy_price,omitempty"`

	WeeklySellVolume *int64 `json:"bz_weekly_sell_volume,omitempty"`
	WeeklyBuyVolume  *int64 `json:"bz_weekly_buy_volume,omitempty"`

	// AuctionAverage is filled on demand for items without bazaar data.
	AuctionAverage *float64 `json:"auction_average_buy_price,omitempty"`
}

// HasBazaar reports whether either bazaar price is known.
func (p PriceRecord) HasBazaar() bool {
	return p.BazaarSellPrice != nil || p.BazaarBuyPrice != nil
}

// NPC is the NPC sell price, or 0 when the item cannot be sold to an NPC.
func (p PriceRecord) NPC() float64 { return deref(p.NPCSellPrice) }

// InstantSell is the bazaar instant-sell price, or 0 without bazaar data.
func (p PriceRecord) InstantSell() float64 { return deref(p.BazaarSellPrice) }

// SellOrder is the bazaar sell-order price, or 0 without bazaar data.
func (p PriceRecord) SellOrder() float64 { return deref(p.BazaarBuyPrice) }

// LowestPrice is the cheapest known acquisition price: the bazaar instant-sell price,
// then the auction average.
func (p PriceRecord) LowestPrice() (float64, error) {
	if p.BazaarSellPrice != nil {
		return *p.BazaarSellPrice, nil
	}
	if p.AuctionAverage != nil {
		return *p.AuctionAverage, nil
	}
	return 0, fmt.Errorf("%w: %q has no bazaar or auction price", ErrPriceUnavailable, p.Name)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Float returns a pointer to v, for building records in code.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }
