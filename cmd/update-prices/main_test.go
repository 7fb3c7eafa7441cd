package main

import (
	"testing"

	"minion-profit/internal/model"
)

func TestCarryAuctionAverages(t *testing.T) {
	records := []model.PriceRecord{
		{Name: "Enchanted Wool", ID: "ENCHANTED_WOOL", BazaarSellPrice: model.Float(800)},
		{Name: "Super Compactor 3000", ID: "SUPER_COMPACTOR_3000"},
		{Name: "Large Storage", ID: "LARGE_ENCHANTED_CHEST", AuctionAverage: model.Float(9000)},
		{Name: "Minion Expander", ID: "MINION_EXPANDER"},
	}
	seed := []model.PriceRecord{
		{ID: "ENCHANTED_WOOL", AuctionAverage: model.Float(1)},
		{ID: "SUPER_COMPACTOR_3000", AuctionAverage: model.Float(42000)},
		{ID: "LARGE_ENCHANTED_CHEST", AuctionAverage: model.Float(1)},
	}

	if n := carryAuctionAverages(records, seed); n != 1 {
		t.Fatalf("carried %d, want 1", n)
	}
	if records[0].AuctionAverage != nil {
		t.Error("bazaar item got an auction average")
	}
	if got := records[1].AuctionAverage; got == nil || *got != 42000 {
		t.Errorf("compactor average = %v, want 42000", got)
	}
	if got := *records[2].AuctionAverage; got != 9000 {
		t.Errorf("fresh average overwritten: %v", got)
	}
	if records[3].AuctionAverage != nil {
		t.Error("item missing from seed got an average")
	}
}
