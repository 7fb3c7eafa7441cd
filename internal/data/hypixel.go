package data

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"minion-profit/internal/model"

	"github.com/tidwall/gjson"
)

// HypixelClient fetches the item list and the bazaar from the public Skyblock API.
type HypixelClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHypixelClient creates a client. If baseURL is empty, defaults to "https://api.hypixel.net".
func NewHypixelClient(baseURL string) *HypixelClient {
	if baseURL == "" {
		baseURL = "https://api.hypixel.net"
	}
	return &HypixelClient{BaseURL: strings.TrimRight(baseURL, "/"), Client: newHTTPClient()}
}

// QuickStatus is the bazaar summary of one product.
type QuickStatus struct {
	SellPrice      float64
	BuyPrice       float64
	SellMovingWeek int64
	BuyMovingWeek  int64
}

// Bazaar returns the quick status of every product keyed by product id.
func (c *HypixelClient) Bazaar(ctx context.Context) (map[string]QuickStatus, error) {
	raw, err := get(ctx, c.Client, "Hypixel", c.BaseURL+"/v2/skyblock/bazaar")
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(raw); err != nil {
		return nil, err
	}
	products := map[string]QuickStatus{}
	gjson.GetBytes(raw, "products").ForEach(func(id, product gjson.Result) bool {
		qs := product.Get("quick_status")
		products[id.String()] = QuickStatus{
			SellPrice:      qs.Get("sellPrice").Float(),
			BuyPrice:       qs.Get("buyPrice").Float(),
			SellMovingWeek: qs.Get("sellMovingWeek").Int(),
			BuyMovingWeek:  qs.Get("buyMovingWeek").Int(),
		}
		return true
	})
	log.Printf("[Hypixel] Success: Received %d bazaar products", len(products))
	return products, nil
}

// Items returns every item joined with its bazaar quick status. With onlyBazaar, items
// without any bazaar price are dropped.
func (c *HypixelClient) Items(ctx context.Context, onlyBazaar bool) ([]model.PriceRecord, error) {
	bazaar, err := c.Bazaar(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := get(ctx, c.Client, "Hypixel", c.BaseURL+"/v2/resources/skyblock/items")
	if err != nil {
		return nil, err
	}
	if err := checkSuccess(raw); err != nil {
		return nil, err
	}

	var records []model.PriceRecord
	gjson.GetBytes(raw, "items").ForEach(func(_, item gjson.Result) bool {
		rec := model.PriceRecord{
			Name: item.Get("name").String(),
			ID:   item.Get("id").String(),
		}
		if npc := item.Get("npc_sell_price"); npc.Exists() {
			rec.NPCSellPrice = model.Float(npc.Float())
		}
		if qs, ok := bazaar[rec.ID]; ok {
			rec.BazaarSellPrice = model.Float(qs.SellPrice)
			rec.BazaarBuyPrice = model.Float(qs.BuyPrice)
			rec.WeeklySellVolume = model.Int(qs.SellMovingWeek)
			rec.WeeklyBuyVolume = model.Int(qs.BuyMovingWeek)
		}
		if onlyBazaar && !rec.HasBazaar() {
			return true
		}
		records = append(records, rec)
		return true
	})
	log.Printf("[Hypixel] Success: Received %d items", len(records))
	return records, nil
}

func checkSuccess(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: response is not valid JSON", model.ErrFetch)
	}
	if ok := gjson.GetBytes(raw, "success"); ok.Exists() && !ok.Bool() {
		return &APIError{
			StatusCode: http.StatusOK,
			Code:       "API_ERROR",
			Message:    "Hypixel: " + gjson.GetBytes(raw, "cause").String(),
		}
	}
	return nil
}
