package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"minion-profit/internal/model"

	"github.com/andybalholm/brotli"
)

const bazaarBody = `{"success":true,"lastUpdated":1,"products":{
  "ENCHANTED_MUTTON":{"product_id":"ENCHANTED_MUTTON","quick_status":{"sellPrice":1071.3,"buyPrice":1160.9,"sellMovingWeek":500,"buyMovingWeek":700}},
  "MUTTON":{"product_id":"MUTTON","quick_status":{"sellPrice":6.5,"buyPrice":7.1,"sellMovingWeek":10,"buyMovingWeek":20}}}}`

const itemsBody = `{"success":true,"items":[
  {"name":"Enchanted Mutton","id":"ENCHANTED_MUTTON","npc_sell_price":320},
  {"name":"Mutton","id":"MUTTON","npc_sell_price":5},
  {"name":"Enchanted Hopper","id":"ENCHANTED_HOPPER","npc_sell_price":1}]}`

func brotliBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestHypixelItems(t *testing.T) {
	compressed := brotliBytes(t, bazaarBody)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/skyblock/bazaar":
			w.Header().Set("Content-Encoding", "br")
			w.Write(compressed)
		case "/v2/resources/skyblock/items":
			w.Write([]byte(itemsBody))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewHypixelClient(srv.URL)
	all, err := c.Items(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d items, want 3", len(all))
	}
	mutton := all[1]
	if mutton.InstantSell() != 6.5 || mutton.SellOrder() != 7.1 || mutton.NPC() != 5 {
		t.Errorf("mutton = %+v", mutton)
	}
	if *mutton.WeeklyBuyVolume != 20 {
		t.Errorf("weekly buy volume = %d", *mutton.WeeklyBuyVolume)
	}
	if all[2].HasBazaar() {
		t.Error("hopper should have no bazaar data")
	}

	bazaarOnly, err := c.Items(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(bazaarOnly) != 2 {
		t.Errorf("got %d bazaar items, want 2", len(bazaarOnly))
	}
}

func TestHypixelErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, "RATE_LIMIT_EXCEEDED"},
		{"server error", http.StatusBadGateway, `{}`, "API_ERROR"},
		{"unsuccessful", http.StatusOK, `{"success":false,"cause":"down"}`, "API_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "30")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHypixelClient(srv.URL).Bazaar(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Code != tt.code {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if !errors.Is(err, model.ErrFetch) {
				t.Error("API errors should classify as fetch errors")
			}
		})
	}
}

func TestAuctionAverage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auctions/tag/ENCHANTED_HOPPER/active/overview":
			w.Write([]byte(`[{"price":100},{"price":201},{"price":300}]`))
		case "/api/auctions/tag/EMPTY/active/overview":
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewAuctionClient(srv.URL)
	c.Limiter = nil
	avg, err := c.AuctionAverage(context.Background(), "ENCHANTED_HOPPER")
	if err != nil {
		t.Fatal(err)
	}
	if avg != 200 {
		t.Errorf("average = %v, want 200", avg)
	}
	for _, id := range []string{"EMPTY", "BROKEN"} {
		if _, err := c.AuctionAverage(context.Background(), id); !errors.Is(err, model.ErrFetch) {
			t.Errorf("%s: err = %v, want fetch error", id, err)
		}
	}
}

type countingAuctions struct {
	calls atomic.Int32
	fail  int32
	price float64
	// failWith replaces the default fetch error of the failing calls.
	failWith error
}

func (a *countingAuctions) AuctionAverage(_ context.Context, _ string) (float64, error) {
	if n := a.calls.Add(1); n <= a.fail {
		if a.failWith != nil {
			return 0, a.failWith
		}
		return 0, model.ErrFetch
	}
	return a.price, nil
}

func testRecords() []model.PriceRecord {
	return []model.PriceRecord{
		{Name: "Mutton", ID: "MUTTON", NPCSellPrice: model.Float(5), BazaarSellPrice: model.Float(6.5)},
		{Name: "Enchanted Hopper", ID: "ENCHANTED_HOPPER"},
	}
}

func TestReferenceLookup(t *testing.T) {
	ref := NewReference(testRecords(), nil)
	if _, err := ref.Lookup(context.Background(), "Nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	price, err := ref.LowestPrice(context.Background(), "Mutton")
	if err != nil || price != 6.5 {
		t.Errorf("LowestPrice = %v, %v", price, err)
	}
	if _, err := ref.LowestPrice(context.Background(), "Enchanted Hopper"); !errors.Is(err, model.ErrPriceUnavailable) {
		t.Errorf("err = %v, want price unavailable", err)
	}
}

func TestReferenceFetchesAuctionOnce(t *testing.T) {
	auctions := &countingAuctions{price: 900}
	ref := NewReference(testRecords(), auctions)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			price, err := ref.LowestPrice(context.Background(), "Enchanted Hopper")
			if err != nil || price != 900 {
				t.Errorf("LowestPrice = %v, %v", price, err)
			}
		}()
	}
	wg.Wait()
	if n := auctions.calls.Load(); n != 1 {
		t.Errorf("auction fetched %d times, want 1", n)
	}
	rec, _ := ref.Lookup(context.Background(), "Enchanted Hopper")
	if rec.AuctionAverage == nil || *rec.AuctionAverage != 900 {
		t.Error("auction average not attached to the record")
	}
}

func TestReferenceRetriesOnce(t *testing.T) {
	auctions := &countingAuctions{price: 50, fail: 1}
	ref := NewReference(testRecords(), auctions)
	if price, err := ref.LowestPrice(context.Background(), "Enchanted Hopper"); err != nil || price != 50 {
		t.Errorf("LowestPrice = %v, %v", price, err)
	}

	failing := &countingAuctions{fail: 10}
	ref = NewReference(testRecords(), failing)
	for i := 0; i < 3; i++ {
		if _, err := ref.LowestPrice(context.Background(), "Enchanted Hopper"); !errors.Is(err, model.ErrFetch) {
			t.Fatalf("err = %v, want fetch error", err)
		}
	}
	if n := failing.calls.Load(); n != 2 {
		t.Errorf("fetched %d times, want 2", n)
	}
}

func TestReferenceSkipsAuctionWithBazaarBuyPrice(t *testing.T) {
	auctions := &countingAuctions{price: 900}
	records := []model.PriceRecord{{Name: "Postcard", ID: "POSTCARD", BazaarBuyPrice: model.Float(10)}}
	ref := NewReference(records, auctions)

	if _, err := ref.LowestPrice(context.Background(), "Postcard"); !errors.Is(err, model.ErrPriceUnavailable) {
		t.Errorf("err = %v, want price unavailable", err)
	}
	if n := auctions.calls.Load(); n != 0 {
		t.Errorf("auction fetched %d times for a bazaar item", n)
	}
}

func TestReferenceFetchOutlivesCancelledCaller(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"price":100},{"price":200}]`))
	}))
	defer srv.Close()

	ref := NewReference(testRecords(), NewAuctionClient(srv.URL))
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	for _, ctx := range []context.Context{cancelled, context.Background()} {
		price, err := ref.LowestPrice(ctx, "Enchanted Hopper")
		if err != nil || price != 150 {
			t.Errorf("LowestPrice = %v, %v, want 150", price, err)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("auction fetched %d times, want 1", n)
	}
}

func TestReferenceDoesNotCacheInterruptedFetch(t *testing.T) {
	auctions := &countingAuctions{
		price:    70,
		fail:     1,
		failWith: fmt.Errorf("%w: %w", model.ErrFetch, context.DeadlineExceeded),
	}
	ref := NewReference(testRecords(), auctions)

	if _, err := ref.LowestPrice(context.Background(), "Enchanted Hopper"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if n := auctions.calls.Load(); n != 1 {
		t.Errorf("timed-out fetch retried: %d calls", n)
	}
	price, err := ref.LowestPrice(context.Background(), "Enchanted Hopper")
	if err != nil || price != 70 {
		t.Errorf("LowestPrice after timeout = %v, %v, want 70", price, err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prices.json")
	snap := &Snapshot{UpdatedAt: "2024-01-01T00:00:00Z", Items: testRecords()}
	if err := SaveSnapshot(snap, path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 || got.Items[0].Name != "Mutton" || *got.Items[0].BazaarSellPrice != 6.5 {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestLoadSnapshotBareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sb_items.json")
	raw := `[{"name":"Mutton","id":"MUTTON","bz_sell_price":6.5,"bz_buy_price":null,"npc_sell_price":5}]`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].BazaarBuyPrice != nil || got.Items[0].NPC() != 5 {
		t.Errorf("snapshot = %+v", got)
	}
}
