package data

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"minion-profit/internal/model"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultAuctionTTL is how long a fetched auction average is reused.
const DefaultAuctionTTL = time.Hour

const (
	// failureTTL is how long a failed auction fetch is reused before trying again.
	failureTTL = time.Minute
	// fetchTimeout bounds a shared auction fetch, which outlives the caller that started it.
	fetchTimeout = 2 * time.Minute
)

// AuctionSource fetches the average auction price of an item id.
type AuctionSource interface {
	AuctionAverage(ctx context.Context, id string) (float64, error)
}

// Reference answers price lookups from a snapshot of item records. Items without a
// bazaar price fall back to an auction average, fetched at most once per item while cached.
// It is safe for concurrent use.
type Reference struct {
	byName   map[string]model.PriceRecord
	auctions AuctionSource
	cache    *gocache.Cache
	group    singleflight.Group
}

type auctionEntry struct {
	price float64
	err   error
}

// NewReference indexes records by name; the first record wins on duplicate names.
// auctions may be nil, in which case only stored auction averages are used.
func NewReference(records []model.PriceRecord, auctions AuctionSource) *Reference {
	byName := make(map[string]model.PriceRecord, len(records))
	for _, r := range records {
		if _, dup := byName[r.Name]; !dup {
			byName[r.Name] = r
		}
	}
	ttl := DefaultAuctionTTL
	if ttlStr := os.Getenv("PRICE_CACHE_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}
	return &Reference{
		byName:   byName,
		auctions: auctions,
		cache:    gocache.New(ttl, 5*time.Minute),
	}
}

// Lookup returns the record of the named item.
func (r *Reference) Lookup(_ context.Context, name string) (model.PriceRecord, error) {
	rec, ok := r.byName[name]
	if !ok {
		return model.PriceRecord{}, fmt.Errorf("%w: %q", model.ErrNotFound, name)
	}
	if avg, found := r.cache.Get(name); found {
		if e := avg.(auctionEntry); e.err == nil {
			rec.AuctionAverage = model.Float(e.price)
		}
	}
	return rec, nil
}

// LowestPrice is the bazaar instant-sell price, else the auction average. The auction
// average is fetched only for items with neither bazaar price. Fetch errors
// are retried once; the outcome is cached per item, failures for a shorter time.
// The fetch is shared by concurrent callers and is not cancelled with ctx; a cancelled or
// timed-out fetch is never cached.
func (r *Reference) LowestPrice(ctx context.Context, name string) (float64, error) {
	rec, err := r.Lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	if rec.HasBazaar() || rec.AuctionAverage != nil || r.auctions == nil {
		return rec.LowestPrice()
	}

	v, _, _ := r.group.Do(name, func() (any, error) {
		if cached, found := r.cache.Get(name); found {
			return cached, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		price, err := r.auctions.AuctionAverage(fetchCtx, rec.ID)
		if errors.Is(err, model.ErrFetch) && !interrupted(err) {
			log.Printf("[Prices] Retrying auction data for %q: %v", name, err)
			price, err = r.auctions.AuctionAverage(fetchCtx, rec.ID)
		}
		e := auctionEntry{price: price, err: err}
		switch {
		case err == nil:
			r.cache.SetDefault(name, e)
		case !interrupted(err):
			r.cache.Set(name, e, failureTTL)
		}
		return e, nil
	})
	e := v.(auctionEntry)
	if e.err != nil {
		return 0, fmt.Errorf("auction price of %q: %w", name, e.err)
	}
	return e.price, nil
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Records returns every record sorted by name, with auction averages fetched so far.
func (r *Reference) Records() []model.PriceRecord {
	out := make([]model.PriceRecord, 0, len(r.byName))
	for name := range r.byName {
		rec, _ := r.Lookup(context.Background(), name)
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len is the number of known items.
func (r *Reference) Len() int { return len(r.byName) }
