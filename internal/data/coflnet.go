package data

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"minion-profit/internal/model"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// AuctionClient averages the active auctions of an item on sky.coflnet.com.
type AuctionClient struct {
	BaseURL string
	Client  *http.Client
	// Limiter throttles outgoing requests; nil disables throttling.
	Limiter *rate.Limiter
}

// NewAuctionClient creates a client allowing 100 requests per minute.
// If baseURL is empty, defaults to "https://sky.coflnet.com".
func NewAuctionClient(baseURL string) *AuctionClient {
	if baseURL == "" {
		baseURL = "https://sky.coflnet.com"
	}
	return &AuctionClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(),
		Limiter: rate.NewLimiter(rate.Every(time.Minute/100), 100),
	}
}

// AuctionAverage is the mean price of the active auctions of the item id, truncated to
// whole coins. No active auctions is a fetch error.
func (c *AuctionClient) AuctionAverage(ctx context.Context, id string) (float64, error) {
	if id == "" {
		return 0, fmt.Errorf("%w: item id is required", model.ErrFetch)
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("%w: %w", model.ErrFetch, err)
		}
	}
	u := fmt.Sprintf("%s/api/auctions/tag/%s/active/overview", c.BaseURL, url.PathEscape(id))
	raw, err := get(ctx, c.Client, "Coflnet", u)
	if err != nil {
		return 0, err
	}
	auctions := gjson.ParseBytes(raw)
	if !auctions.IsArray() {
		return 0, fmt.Errorf("%w: unexpected auction overview for %s", model.ErrFetch, id)
	}
	var total float64
	n := 0
	auctions.ForEach(func(_, a gjson.Result) bool {
		total += a.Get("price").Float()
		n++
		return true
	})
	if n == 0 {
		return 0, fmt.Errorf("%w: no active auctions for %s", model.ErrFetch, id)
	}
	avg := math.Trunc(total / float64(n))
	log.Printf("[Coflnet] Fetched auction data for %s (%.0f over %d auctions)", id, avg, n)
	return avg, nil
}
