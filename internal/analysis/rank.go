// Package analysis filters, ranks and summarizes simulation results.
package analysis

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"minion-profit/internal/model"
)

// DefaultPageSize is the page size when a query sets no limit.
const DefaultPageSize = 20

// SortKey names a result column results can be ordered by.
type SortKey string

const (
	SortAPRInstantSell SortKey = "apr_instant_sell"
	SortAPRHopperOnly  SortKey = "apr_only_hopper"
	SortSetupCost      SortKey = "minion_cost_total"
)

// SortKeys lists every accepted key: the profit channels, the two APRs and the setup cost.
func SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(model.Channels)+3)
	for _, c := range model.Channels {
		keys = append(keys, SortKey(c))
	}
	return append(keys, SortAPRInstantSell, SortAPRHopperOnly, SortSetupCost)
}

// ParseSortKey accepts a sort key; empty means the instant-sell profit.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortKey(model.ChannelInstantSell), nil
	}
	if slices.Contains(SortKeys(), SortKey(s)) {
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// value returns the figure a key orders by; ok is false for an undefined APR.
func (k SortKey) value(r *model.Result) (v int64, ok bool) {
	switch k {
	case SortAPRInstantSell:
		return r.APRInstantSell.Percent, r.APRInstantSell.Defined
	case SortAPRHopperOnly:
		return r.APRHopperOnly.Percent, r.APRHopperOnly.Defined
	case SortSetupCost:
		return r.CostTotal, true
	}
	return r.Profit(model.Channel(k)), true
}

// Query selects and orders results, like the results table of the web page.
type Query struct {
	// Minion matches names containing it, case-insensitively.
	Minion string
	// Horizons keeps only these window lengths in seconds; empty keeps all.
	Horizons []int
	// MaxSetupCost drops setups costing more; 0 means no limit.
	MaxSetupCost int64
	SortBy       SortKey
	Ascending    bool
	Limit        int
	Offset       int
}

// Validate checks the paging and sort fields.
func (q Query) Validate() error {
	var errs []error
	if q.SortBy != "" {
		if _, err := ParseSortKey(string(q.SortBy)); err != nil {
			errs = append(errs, err)
		}
	}
	if q.Limit < 0 {
		errs = append(errs, errors.New("limit must be >= 0"))
	}
	if q.Offset < 0 {
		errs = append(errs, errors.New("offset must be >= 0"))
	}
	if q.MaxSetupCost < 0 {
		errs = append(errs, errors.New("max setup cost must be >= 0"))
	}
	return errors.Join(errs...)
}

// Ranked is a result with its 1-based position in the full ordering.
type Ranked struct {
	Rank int `json:"rank"`
	model.Result
}

// Filter returns the results matching q, in their original order.
func Filter(results []model.Result, q Query) []model.Result {
	needle := strings.ToLower(q.Minion)
	var out []model.Result
	for _, r := range results {
		if needle != "" && !strings.Contains(strings.ToLower(r.Minion), needle) {
			continue
		}
		if len(q.Horizons) > 0 && !slices.Contains(q.Horizons, r.Seconds) {
			continue
		}
		if q.MaxSetupCost > 0 && r.CostTotal > q.MaxSetupCost {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Rank filters and sorts results and returns one page plus the number of matches.
// Undefined APRs sort after every defined one in both directions; ties keep input order.
func Rank(results []model.Result, q Query) ([]Ranked, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}
	key, _ := ParseSortKey(string(q.SortBy))
	matched := Filter(results, q)

	sort.SliceStable(matched, func(i, j int) bool {
		a, aok := key.value(&matched[i])
		b, bok := key.value(&matched[j])
		if aok != bok {
			return aok
		}
		if q.Ascending {
			return a < b
		}
		return a > b
	})

	limit := q.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}
	start := min(q.Offset, len(matched))
	end := min(start+limit, len(matched))
	page := make([]Ranked, 0, end-start)
	for i := start; i < end; i++ {
		page = append(page, Ranked{Rank: i + 1, Result: matched[i]})
	}
	return page, len(matched), nil
}
