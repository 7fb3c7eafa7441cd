package analysis

import (
	"sort"

	"minion-profit/internal/model"
)

// Summary describes every setup of one minion over one window, measured by one sort key.
type Summary struct {
	Minion  string  `json:"minion"`
	Seconds int     `json:"seconds"`
	Key     SortKey `json:"key"`
	Count   int     `json:"count"`
	// Defined counts the setups the key has a value for (APRs of free setups have none).
	Defined int `json:"defined"`

	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`

	// Best is the setup with the highest value.
	Best *model.Result `json:"best,omitempty"`
}

// Summarize groups results by minion and window. Groups are ordered by minion then window.
func Summarize(results []model.Result, key SortKey) []Summary {
	type group struct {
		minion  string
		seconds int
	}
	byGroup := map[group][]model.Result{}
	for _, r := range results {
		g := group{r.Minion, r.Seconds}
		byGroup[g] = append(byGroup[g], r)
	}

	out := make([]Summary, 0, len(byGroup))
	for g, rs := range byGroup {
		out = append(out, summarize(g.minion, g.seconds, rs, key))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minion != out[j].Minion {
			return out[i].Minion < out[j].Minion
		}
		return out[i].Seconds < out[j].Seconds
	})
	return out
}

func summarize(minion string, seconds int, rs []model.Result, key SortKey) Summary {
	s := Summary{Minion: minion, Seconds: seconds, Key: key, Count: len(rs)}
	values := make([]int64, 0, len(rs))
	var sum float64
	for i := range rs {
		v, ok := key.value(&rs[i])
		if !ok {
			continue
		}
		if s.Best == nil || v > s.Max {
			s.Max = v
			s.Best = &rs[i]
		}
		if len(values) == 0 || v < s.Min {
			s.Min = v
		}
		values = append(values, v)
		sum += float64(v)
	}
	s.Defined = len(values)
	if s.Defined == 0 {
		return s
	}
	s.Mean = sum / float64(s.Defined)

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	mid := len(values) / 2
	if len(values)%2 == 1 {
		s.Median = float64(values[mid])
	} else {
		s.Median = float64(values[mid-1]+values[mid]) / 2
	}
	return s
}
