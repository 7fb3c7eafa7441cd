package sim

import (
	"fmt"
	"sort"

	"minion-profit/internal/model"
)

// Compaction splits projected counts into compacted output and leftover raw items.
type Compaction struct {
	Compacted map[string]int64
	Raw       map[string]int64
}

// Compact applies the compactor table, then the super compactor table. A super-compacted
// output that is itself super-compactable is folded once more. Input is not modified.
func Compact(counts map[string]int64, compactor, super map[string]model.CompactionRule, useCompactor, useSuper bool) (Compaction, error) {
	c := Compaction{Compacted: map[string]int64{}, Raw: make(map[string]int64, len(counts))}
	for k, v := range counts {
		c.Raw[k] = v
	}
	if useCompactor {
		for _, item := range sortedKeys(c.Raw) {
			rule, ok := compactor[item]
			if !ok {
				continue
			}
			made, left, err := fold(c.Raw[item], rule)
			if err != nil {
				return Compaction{}, fmt.Errorf("compactor %q: %w", item, err)
			}
			c.Compacted[rule.Output] += made
			c.Raw[item] = left
		}
	}
	if useSuper {
		for _, item := range sortedKeys(c.Raw) {
			rule, ok := super[item]
			if !ok {
				continue
			}
			made, left, err := fold(c.Raw[item], rule)
			if err != nil {
				return Compaction{}, fmt.Errorf("super compactor %q: %w", item, err)
			}
			c.Compacted[rule.Output] += made
			c.Raw[item] = left

			next, ok := super[rule.Output]
			if !ok || made == 0 {
				continue
			}
			made2, left2, err := fold(c.Compacted[rule.Output], next)
			if err != nil {
				return Compaction{}, fmt.Errorf("super compactor %q: %w", rule.Output, err)
			}
			c.Compacted[next.Output] += made2
			c.Compacted[rule.Output] = left2
		}
	}
	return c, nil
}

func fold(n int64, rule model.CompactionRule) (made, left int64, err error) {
	if rule.InputCount <= 0 {
		return 0, 0, fmt.Errorf("%w: input_count must be > 0", model.ErrConfiguration)
	}
	k := int64(rule.InputCount)
	return n / k, n % k, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
