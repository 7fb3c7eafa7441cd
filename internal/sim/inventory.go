package sim

import (
	"math"

	"minion-profit/internal/model"
)

// Slot is one inventory cell. Amount 0 means empty.
type Slot struct {
	Item   string `json:"item"`
	Amount int64  `json:"amount"`
}

// Stack is a quantity of one item waiting to be placed.
type Stack struct {
	Item   string
	Amount int64
}

// Inventory is the two-tier slot array of a minion: its own slots, then the storage chest.
// It is mutated only by Place and may be carried across consecutive windows.
type Inventory struct {
	Primary []Slot `json:"primary"`
	Storage []Slot `json:"storage"`
}

func NewInventory(primary, storage int) *Inventory {
	return &Inventory{
		Primary: make([]Slot, max(primary, 0)),
		Storage: make([]Slot, max(storage, 0)),
	}
}

// StacksOf turns a count map into stacks ordered by item name, skipping zero counts.
func StacksOf(counts map[string]int64) []Stack {
	out := make([]Stack, 0, len(counts))
	for _, item := range sortedKeys(counts) {
		if counts[item] > 0 {
			out = append(out, Stack{Item: item, Amount: counts[item]})
		}
	}
	return out
}

// Place stores items and returns what did not fit, or nil when everything fit.
//
// Existing partial stacks are topped up first. If there are at least as many empty slots
// as distinct items left, each item gets one slot. Remaining empty slots are then shared
// in proportion to the quantity still waiting; the per-item share is rounded half to even
// and can leave items unplaced even when slots remain.
func (inv *Inventory) Place(items []Stack) map[string]int64 {
	pending := make([]Stack, 0, len(items))
	for _, s := range items {
		if s.Amount > 0 {
			pending = append(pending, s)
		}
	}
	totalEmpty := inv.emptySlots()

	for i := range pending {
		p := &pending[i]
		topUp(inv.Primary, p)
		topUp(inv.Storage, p)
	}
	pending = nonZero(pending)
	if len(pending) == 0 {
		return nil
	}

	if totalEmpty >= len(pending) {
		for i := range pending {
			p := &pending[i]
			if idx := firstEmpty(inv.Primary); idx >= 0 {
				fill(&inv.Primary[idx], p)
			} else if idx := firstEmpty(inv.Storage); idx >= 0 {
				fill(&inv.Storage[idx], p)
			}
		}
	}

	emptyLeft := inv.emptySlots()
	var totalLeft int64
	for _, p := range pending {
		totalLeft += p.Amount
	}
	if totalLeft > 0 {
		for i := range pending {
			p := &pending[i]
			if p.Amount == 0 {
				continue
			}
			share := int(math.RoundToEven(float64(p.Amount) / float64(totalLeft) * float64(emptyLeft)))
			used := fillUpTo(inv.Primary, p, share)
			fillUpTo(inv.Storage, p, share-used)
		}
	}

	var overflow map[string]int64
	for _, p := range pending {
		if p.Amount > 0 {
			if overflow == nil {
				overflow = map[string]int64{}
			}
			overflow[p.Item] += p.Amount
		}
	}
	return overflow
}

// Contents sums the quantity held per item across both tiers.
func (inv *Inventory) Contents() map[string]int64 {
	out := map[string]int64{}
	for _, tier := range [][]Slot{inv.Primary, inv.Storage} {
		for _, s := range tier {
			if s.Amount > 0 {
				out[s.Item] += s.Amount
			}
		}
	}
	return out
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	return &Inventory{
		Primary: append([]Slot(nil), inv.Primary...),
		Storage: append([]Slot(nil), inv.Storage...),
	}
}

func (inv *Inventory) emptySlots() int {
	n := 0
	for _, tier := range [][]Slot{inv.Primary, inv.Storage} {
		for _, s := range tier {
			if s.Amount == 0 {
				n++
			}
		}
	}
	return n
}

func topUp(tier []Slot, p *Stack) {
	for i := range tier {
		s := &tier[i]
		if p.Amount == 0 {
			return
		}
		if s.Amount > 0 && s.Item == p.Item && s.Amount < model.SlotCapacity {
			add := min(model.SlotCapacity-s.Amount, p.Amount)
			s.Amount += add
			p.Amount -= add
		}
	}
}

func firstEmpty(tier []Slot) int {
	for i, s := range tier {
		if s.Amount == 0 {
			return i
		}
	}
	return -1
}

func fill(s *Slot, p *Stack) {
	n := min(int64(model.SlotCapacity), p.Amount)
	*s = Slot{Item: p.Item, Amount: n}
	p.Amount -= n
}

// fillUpTo fills at most limit empty slots of tier and returns how many it used.
func fillUpTo(tier []Slot, p *Stack, limit int) int {
	used := 0
	for i := range tier {
		if used >= limit || p.Amount == 0 {
			break
		}
		if tier[i].Amount == 0 {
			fill(&tier[i], p)
			used++
		}
	}
	return used
}

func nonZero(in []Stack) []Stack {
	out := in[:0]
	for _, s := range in {
		if s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}
