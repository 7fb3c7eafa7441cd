package catalog

import (
	"errors"
	"testing"

	"minion-profit/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if p := Problems(c); len(p) != 0 {
		t.Fatalf("built-in catalog has problems: %v", p)
	}

	sheep, err := c.Minion("Sheep")
	if err != nil {
		t.Fatalf("Minion(Sheep): %v", err)
	}
	if sheep.MaxLevel() != 12 {
		t.Errorf("sheep max level = %d, want 12", sheep.MaxLevel())
	}
	if got := sheep.EligibleLevels(); len(got) != 2 || got[0] != 11 || got[1] != 12 {
		t.Errorf("eligible levels = %v, want [11 12]", got)
	}
	l1, _ := sheep.Level(1)
	if l1.Materials["Wooden Sword"] != 1 || l1.Materials["Mutton"] != 64 {
		t.Errorf("tier 1 materials = %v", l1.Materials)
	}

	if !c.Exclusive("Dwarven Super Compactor", "Super Compactor 3000") {
		t.Error("compactor pair should be exclusive in either order")
	}
	if !c.IsPlaceholder("Pelts") {
		t.Error("Pelts should be a placeholder material")
	}
	if c.ConcurrentMinions() != 29 {
		t.Errorf("concurrent minions = %d, want 29", c.ConcurrentMinions())
	}

	cheese, _ := c.Fuel("Tasty Cheese")
	eff, err := cheese.Effect.Resolve()
	if err != nil {
		t.Fatalf("resolve cheese: %v", err)
	}
	if m, ok := eff.(model.DropMultiplier); !ok || m.Factor != 2 {
		t.Errorf("cheese effect = %#v", eff)
	}
	if cheese.LifetimeSeconds() != 230400 {
		t.Errorf("cheese lifetime = %v, want 230400", cheese.LifetimeSeconds())
	}
}

func TestLookupEmptyAndUnknown(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Fuel("")
	if f != nil || err != nil {
		t.Errorf("Fuel(\"\") = %v, %v; want nil, nil", f, err)
	}
	if _, err := c.Item("Nonexistent Gadget"); !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("unknown item err = %v, want ErrConfiguration", err)
	}
}

func TestParseRejectsBadStructure(t *testing.T) {
	cases := map[string]string{
		"empty":     "fuels: []\n",
		"duplicate": "minions:\n  - {name: A, levels: [{tier: 1, seconds_per_action: 1}]}\n  - {name: A}\n",
		"tier gap":  "minions:\n  - {name: A, levels: [{tier: 2, seconds_per_action: 1}]}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestProblemsReportsBrokenEffects(t *testing.T) {
	doc := `
minions:
  - {name: A, levels: [{tier: 1, seconds_per_action: 10}]}
items:
  - {name: Broken, eligible_minions: [all], effect: {kind: diamond_spreading}}
  - {name: Mystery, eligible_minions: [all], effect: {kind: teleporter}}
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := Problems(c)
	if len(p) != 2 {
		t.Fatalf("problems = %v, want 2 entries", p)
	}
}

func TestNames(t *testing.T) {
	c, _ := Default()
	hoppers, err := Names(c, "hoppers")
	if err != nil {
		t.Fatal(err)
	}
	if len(hoppers) != 2 || hoppers[1] != "Enchanted Hopper" {
		t.Errorf("hoppers = %v", hoppers)
	}
	if _, err := Names(c, "pets"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
