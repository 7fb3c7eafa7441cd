package model

import "fmt"

// Task is one fully resolved combination. Empty names mean the slot is unused.
type Task struct {
	Minion          string `json:"minion" yaml:"minion"`
	Level           int    `json:"minion_level" yaml:"minion_level"`
	Fuel            string `json:"fuel,omitempty" yaml:"fuel,omitempty"`
	Item1           string `json:"item_1,omitempty" yaml:"item_1,omitempty"`
	Item2           string `json:"item_2,omitempty" yaml:"item_2,omitempty"`
	Storage         string `json:"storage,omitempty" yaml:"storage,omitempty"`
	Hopper          string `json:"hopper,omitempty" yaml:"hopper,omitempty"`
	MithrilInfusion bool   `json:"mithril_infusion" yaml:"mithril_infusion"`
	FreeWill        bool   `json:"free_will" yaml:"free_will"`
	Postcard        bool   `json:"postcard" yaml:"postcard"`
	BeaconBoost     int    `json:"beacon_boost_percent" yaml:"beacon_boost_percent"`
	PetBonus        int    `json:"pet_bonus_percent" yaml:"pet_bonus_percent"`
	CrystalBonus    int    `json:"crystal_bonus_percent" yaml:"crystal_bonus_percent"`
	Seconds         int    `json:"seconds" yaml:"seconds"`
}

// BeaconBoosts are the beacon speed boosts a task may carry.
var BeaconBoosts = []int{0, 10, 11}

// Key is a stable human-readable identifier for logs and error reports.
func (t Task) Key() string {
	return fmt.Sprintf("%s/T%d fuel=%q items=%q+%q storage=%q hopper=%q mi=%t fw=%t pc=%t beacon=%d pet=%d crystal=%d s=%d",
		t.Minion, t.Level, t.Fuel, t.Item1, t.Item2, t.Storage, t.Hopper,
		t.MithrilInfusion, t.FreeWill, t.Postcard, t.BeaconBoost, t.PetBonus, t.CrystalBonus, t.Seconds)
}

// Validate checks the fields that do not need the catalog.
func (t Task) Validate() error {
	if t.Minion == "" {
		return fmt.Errorf("%w: minion is required", ErrConfiguration)
	}
	if t.Level < 1 {
		return fmt.Errorf("%w: minion level must be >= 1", ErrConfiguration)
	}
	if t.Seconds <= 0 {
		return fmt.Errorf("%w: seconds must be > 0", ErrConfiguration)
	}
	valid := false
	for _, b := range BeaconBoosts {
		if t.BeaconBoost == b {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: beacon boost must be one of %v, got %d", ErrConfiguration, BeaconBoosts, t.BeaconBoost)
	}
	return nil
}
