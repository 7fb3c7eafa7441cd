package enumerate

import (
	"errors"
	"fmt"
	"slices"

	"minion-profit/internal/model"
)

// Dimensions are the lists the cross product runs over. Names refer to catalog entries;
// the Include* flags add the empty choice for an optional slot.
type Dimensions struct {
	Minions  []string `yaml:"minions" json:"minions"`
	Fuels    []string `yaml:"fuels" json:"fuels"`
	Items    []string `yaml:"items" json:"items"`
	Storages []string `yaml:"storages" json:"storages"`
	Hoppers  []string `yaml:"hoppers" json:"hoppers"`

	IncludeNoFuel    bool `yaml:"include_no_fuel" json:"include_no_fuel"`
	IncludeNoItem    bool `yaml:"include_no_item" json:"include_no_item"`
	IncludeNoStorage bool `yaml:"include_no_storage" json:"include_no_storage"`
	IncludeNoHopper  bool `yaml:"include_no_hopper" json:"include_no_hopper"`

	MithrilInfusion []bool `yaml:"mithril_infusion" json:"mithril_infusion"`
	FreeWill        []bool `yaml:"free_will" json:"free_will"`
	Postcard        []bool `yaml:"postcard" json:"postcard"`
	BeaconBoosts    []int  `yaml:"beacon_boosts" json:"beacon_boosts"`
	PetBonuses      []int  `yaml:"pet_bonuses" json:"pet_bonuses"`
	CrystalBonuses  []int  `yaml:"crystal_bonuses" json:"crystal_bonuses"`

	// Horizons are elapsed-time windows in seconds, ascending.
	Horizons []int `yaml:"horizons" json:"horizons"`
}

// DefaultHorizons: one hour, one, two, seven and fourteen days, 124 days.
var DefaultHorizons = []int{3600, 86400, 172800, 604800, 1209600, 10713600}

// DefaultDimensions is the sweep of the built-in catalog.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Minions: []string{"Sheep"},
		Fuels: []string{
			"Enchanted Lava Bucket", "Magma Bucket", "Plasma Bucket", "Hamster Wheel", "Foul Flesh",
			"Everburning Flame", "Tasty Cheese", "Catalyst", "Hyper Catalyst",
		},
		Items: []string{
			"Minion Expander", "Flycatcher", "Diamond Spreading", "Corrupt Soil",
			"Berberis Fuel Injector", "Super Compactor 3000",
		},
		Storages:        []string{"Large"},
		Hoppers:         []string{"Enchanted Hopper"},
		MithrilInfusion: []bool{false, true},
		FreeWill:        []bool{false, true},
		Postcard:        []bool{false, true},
		BeaconBoosts:    slices.Clone(model.BeaconBoosts),
		PetBonuses:      []int{0},
		CrystalBonuses:  []int{0},
		Horizons:        slices.Clone(DefaultHorizons),
	}
}

// Normalize drops repeated values, fills empty toggle lists with their neutral value and
// sorts the horizons. Names keep their first-seen order.
func (d Dimensions) Normalize() Dimensions {
	d.Minions = unique(d.Minions)
	d.Fuels = unique(d.Fuels)
	d.Items = unique(d.Items)
	d.Storages = unique(d.Storages)
	d.Hoppers = unique(d.Hoppers)
	d.MithrilInfusion = unique(d.MithrilInfusion)
	d.FreeWill = unique(d.FreeWill)
	d.Postcard = unique(d.Postcard)
	d.BeaconBoosts = unique(d.BeaconBoosts)
	d.PetBonuses = unique(d.PetBonuses)
	d.CrystalBonuses = unique(d.CrystalBonuses)
	if len(d.MithrilInfusion) == 0 {
		d.MithrilInfusion = []bool{false}
	}
	if len(d.FreeWill) == 0 {
		d.FreeWill = []bool{false}
	}
	if len(d.Postcard) == 0 {
		d.Postcard = []bool{false}
	}
	if len(d.BeaconBoosts) == 0 {
		d.BeaconBoosts = []int{0}
	}
	if len(d.PetBonuses) == 0 {
		d.PetBonuses = []int{0}
	}
	if len(d.CrystalBonuses) == 0 {
		d.CrystalBonuses = []int{0}
	}
	d.Horizons = slices.Clone(d.Horizons)
	slices.Sort(d.Horizons)
	d.Horizons = slices.Compact(d.Horizons)
	return d
}

func unique[T comparable](s []T) []T {
	if len(s) == 0 {
		return s
	}
	seen := make(map[T]bool, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Validate checks the shape of the sweep. Unknown catalog names are not errors here;
// the tasks using them fail individually.
func (d Dimensions) Validate() error {
	var errs []error
	if len(d.Minions) == 0 {
		errs = append(errs, errors.New("minions: at least one is required"))
	}
	if len(d.Horizons) == 0 {
		errs = append(errs, errors.New("horizons: at least one is required"))
	}
	for _, h := range d.Horizons {
		if h <= 0 {
			errs = append(errs, fmt.Errorf("horizons: %d is not positive", h))
		}
	}
	for _, b := range d.BeaconBoosts {
		if !slices.Contains(model.BeaconBoosts, b) {
			errs = append(errs, fmt.Errorf("beacon_boosts: %d is not one of %v", b, model.BeaconBoosts))
		}
	}
	if len(d.Fuels) == 0 && !d.IncludeNoFuel {
		errs = append(errs, errors.New("fuels: empty list without include_no_fuel"))
	}
	if len(d.Items) == 0 && !d.IncludeNoItem {
		errs = append(errs, errors.New("items: empty list without include_no_item"))
	}
	if len(d.Storages) == 0 && !d.IncludeNoStorage {
		errs = append(errs, errors.New("storages: empty list without include_no_storage"))
	}
	if len(d.Hoppers) == 0 && !d.IncludeNoHopper {
		errs = append(errs, errors.New("hoppers: empty list without include_no_hopper"))
	}
	return errors.Join(errs...)
}
