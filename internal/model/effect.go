package model

import "fmt"

// EffectKind names a special-case fuel or held-item behaviour in catalog files.
type EffectKind string

const (
	KindDropMultiplier   EffectKind = "drop_multiplier"
	KindFlatSpeed        EffectKind = "flat_speed"
	KindDiamondSpreading EffectKind = "diamond_spreading"
	KindSoulflowEngine   EffectKind = "soulflow_engine"
	KindCorruptSoil      EffectKind = "corrupt_soil"
	KindFuelInjector     EffectKind = "fuel_injector"
	KindAutoSmelter      EffectKind = "auto_smelter"
	KindCompactor        EffectKind = "compactor"
	KindSuperCompactor   EffectKind = "super_compactor"
)

// EffectSpec is the on-disk form of an Effect. Only the fields relevant to Kind are read.
type EffectSpec struct {
	Kind               EffectKind `yaml:"kind" json:"kind"`
	Factor             float64    `yaml:"factor,omitempty" json:"factor,omitempty"`
	SpeedPercent       float64    `yaml:"speed_percent,omitempty" json:"speed_percent,omitempty"`
	CombatSpeedPercent float64    `yaml:"combat_speed_percent,omitempty" json:"combat_speed_percent,omitempty"`
	Item               string     `yaml:"item,omitempty" json:"item,omitempty"`
	Items              []string   `yaml:"items,omitempty" json:"items,omitempty"`
	Divisor            float64    `yaml:"divisor,omitempty" json:"divisor,omitempty"`
	SecondsPerUnit     float64    `yaml:"seconds_per_unit,omitempty" json:"seconds_per_unit,omitempty"`
	SpeedFactor        float64    `yaml:"speed_factor,omitempty" json:"speed_factor,omitempty"`
	BonusMinion        string     `yaml:"bonus_minion,omitempty" json:"bonus_minion,omitempty"`
	BonusPerLevel      float64    `yaml:"bonus_per_level,omitempty" json:"bonus_per_level,omitempty"`
	ScaledMinion       string     `yaml:"scaled_minion,omitempty" json:"scaled_minion,omitempty"`
	Smelts             bool       `yaml:"smelts,omitempty" json:"smelts,omitempty"`
}

// Effect is a resolved special-case behaviour. The concrete types below are the only
// implementations; consumers switch over them exhaustively.
type Effect interface {
	isEffect()
}

// DropMultiplier scales every per-cycle drop rate (cheese, catalysts).
type DropMultiplier struct{ Factor float64 }

// FlatSpeed adds a speed percentage, with an extra amount for combat minions.
type FlatSpeed struct {
	Percent       float64
	CombatPercent float64
}

// DiamondSpreading yields Item at the total drop rate divided by Divisor.
// The yield is not scaled by drop multipliers.
type DiamondSpreading struct {
	Item    string
	Divisor float64
}

// SoulflowEngine scales speed by SpeedFactor and produces Item once per SecondsPerUnit.
// BonusMinion gains BonusPerLevel speed per tier.
type SoulflowEngine struct {
	Item           string
	SecondsPerUnit float64
	SpeedFactor    float64
	BonusMinion    string
	BonusPerLevel  float64
}

// CorruptSoil adds one of each of Items per harvest on mob minions. ScaledMinion instead
// scales the addition by its drop probabilities.
type CorruptSoil struct {
	Items        []string
	ScaledMinion string
}

// FuelInjector adds speed and produces Item once per SecondsPerUnit.
type FuelInjector struct {
	Item           string
	SecondsPerUnit float64
	SpeedPercent   float64
}

// AutoSmelter replaces smeltable drops with their smelted form.
type AutoSmelter struct{}

// Compactor enables ordinary compaction.
type Compactor struct{}

// SuperCompactor enables super compaction; Smelts also applies the auto smelter.
type SuperCompactor struct{ Smelts bool }

func (DropMultiplier) isEffect()   {}
func (FlatSpeed) isEffect()        {}
func (DiamondSpreading) isEffect() {}
func (SoulflowEngine) isEffect()   {}
func (CorruptSoil) isEffect()      {}
func (FuelInjector) isEffect()     {}
func (AutoSmelter) isEffect()      {}
func (Compactor) isEffect()        {}
func (SuperCompactor) isEffect()   {}

// Resolve validates the spec and returns the concrete Effect.
// A nil spec resolves to a nil Effect.
func (s *EffectSpec) Resolve() (Effect, error) {
	if s == nil {
		return nil, nil
	}
	switch s.Kind {
	case KindDropMultiplier:
		if s.Factor <= 0 {
			return nil, missingField(s.Kind, "factor")
		}
		return DropMultiplier{Factor: s.Factor}, nil
	case KindFlatSpeed:
		if s.SpeedPercent == 0 {
			return nil, missingField(s.Kind, "speed_percent")
		}
		return FlatSpeed{Percent: s.SpeedPercent, CombatPercent: s.CombatSpeedPercent}, nil
	case KindDiamondSpreading:
		if s.Item == "" {
			return nil, missingField(s.Kind, "item")
		}
		div := s.Divisor
		if div == 0 {
			div = 10
		}
		return DiamondSpreading{Item: s.Item, Divisor: div}, nil
	case KindSoulflowEngine:
		if s.Item == "" {
			return nil, missingField(s.Kind, "item")
		}
		if s.SecondsPerUnit <= 0 {
			return nil, missingField(s.Kind, "seconds_per_unit")
		}
		factor := s.SpeedFactor
		if factor == 0 {
			factor = 0.5
		}
		return SoulflowEngine{
			Item:           s.Item,
			SecondsPerUnit: s.SecondsPerUnit,
			SpeedFactor:    factor,
			BonusMinion:    s.BonusMinion,
			BonusPerLevel:  s.BonusPerLevel,
		}, nil
	case KindCorruptSoil:
		if len(s.Items) == 0 {
			return nil, missingField(s.Kind, "items")
		}
		return CorruptSoil{Items: append([]string(nil), s.Items...), ScaledMinion: s.ScaledMinion}, nil
	case KindFuelInjector:
		if s.Item == "" {
			return nil, missingField(s.Kind, "item")
		}
		if s.SecondsPerUnit <= 0 {
			return nil, missingField(s.Kind, "seconds_per_unit")
		}
		return FuelInjector{Item: s.Item, SecondsPerUnit: s.SecondsPerUnit, SpeedPercent: s.SpeedPercent}, nil
	case KindAutoSmelter:
		return AutoSmelter{}, nil
	case KindCompactor:
		return Compactor{}, nil
	case KindSuperCompactor:
		return SuperCompactor{Smelts: s.Smelts}, nil
	case "":
		return nil, fmt.Errorf("%w: effect kind is required", ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unknown effect kind %q", ErrConfiguration, s.Kind)
	}
}

func missingField(kind EffectKind, field string) error {
	return fmt.Errorf("%w: effect %s requires %s", ErrConfiguration, kind, field)
}
