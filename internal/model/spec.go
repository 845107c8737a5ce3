package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpec marks a malformed battery specification. It is returned at
// construction time and never after a run has started.
var ErrInvalidSpec = errors.New("invalid battery spec")

// Tier classifies storage technology by expected realized round-trip
// efficiency. Validation uses the tier floor as the acceptance band lower edge.
type Tier string

const (
	TierStandard  Tier = "standard"
	TierModernLFP Tier = "modern_lfp"
	TierPremium   Tier = "premium"
)

// RoundTripFloor returns the minimum realized round-trip efficiency a
// technology tier is expected to achieve over a full simulation.
func (t Tier) RoundTripFloor() float64 {
	switch t {
	case TierModernLFP:
		return 0.93
	case TierPremium:
		return 0.95
	default:
		return 0.90
	}
}

// BatterySpec is the immutable technology descriptor for one storage unit.
// Units:
// - PowerMW: MW
// - EnergyMWh: MWh
// - RoundTripEfficiency: 0..1 (split as sqrt(eta) per charge/discharge leg)
// - MinSOC/MaxSOC: fraction 0..1
// - CRate: optional; 0 means no C-rate limit
type BatterySpec struct {
	Name                string
	PowerMW             float64
	EnergyMWh           float64
	RoundTripEfficiency float64
	MinSOC              float64
	MaxSOC              float64
	CRate               float64
	Tier                Tier
}

// NewBatterySpec validates the parameters and returns the spec.
func NewBatterySpec(s BatterySpec) (BatterySpec, error) {
	if err := s.Validate(); err != nil {
		return BatterySpec{}, err
	}
	return s, nil
}

func (s BatterySpec) Validate() error {
	if s.PowerMW <= 0 {
		return fmt.Errorf("%w: PowerMW must be > 0", ErrInvalidSpec)
	}
	if s.EnergyMWh <= 0 {
		return fmt.Errorf("%w: EnergyMWh must be > 0", ErrInvalidSpec)
	}
	if s.RoundTripEfficiency <= 0 || s.RoundTripEfficiency > 1 {
		return fmt.Errorf("%w: RoundTripEfficiency must be in (0, 1]", ErrInvalidSpec)
	}
	if s.MinSOC < 0 || s.MaxSOC > 1 || s.MinSOC >= s.MaxSOC {
		return fmt.Errorf("%w: SOC bounds must satisfy 0<=MinSOC<MaxSOC<=1", ErrInvalidSpec)
	}
	if s.CRate < 0 {
		return fmt.Errorf("%w: CRate must be >= 0", ErrInvalidSpec)
	}
	return nil
}

// EffectivePowerMW is the power cap after the optional C-rate limit.
func (s BatterySpec) EffectivePowerMW() float64 {
	if s.CRate > 0 {
		return math.Min(s.PowerMW, s.CRate*s.EnergyMWh)
	}
	return s.PowerMW
}

// OneWayEfficiency is the per-leg efficiency, sqrt of the round-trip value,
// applied symmetrically to the charge and discharge paths.
func (s BatterySpec) OneWayEfficiency() float64 {
	return math.Sqrt(s.RoundTripEfficiency)
}

// MinEnergyMWh is the lowest admissible stored energy.
func (s BatterySpec) MinEnergyMWh() float64 { return s.MinSOC * s.EnergyMWh }

// MaxEnergyMWh is the highest admissible stored energy.
func (s BatterySpec) MaxEnergyMWh() float64 { return s.MaxSOC * s.EnergyMWh }
