package model

// BatteryState is the mutable per-run state. The physical model returns an
// updated copy each step; nothing else writes to it.
type BatteryState struct {
	// SOCMWh is the current stored energy.
	SOCMWh float64

	// Cumulative grid-side energy accounting, used for cycle counting and
	// the realized round-trip efficiency check.
	ChargedMWh    float64
	DischargedMWh float64
	ThroughputMWh float64
}

// InitialState builds the state at the start of a run. The initial SOC
// fraction is clamped into the spec's admissible band.
func InitialState(spec BatterySpec, socFraction float64) BatteryState {
	if socFraction < spec.MinSOC {
		socFraction = spec.MinSOC
	}
	if socFraction > spec.MaxSOC {
		socFraction = spec.MaxSOC
	}
	return BatteryState{SOCMWh: socFraction * spec.EnergyMWh}
}

// SOCFraction reports the state of charge relative to rated energy.
func (s BatteryState) SOCFraction(spec BatterySpec) float64 {
	if spec.EnergyMWh <= 0 {
		return 0
	}
	return s.SOCMWh / spec.EnergyMWh
}

// EquivalentFullCycles converts cumulative grid-side throughput into full
// charge+discharge cycles of the rated capacity.
func (s BatteryState) EquivalentFullCycles(spec BatterySpec) float64 {
	if spec.EnergyMWh <= 0 {
		return 0
	}
	return s.ThroughputMWh / (2 * spec.EnergyMWh)
}
