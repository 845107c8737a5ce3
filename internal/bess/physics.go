package bess

import (
	"math"

	"bess-sim/internal/model"
)

// Step applies one requested power setpoint for a fixed interval and returns
// the realized power, the updated state, and the grid-side energy lost to
// conversion. It is a pure function of its inputs; the caller owns the state.
//
// Convention: positive MW = discharge to grid, negative MW = charge.
// Clipping to power, C-rate, and SOC limits is silent policy, not an error.
func Step(requestedMW float64, state model.BatteryState, spec model.BatterySpec, dtHours float64) (actualMW float64, next model.BatteryState, lossMWh float64) {
	next = state
	if dtHours <= 0 {
		return 0, next, 0
	}

	p := clipPower(requestedMW, spec)
	oneWay := spec.OneWayEfficiency()

	switch {
	case p < 0:
		// Charging: |p| is MW drawn from the feeder.
		fromGridMWh := math.Abs(p) * dtHours
		storedMWh := fromGridMWh * oneWay

		headroomMWh := spec.MaxEnergyMWh() - state.SOCMWh
		if headroomMWh < 0 {
			headroomMWh = 0
		}
		if storedMWh > headroomMWh {
			storedMWh = headroomMWh
			fromGridMWh = storedMWh / oneWay
			p = -fromGridMWh / dtHours
		}

		next.SOCMWh = state.SOCMWh + storedMWh
		next.ChargedMWh += fromGridMWh
		next.ThroughputMWh += fromGridMWh
		lossMWh = fromGridMWh - storedMWh

	case p > 0:
		// Discharging: p is MW delivered to the feeder.
		toGridMWh := p * dtHours
		drawnMWh := toGridMWh / oneWay

		availableMWh := state.SOCMWh - spec.MinEnergyMWh()
		if availableMWh < 0 {
			availableMWh = 0
		}
		if drawnMWh > availableMWh {
			drawnMWh = availableMWh
			toGridMWh = drawnMWh * oneWay
			p = toGridMWh / dtHours
		}

		next.SOCMWh = state.SOCMWh - drawnMWh
		next.DischargedMWh += toGridMWh
		next.ThroughputMWh += toGridMWh
		lossMWh = drawnMWh - toGridMWh
	}

	// Guard against float drift at the band edges.
	if next.SOCMWh < spec.MinEnergyMWh() {
		next.SOCMWh = spec.MinEnergyMWh()
	}
	if next.SOCMWh > spec.MaxEnergyMWh() {
		next.SOCMWh = spec.MaxEnergyMWh()
	}
	if lossMWh < 0 {
		lossMWh = 0
	}
	return p, next, lossMWh
}

// clipPower enforces the rated power and the optional C-rate cap.
func clipPower(p float64, spec model.BatterySpec) float64 {
	cap := spec.EffectivePowerMW()
	if p > cap {
		return cap
	}
	if p < -cap {
		return -cap
	}
	return p
}
