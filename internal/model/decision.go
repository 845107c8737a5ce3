package model

import "time"

// Action is a human-friendly operating mode for a timestep.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

func ActionFromPowerMW(powerMW float64) Action {
	switch {
	case powerMW < 0:
		return ActionCharging
	case powerMW > 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}

// DispatchDecision records what one timestep asked for and what physics
// allowed. Convention: positive MW = discharge to grid, negative = charge.
type DispatchDecision struct {
	Index     int
	Timestamp time.Time

	// SourceMW is the input series value for this step.
	SourceMW float64

	RequestedMW float64
	ActualMW    float64

	Action Action

	// Grid-side energies for the step.
	EnergyInMWh  float64
	EnergyOutMWh float64
	LossMWh      float64

	// CurtailedMWh is requested charge energy the battery could not absorb.
	CurtailedMWh float64

	SOCStartMWh float64
	SOCEndMWh   float64
}

// DeliveredMW is the net power seen by the feeder: source plus battery.
func (d DispatchDecision) DeliveredMW() float64 {
	return d.SourceMW + d.ActualMW
}
