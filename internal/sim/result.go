package sim

import (
	"time"

	"bess-sim/internal/model"
)

// Summary aggregates one run. Equivalent full cycles come from the running
// grid-side throughput accumulator, not a post-hoc estimate.
type Summary struct {
	Steps   int       `json:"steps"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	DtHours float64   `json:"dt_hours"`

	DeliveredMWh float64 `json:"delivered_mwh"`
	AbsorbedMWh  float64 `json:"absorbed_mwh"`
	LossMWh      float64 `json:"loss_mwh"`
	CurtailedMWh float64 `json:"curtailed_mwh"`

	EquivalentFullCycles float64 `json:"equivalent_full_cycles"`

	InitialSOCMWh    float64 `json:"initial_soc_mwh"`
	FinalSOCMWh      float64 `json:"final_soc_mwh"`
	FinalSOCFraction float64 `json:"final_soc_fraction"`
}

// Result is the full trajectory of one run plus its summary. Immutable once
// returned; the caller owns it.
type Result struct {
	Strategy  string
	Spec      model.BatterySpec
	Decisions []model.DispatchDecision
	Summary   Summary
}
