package sim

import (
	"fmt"

	"bess-sim/internal/bess"
	"bess-sim/internal/model"
	"bess-sim/internal/strategy"
)

// DefaultInitialSOC starts runs mid-band when the caller does not care.
const DefaultInitialSOC = 0.5

type Runner struct{}

func New() *Runner { return &Runner{} }

// Run drives one series through a strategy and the physical model.
// The loop is strictly sequential: each step's state feeds the next.
// dtHours <= 0 derives the step from the series timestamps.
func (r *Runner) Run(series model.TimeSeries, strat strategy.Strategy, spec model.BatterySpec, initialSOCFraction float64, dtHours float64) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if dtHours <= 0 {
		step, err := series.StepHours()
		if err != nil {
			return nil, err
		}
		dtHours = step
	}

	state := model.InitialState(spec, initialSOCFraction)
	initialSOC := state.SOCMWh

	decisions := make([]model.DispatchDecision, 0, series.Len())
	sum := Summary{
		Steps:         series.Len(),
		DtHours:       dtHours,
		InitialSOCMWh: initialSOC,
	}
	sum.Start, sum.End = series.Window()

	for idx, pt := range series.Points {
		req := strat.Decide(strategy.Context{
			Index:   idx,
			Series:  series,
			State:   state,
			Spec:    spec,
			DtHours: dtHours,
		})

		actual, next, loss := bess.Step(req, state, spec, dtHours)

		d := model.DispatchDecision{
			Index:        idx,
			Timestamp:    pt.Timestamp,
			SourceMW:     pt.MW,
			RequestedMW:  req,
			ActualMW:     actual,
			Action:       model.ActionFromPowerMW(actual),
			EnergyInMWh:  next.ChargedMWh - state.ChargedMWh,
			EnergyOutMWh: next.DischargedMWh - state.DischargedMWh,
			LossMWh:      loss,
			SOCStartMWh:  state.SOCMWh,
			SOCEndMWh:    next.SOCMWh,
		}
		// Charge the battery could not absorb is curtailed generation.
		if req < 0 && actual > req {
			d.CurtailedMWh = (actual - req) * dtHours
		}

		sum.DeliveredMWh += d.EnergyOutMWh
		sum.AbsorbedMWh += d.EnergyInMWh
		sum.LossMWh += loss
		sum.CurtailedMWh += d.CurtailedMWh

		decisions = append(decisions, d)
		state = next
	}

	sum.EquivalentFullCycles = state.EquivalentFullCycles(spec)
	sum.FinalSOCMWh = state.SOCMWh
	sum.FinalSOCFraction = state.SOCFraction(spec)

	return &Result{
		Strategy:  strat.Name(),
		Spec:      spec,
		Decisions: decisions,
		Summary:   sum,
	}, nil
}
