package validate

import (
	"math"

	"bess-sim/internal/model"
	"bess-sim/internal/sim"
)

// Rule identifies which physical check a violation belongs to.
type Rule string

const (
	RuleEnergyBalance Rule = "energy_balance"
	RuleSOCBounds     Rule = "soc_bounds"
	RulePowerBound    Rule = "power_bound"
	RuleRoundTrip     Rule = "round_trip_efficiency"
)

// Violation records one failed check. Step is -1 for whole-run checks.
type Violation struct {
	Step      int     `json:"step"`
	Rule      Rule    `json:"rule"`
	Magnitude float64 `json:"magnitude"`
}

// Report is the outcome of a full inspection pass. It is data, not an error:
// the caller decides whether a violation aborts a batch or just flags it.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Tolerances tune the numerical slack of each rule.
type Tolerances struct {
	// EnergyFraction scales the per-step balance tolerance by the battery's
	// nominal energy.
	EnergyFraction float64
	// EpsilonMW and EpsilonMWh absorb float drift on the hard bounds.
	EpsilonMW  float64
	EpsilonMWh float64
	// EfficiencyBand is the allowed deviation of realized round-trip
	// efficiency from the declared spec value.
	EfficiencyBand float64
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		EnergyFraction: 0.001,
		EpsilonMW:      1e-6,
		EpsilonMWh:     1e-6,
		EfficiencyBand: 0.03,
	}
}

// Check inspects a result with default tolerances.
func Check(res *sim.Result, series model.TimeSeries, spec model.BatterySpec) Report {
	return CheckWithTolerances(res, series, spec, DefaultTolerances())
}

// CheckWithTolerances runs every rule over the full trajectory and reports
// all violations found, not just the first.
func CheckWithTolerances(res *sim.Result, series model.TimeSeries, spec model.BatterySpec, tol Tolerances) Report {
	rep := Report{Valid: true}
	if res == nil {
		return Report{Valid: false, Violations: []Violation{{Step: -1, Rule: RuleEnergyBalance, Magnitude: math.Inf(1)}}}
	}

	dt := res.Summary.DtHours
	energyTol := tol.EnergyFraction * spec.EnergyMWh

	// A ledger that drops or invents steps cannot balance against the input.
	if len(res.Decisions) != series.Len() {
		rep.add(-1, RuleEnergyBalance, math.Abs(float64(len(res.Decisions)-series.Len())))
	}

	for _, d := range res.Decisions {
		// The recorded source must restate the input series. Delivered power
		// is derived from the recorded source, so the balance residual alone
		// cannot see a falsified source column.
		if d.Index >= 0 && d.Index < series.Len() {
			if drift := math.Abs(d.SourceMW-series.Points[d.Index].MW) * dt; drift > energyTol {
				rep.add(d.Index, RuleEnergyBalance, drift)
			}
		}

		// Per-step balance: source energy must equal delivered energy plus
		// conversion loss plus the storage delta.
		sourceMWh := d.SourceMW * dt
		deliveredMWh := d.DeliveredMW() * dt
		deltaStorage := d.SOCEndMWh - d.SOCStartMWh
		imbalance := math.Abs(sourceMWh - (deliveredMWh + d.LossMWh + deltaStorage))
		if imbalance > energyTol {
			rep.add(d.Index, RuleEnergyBalance, imbalance)
		}

		if d.SOCEndMWh < spec.MinEnergyMWh()-tol.EpsilonMWh || d.SOCEndMWh > spec.MaxEnergyMWh()+tol.EpsilonMWh {
			rep.add(d.Index, RuleSOCBounds, socExcursion(d.SOCEndMWh, spec))
		}

		if math.Abs(d.ActualMW) > spec.PowerMW+tol.EpsilonMW {
			rep.add(d.Index, RulePowerBound, math.Abs(d.ActualMW)-spec.PowerMW)
		}
	}

	if v, ok := roundTripViolation(res, spec, tol); ok {
		rep.Violations = append(rep.Violations, v)
		rep.Valid = false
	}

	return rep
}

func (r *Report) add(step int, rule Rule, magnitude float64) {
	r.Violations = append(r.Violations, Violation{Step: step, Rule: rule, Magnitude: magnitude})
	r.Valid = false
}

func socExcursion(socMWh float64, spec model.BatterySpec) float64 {
	if socMWh < spec.MinEnergyMWh() {
		return spec.MinEnergyMWh() - socMWh
	}
	return socMWh - spec.MaxEnergyMWh()
}

// roundTripViolation checks the realized whole-run efficiency against the
// declared value and the technology tier floor. Residual stored energy is
// credited at one discharge leg so a run that ends above its starting SOC is
// not penalized.
func roundTripViolation(res *sim.Result, spec model.BatterySpec, tol Tolerances) (Violation, bool) {
	charged := res.Summary.AbsorbedMWh
	if charged <= tol.EpsilonMWh {
		// Nothing went through the battery; the ratio is undefined.
		return Violation{}, false
	}

	// Residual storage delta is converted at one leg: energy still in the
	// battery could be delivered at x sqrt(eta); energy drawn from initial
	// inventory entered the same way.
	residual := res.Summary.FinalSOCMWh - res.Summary.InitialSOCMWh
	realized := (res.Summary.DeliveredMWh + residual*spec.OneWayEfficiency()) / charged

	floor := spec.Tier.RoundTripFloor()
	if declared := spec.RoundTripEfficiency; declared < floor {
		floor = declared
	}

	deviation := math.Abs(realized - spec.RoundTripEfficiency)
	if realized < floor-tol.EfficiencyBand || deviation > tol.EfficiencyBand {
		return Violation{Step: -1, Rule: RuleRoundTrip, Magnitude: deviation}, true
	}
	return Violation{}, false
}
