package validate

import (
	"testing"
	"time"

	"bess-sim/internal/model"
	"bess-sim/internal/sim"
	"bess-sim/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() model.BatterySpec {
	return model.BatterySpec{
		Name:                "test",
		PowerMW:             2,
		EnergyMWh:           4,
		RoundTripEfficiency: 0.95,
		MinSOC:              0.1,
		MaxSOC:              0.95,
		Tier:                model.TierModernLFP,
	}
}

func flatSeries(hours int, mw float64) model.TimeSeries {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	points := make([]model.Point, hours)
	for i := range points {
		points[i] = model.Point{Timestamp: start.Add(time.Duration(i) * time.Hour), MW: mw}
	}
	return model.TimeSeries{Name: "flat", Points: points}
}

func runNightShift(t *testing.T, spec model.BatterySpec, series model.TimeSeries) *sim.Result {
	t.Helper()
	strat := &strategy.NightShiftStrategy{Params: strategy.NightShiftParams{
		ChargeStartHour:    8,
		ChargeEndHour:      16,
		DischargeStartHour: 18,
		DischargeEndHour:   23,
	}}
	res, err := sim.New().Run(series, strat, spec, 0.5, 1)
	require.NoError(t, err)
	return res
}

func TestCheck_ValidRunPasses(t *testing.T) {
	spec := testSpec()
	series := flatSeries(48, 10)
	res := runNightShift(t, spec, series)

	report := Check(res, series, spec)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Violations)
}

func TestCheck_CapShavePartialHeadroomStillValid(t *testing.T) {
	spec := testSpec()
	// A midday spike far above what 4 MWh of headroom can absorb: the model
	// shaves what it can, and the run must still be physically consistent.
	series := flatSeries(24, 1)
	for h := 11; h <= 14; h++ {
		series.Points[h].MW = 6
	}
	strat := &strategy.CapShaveStrategy{Params: strategy.CapShaveParams{CapMW: 2, FloorMW: 0}}

	res, err := sim.New().Run(series, strat, spec, 0.5, 1)
	require.NoError(t, err)

	report := Check(res, series, spec)
	assert.True(t, report.Valid, "violations: %v", report.Violations)
}

func TestCheck_TamperedEnergyBalance(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)
	res := runNightShift(t, spec, series)

	res.Decisions[9].LossMWh += 0.5

	report := Check(res, series, spec)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Violations)
	assert.Equal(t, RuleEnergyBalance, report.Violations[0].Rule)
	assert.Equal(t, 9, report.Violations[0].Step)
	assert.InDelta(t, 0.5, report.Violations[0].Magnitude, 1e-9)
}

func TestCheck_SourceContradictsSeries(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)
	res := runNightShift(t, spec, series)

	// Internally consistent ledger rows whose source column no longer
	// matches the input must not validate.
	for i := range res.Decisions {
		res.Decisions[i].SourceMW = 999
	}

	report := Check(res, series, spec)
	assert.False(t, report.Valid)

	found := 0
	for _, v := range report.Violations {
		if v.Rule == RuleEnergyBalance && v.Step >= 0 {
			found++
			assert.InDelta(t, 989.0, v.Magnitude, 1e-9)
		}
	}
	assert.Equal(t, 24, found)
}

func TestCheck_TruncatedLedger(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)
	res := runNightShift(t, spec, series)

	res.Decisions = res.Decisions[:20]

	report := Check(res, series, spec)
	assert.False(t, report.Valid)

	found := false
	for _, v := range report.Violations {
		if v.Rule == RuleEnergyBalance && v.Step == -1 {
			found = true
			assert.InDelta(t, 4, v.Magnitude, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestCheck_TamperedSOCBound(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)
	res := runNightShift(t, spec, series)

	res.Decisions[3].SOCEndMWh = spec.MaxEnergyMWh() + 0.2

	report := Check(res, series, spec)
	assert.False(t, report.Valid)

	found := false
	for _, v := range report.Violations {
		if v.Rule == RuleSOCBounds && v.Step == 3 {
			found = true
			assert.InDelta(t, 0.2, v.Magnitude, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestCheck_TamperedPowerBound(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)
	res := runNightShift(t, spec, series)

	res.Decisions[20].ActualMW = 5

	report := Check(res, series, spec)
	assert.False(t, report.Valid)

	found := false
	for _, v := range report.Violations {
		if v.Rule == RulePowerBound && v.Step == 20 {
			found = true
			assert.InDelta(t, 3.0, v.Magnitude, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestCheck_ReportsAllViolationsNotJustFirst(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)
	res := runNightShift(t, spec, series)

	res.Decisions[5].LossMWh += 1
	res.Decisions[12].LossMWh += 1

	report := Check(res, series, spec)
	assert.False(t, report.Valid)
	assert.GreaterOrEqual(t, len(report.Violations), 2)
}

func TestCheck_RoundTripEfficiencyDeviation(t *testing.T) {
	spec := testSpec()
	series := flatSeries(48, 10)
	res := runNightShift(t, spec, series)

	// Claim far more delivered energy than the absorbed energy supports.
	res.Summary.DeliveredMWh = res.Summary.AbsorbedMWh * 1.5

	report := Check(res, series, spec)
	assert.False(t, report.Valid)

	found := false
	for _, v := range report.Violations {
		if v.Rule == RuleRoundTrip {
			found = true
			assert.Equal(t, -1, v.Step)
		}
	}
	assert.True(t, found)
}

func TestCheck_NoThroughputSkipsEfficiencyRule(t *testing.T) {
	spec := testSpec()
	series := flatSeries(6, 10)

	// Idle strategy: the ratio is undefined, not a violation.
	strat := &strategy.CapShaveStrategy{Params: strategy.CapShaveParams{CapMW: 100, FloorMW: -100}}
	res, err := sim.New().Run(series, strat, spec, 0.5, 1)
	require.NoError(t, err)

	report := Check(res, series, spec)
	assert.True(t, report.Valid)
}

func TestCheck_NilResult(t *testing.T) {
	report := Check(nil, flatSeries(1, 0), testSpec())
	assert.False(t, report.Valid)
}
