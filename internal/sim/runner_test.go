package sim

import (
	"testing"
	"time"

	"bess-sim/internal/model"
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
		Tier:                model.TierStandard,
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

func nightShift() strategy.Strategy {
	return &strategy.NightShiftStrategy{Params: strategy.NightShiftParams{
		ChargeStartHour:    8,
		ChargeEndHour:      16,
		DischargeStartHour: 18,
		DischargeEndHour:   23,
	}}
}

func TestRun_NightShiftOverFlatDay(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)

	res, err := New().Run(series, nightShift(), spec, 0.5, 1)
	require.NoError(t, err)
	require.Len(t, res.Decisions, 24)

	for _, d := range res.Decisions {
		h := d.Timestamp.Hour()
		if h < 8 || h >= 16 && h < 18 || h >= 23 {
			assert.Zero(t, d.RequestedMW, "hour %d", h)
		}
		if h >= 8 && h < 16 {
			assert.InDelta(t, -2.0, d.RequestedMW, 1e-9, "hour %d", h)
			assert.GreaterOrEqual(t, d.ActualMW, -2.0-1e-9)
		}
		// SOC stays inside the 10%..95% band of 4 MWh.
		assert.GreaterOrEqual(t, d.SOCEndMWh, 0.4-1e-9)
		assert.LessOrEqual(t, d.SOCEndMWh, 3.8+1e-9)
	}

	assert.Greater(t, res.Summary.AbsorbedMWh, 0.0)
	assert.Greater(t, res.Summary.DeliveredMWh, 0.0)
	assert.Greater(t, res.Summary.EquivalentFullCycles, 0.0)
}

func TestRun_EmptySeries(t *testing.T) {
	res, err := New().Run(model.TimeSeries{}, nightShift(), testSpec(), 0.5, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Nil(t, res)
}

func TestRun_NonUniformSeries(t *testing.T) {
	series := flatSeries(4, 10)
	series.Points[3].Timestamp = series.Points[3].Timestamp.Add(20 * time.Minute)

	_, err := New().Run(series, nightShift(), testSpec(), 0.5, 1)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestRun_InvalidSpec(t *testing.T) {
	spec := testSpec()
	spec.MinSOC = 0.5
	spec.MaxSOC = 0.3

	_, err := New().Run(flatSeries(4, 10), nightShift(), spec, 0.5, 1)
	assert.ErrorIs(t, err, model.ErrInvalidSpec)
}

func TestRun_NilStrategy(t *testing.T) {
	_, err := New().Run(flatSeries(4, 10), nil, testSpec(), 0.5, 1)
	assert.Error(t, err)
}

func TestRun_Deterministic(t *testing.T) {
	spec := testSpec()
	series := flatSeries(48, 10)

	a, err := New().Run(series, nightShift(), spec, 0.5, 1)
	require.NoError(t, err)
	b, err := New().Run(series, nightShift(), spec, 0.5, 1)
	require.NoError(t, err)

	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Decisions, b.Decisions)
}

func TestRun_CurtailmentWhenBatteryFull(t *testing.T) {
	spec := testSpec()
	series := flatSeries(24, 10)

	// Start at the ceiling: every charge request is fully curtailed.
	res, err := New().Run(series, nightShift(), spec, 0.95, 1)
	require.NoError(t, err)

	assert.Greater(t, res.Summary.CurtailedMWh, 0.0)
	first := res.Decisions[8] // first charge-window hour
	assert.InDelta(t, -2.0, first.RequestedMW, 1e-9)
	assert.Zero(t, first.ActualMW)
	assert.InDelta(t, 2.0, first.CurtailedMWh, 1e-9)
}

func TestRun_DerivesStepFromTimestamps(t *testing.T) {
	res, err := New().Run(flatSeries(24, 10), nightShift(), testSpec(), 0.5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Summary.DtHours, 1e-12)
}

func TestRun_EnergyAccountingBalancesPerStep(t *testing.T) {
	spec := testSpec()
	res, err := New().Run(flatSeries(24, 10), nightShift(), spec, 0.5, 1)
	require.NoError(t, err)

	for _, d := range res.Decisions {
		source := d.SourceMW * 1
		delivered := d.DeliveredMW() * 1
		delta := d.SOCEndMWh - d.SOCStartMWh
		assert.InDelta(t, source, delivered+d.LossMWh+delta, 1e-9, "step %d", d.Index)
	}
}
