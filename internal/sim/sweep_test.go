package sim

import (
	"testing"

	"bess-sim/internal/model"
	"bess-sim/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSweep_IndependentCases(t *testing.T) {
	series := flatSeries(24, 10)
	spec := testSpec()

	capShave := &strategy.CapShaveStrategy{Params: strategy.CapShaveParams{CapMW: 8}}

	cases := []Case{
		{Name: "night_shift", Spec: spec, Strategy: nightShift(), InitialSOC: 0.5},
		{Name: "cap_shave", Spec: spec, Strategy: capShave, InitialSOC: 0.5},
	}

	results := RunSweep(series, cases, 1, 2)
	require.Len(t, results, 2)

	// Results come back in case order.
	assert.Equal(t, "night_shift", results[0].Name)
	assert.Equal(t, "cap_shave", results[1].Name)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Result)
	}

	// Sweep results match standalone runs.
	solo, err := New().Run(series, nightShift(), spec, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, solo.Summary, results[0].Result.Summary)
}

func TestRunSweep_FailedCaseDoesNotAbortOthers(t *testing.T) {
	series := flatSeries(24, 10)

	bad := testSpec()
	bad.PowerMW = -1

	cases := []Case{
		{Name: "bad", Spec: bad, Strategy: nightShift(), InitialSOC: 0.5},
		{Name: "good", Spec: testSpec(), Strategy: nightShift(), InitialSOC: 0.5},
	}

	results := RunSweep(series, cases, 1, 1)
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, model.ErrInvalidSpec)
	assert.Nil(t, results[0].Result)
	assert.NoError(t, results[1].Err)
	assert.NotNil(t, results[1].Result)
}

func TestRunSweep_WorkerCountClamped(t *testing.T) {
	series := flatSeries(6, 10)
	cases := []Case{
		{Name: "only", Spec: testSpec(), Strategy: nightShift(), InitialSOC: 0.5},
	}

	// More workers than cases and a zero worker count both work.
	for _, workers := range []int{0, 8} {
		results := RunSweep(series, cases, 1, workers)
		require.Len(t, results, 1)
		assert.NoError(t, results[0].Err)
	}
}
