package analysis

import (
	"testing"
	"time"

	"bess-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(name string, values ...float64) model.TimeSeries {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	points := make([]model.Point, len(values))
	for i, v := range values {
		points[i] = model.Point{Timestamp: start.Add(time.Duration(i) * time.Hour), MW: v}
	}
	return model.TimeSeries{Name: name, Points: points}
}

func TestComputePotential_Stats(t *testing.T) {
	p := ComputePotential(seriesOf("a", 0, 1, 2, 3, 4), 2)

	assert.Equal(t, "a", p.Site)
	assert.Equal(t, 5, p.Count)
	assert.InDelta(t, 0, p.MinMW, 1e-12)
	assert.InDelta(t, 4, p.MaxMW, 1e-12)
	assert.InDelta(t, 2, p.MeanMW, 1e-12)
	// Hours above the 2 MW cap contribute 1 + 2 MWh.
	assert.InDelta(t, 3, p.ShiftableMWh, 1e-12)
	assert.Greater(t, p.Score, 0.0)
}

func TestComputePotential_EmptySeries(t *testing.T) {
	p := ComputePotential(model.TimeSeries{Name: "empty"}, 2)
	assert.Equal(t, 0, p.Count)
	assert.Zero(t, p.Score)
}

func TestRankSites_OrderAndRanks(t *testing.T) {
	bySite := map[string]model.TimeSeries{
		// Steady, high-utilization profile.
		"steady": seriesOf("steady", 3, 3, 3, 3, 3, 3),
		// Spiky profile with poor utilization.
		"spiky": seriesOf("spiky", 0, 0, 6, 0, 0, 0),
	}

	ranked := RankSites(bySite, 2)
	require.Len(t, ranked, 2)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "steady", ranked[0].Site)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankSites_NamesSitesFromMapKeys(t *testing.T) {
	bySite := map[string]model.TimeSeries{
		"anon": {Points: seriesOf("", 1, 2).Points},
	}
	ranked := RankSites(bySite, 0)
	require.Len(t, ranked, 1)
	assert.Equal(t, "anon", ranked[0].Site)
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1, percentileSorted(vals, 0), 1e-12)
	assert.InDelta(t, 5, percentileSorted(vals, 1), 1e-12)
	assert.InDelta(t, 3, percentileSorted(vals, 0.5), 1e-12)
}
