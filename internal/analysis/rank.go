package analysis

import (
	"sort"

	"bess-sim/internal/model"
)

type RankedSite struct {
	Rank int
	SitePotential
}

// RankSites computes potentials per site and sorts descending by score.
// Ties break on shiftable energy so sites with more movable generation rank
// first.
func RankSites(bySite map[string]model.TimeSeries, capMW float64) []RankedSite {
	out := make([]RankedSite, 0, len(bySite))
	for name, series := range bySite {
		p := ComputePotential(series, capMW)
		if p.Site == "" {
			p.Site = name
		}
		out = append(out, RankedSite{SitePotential: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ShiftableMWh > out[j].ShiftableMWh
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
