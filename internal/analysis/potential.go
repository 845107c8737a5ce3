package analysis

import (
	"math"
	"sort"
	"time"

	"bess-sim/internal/model"
)

// SitePotential is a per-site summary used to rank candidate zones for
// storage installation. It intentionally does not depend on a specific
// battery size: it reports raw profile statistics plus the energy a battery
// could shift out of the hours above a reference cap.
type SitePotential struct {
	Site string

	Start time.Time
	End   time.Time

	Count int

	MinMW  float64
	MaxMW  float64
	MeanMW float64
	P05MW  float64
	P95MW  float64

	// ShiftableMWh is the total energy above CapMW over the horizon, i.e.
	// what a cap-shaving battery would be offered.
	CapMW        float64
	ShiftableMWh float64

	// Score is a dimensionless composite of utilization, shiftable share
	// and variability. Higher is better.
	Score float64
}

// Composite weights. They mirror the weighting style of the siting study's
// aptitude index: resource first, shiftable energy second, steadiness third.
const (
	weightUtilization = 0.5
	weightShiftable   = 0.3
	weightSteadiness  = 0.2
)

// ComputePotential summarizes one site profile against a reference cap.
func ComputePotential(series model.TimeSeries, capMW float64) SitePotential {
	p := SitePotential{Site: series.Name, CapMW: capMW}
	if series.Len() == 0 {
		return p
	}
	p.Count = series.Len()
	p.Start, p.End = series.Window()

	step, err := series.StepHours()
	if err != nil || step <= 0 {
		step = 1
	}

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, series.Len())
	for _, pt := range series.Points {
		v := pt.MW
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
		if v > capMW {
			p.ShiftableMWh += (v - capMW) * step
		}
	}
	sort.Float64s(vals)

	p.MinMW = minv
	p.MaxMW = maxv
	p.MeanMW = sum / float64(len(vals))
	p.P05MW = percentileSorted(vals, 0.05)
	p.P95MW = percentileSorted(vals, 0.95)

	p.Score = score(p, step)
	return p
}

func score(p SitePotential, stepHours float64) float64 {
	if p.MaxMW <= 0 || p.Count == 0 {
		return 0
	}
	utilization := p.MeanMW / p.MaxMW
	totalMWh := p.MeanMW * float64(p.Count) * stepHours
	shiftableShare := 0.0
	if totalMWh > 0 {
		shiftableShare = p.ShiftableMWh / totalMWh
	}
	steadiness := 1 - (p.P95MW-p.P05MW)/p.MaxMW
	if steadiness < 0 {
		steadiness = 0
	}
	return weightUtilization*utilization + weightShiftable*shiftableShare + weightSteadiness*steadiness
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
