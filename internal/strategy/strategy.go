package strategy

import "bess-sim/internal/model"

// Context is everything a strategy may look at for one decision. Strategies
// are pure: same context in, same request out, and they never mutate the
// series or the state. State mutation belongs to the physical model.
type Context struct {
	Index   int
	Series  model.TimeSeries
	State   model.BatteryState
	Spec    model.BatterySpec
	DtHours float64
}

// Strategy maps a timestep to a requested power setpoint in MW.
// Convention: positive = discharge, negative = charge.
type Strategy interface {
	Name() string
	Decide(ctx Context) float64
}

// sourceAt reads the series value at index i, treating out-of-range
// neighbors as zero so strategies never look past the series bounds.
func sourceAt(series model.TimeSeries, i int) float64 {
	if i < 0 || i >= len(series.Points) {
		return 0
	}
	return series.Points[i].MW
}

// inHourWindow checks whether hour h is in [start, end) on a 24h clock.
// If start == end, the window is empty (always false).
// If start > end, it wraps across midnight.
func inHourWindow(h, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return h >= start && h < end
	}
	return h >= start || h < end
}
