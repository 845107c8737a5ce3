package strategy

import "time"

// FlatDayParams bounds the daytime window in local hour-of-day.
// The window is [StartHour, EndHour) and may wrap midnight.
type FlatDayParams struct {
	StartHour int
	EndHour   int
}

// FlatDayStrategy targets a constant delivered-power level inside the
// daytime window: the mean of that calendar day's in-window generation.
// Surplus above the target charges the battery, deficit discharges it.
// Outside the window it idles.
type FlatDayStrategy struct {
	Params FlatDayParams
}

func (s *FlatDayStrategy) Name() string { return "flat_day" }

func (s *FlatDayStrategy) Decide(ctx Context) float64 {
	if ctx.Index < 0 || ctx.Index >= len(ctx.Series.Points) {
		return 0
	}
	pt := ctx.Series.Points[ctx.Index]
	if !inHourWindow(pt.Timestamp.Hour(), s.Params.StartHour, s.Params.EndHour) {
		return 0
	}
	target := s.dayTarget(ctx, pt.Timestamp.Year(), pt.Timestamp.YearDay())
	return target - pt.MW
}

// dayTarget averages the in-window samples of one calendar day. Timestamps
// are strictly increasing, so a day's points are contiguous: walk out from
// the current index instead of rescanning the whole series. Stateless, and
// long runs stay linear in series length.
func (s *FlatDayStrategy) dayTarget(ctx Context, year, yearDay int) float64 {
	points := ctx.Series.Points

	lo := ctx.Index
	for lo > 0 && sameDay(points[lo-1].Timestamp, year, yearDay) {
		lo--
	}
	hi := ctx.Index + 1
	for hi < len(points) && sameDay(points[hi].Timestamp, year, yearDay) {
		hi++
	}

	sum := 0.0
	n := 0
	for _, p := range points[lo:hi] {
		if !inHourWindow(p.Timestamp.Hour(), s.Params.StartHour, s.Params.EndHour) {
			continue
		}
		sum += p.MW
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func sameDay(t time.Time, year, yearDay int) bool {
	return t.Year() == year && t.YearDay() == yearDay
}
