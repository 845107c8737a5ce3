package strategy

// CapShaveParams flattens generation peaks above a cap and backfills dips
// below a floor. Both levels are MW at the point of injection.
type CapShaveParams struct {
	CapMW   float64
	FloorMW float64
}

// CapShaveStrategy charges with the excess above CapMW and discharges to
// cover the shortfall below FloorMW. Between the two levels it idles.
type CapShaveStrategy struct {
	Params CapShaveParams
}

func (s *CapShaveStrategy) Name() string { return "cap_shave" }

func (s *CapShaveStrategy) Decide(ctx Context) float64 {
	v := sourceAt(ctx.Series, ctx.Index)
	if v > s.Params.CapMW {
		return -(v - s.Params.CapMW)
	}
	if v < s.Params.FloorMW {
		return s.Params.FloorMW - v
	}
	return 0
}
