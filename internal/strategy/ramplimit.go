package strategy

// RampLimitParams bounds how fast delivered power may move between steps.
type RampLimitParams struct {
	MaxRampMW float64
}

// RampLimitStrategy smooths the natural step-to-step swing of the source:
// when generation moves more than MaxRampMW from the previous sample, the
// battery absorbs or supplies the difference between the natural and the
// limited ramp. The neighbor before the first sample counts as zero.
type RampLimitStrategy struct {
	Params RampLimitParams
}

func (s *RampLimitStrategy) Name() string { return "ramp_limit" }

func (s *RampLimitStrategy) Decide(ctx Context) float64 {
	v := sourceAt(ctx.Series, ctx.Index)
	prev := sourceAt(ctx.Series, ctx.Index-1)

	limited := v
	if v > prev+s.Params.MaxRampMW {
		limited = prev + s.Params.MaxRampMW
	} else if v < prev-s.Params.MaxRampMW {
		limited = prev - s.Params.MaxRampMW
	}
	return limited - v
}
