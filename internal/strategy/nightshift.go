package strategy

// NightShiftParams configures two non-overlapping fixed hour-of-day windows:
// charge during the generation window, discharge during the evening window.
// Each window is [Start, End) and may wrap midnight.
type NightShiftParams struct {
	ChargeStartHour    int
	ChargeEndHour      int
	DischargeStartHour int
	DischargeEndHour   int
}

// NightShiftStrategy moves solar energy into the evening peak: it requests
// full rated power charge inside the charge window, full rated power
// discharge inside the discharge window, and idles everywhere else. The
// physical model clips the request to what SOC headroom allows.
type NightShiftStrategy struct {
	Params NightShiftParams
}

func (s *NightShiftStrategy) Name() string { return "night_shift" }

func (s *NightShiftStrategy) Decide(ctx Context) float64 {
	if ctx.Index < 0 || ctx.Index >= len(ctx.Series.Points) {
		return 0
	}
	h := ctx.Series.Points[ctx.Index].Timestamp.Hour()
	if inHourWindow(h, s.Params.ChargeStartHour, s.Params.ChargeEndHour) {
		return -ctx.Spec.PowerMW
	}
	if inHourWindow(h, s.Params.DischargeStartHour, s.Params.DischargeEndHour) {
		return ctx.Spec.PowerMW
	}
	return 0
}
