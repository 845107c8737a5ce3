package strategy

import (
	"fmt"
	"sort"
)

// Strategy names form a closed set so config and API requests can be
// validated up front and each variant tested in isolation.
const (
	NameCapShave   = "cap_shave"
	NameFlatDay    = "flat_day"
	NameNightShift = "night_shift"
	NameRampLimit  = "ramp_limit"
)

// Names lists the known strategy names, sorted.
func Names() []string {
	names := []string{NameCapShave, NameFlatDay, NameNightShift, NameRampLimit}
	sort.Strings(names)
	return names
}

// Build constructs a strategy from its enumerated name and a parameter map
// as it appears in YAML config or a JSON request body.
func Build(name string, params map[string]any) (Strategy, error) {
	switch name {
	case NameCapShave:
		return &CapShaveStrategy{Params: CapShaveParams{
			CapMW:   numParam(params, "cap_mw", 0),
			FloorMW: numParam(params, "floor_mw", 0),
		}}, nil
	case NameFlatDay:
		return &FlatDayStrategy{Params: FlatDayParams{
			StartHour: intParam(params, "start_hour", 9),
			EndHour:   intParam(params, "end_hour", 18),
		}}, nil
	case NameNightShift:
		return &NightShiftStrategy{Params: NightShiftParams{
			ChargeStartHour:    intParam(params, "charge_start_hour", 9),
			ChargeEndHour:      intParam(params, "charge_end_hour", 17),
			DischargeStartHour: intParam(params, "discharge_start_hour", 18),
			DischargeEndHour:   intParam(params, "discharge_end_hour", 23),
		}}, nil
	case NameRampLimit:
		return &RampLimitStrategy{Params: RampLimitParams{
			MaxRampMW: numParam(params, "max_ramp_mw", 1),
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

func numParam(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case float32:
			return float64(x)
		case int:
			return float64(x)
		case int64:
			return float64(x)
		}
	}
	return def
}

func intParam(m map[string]any, key string, def int) int {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case int:
			return x
		case int64:
			return int(x)
		case float64:
			return int(x)
		}
	}
	return def
}
