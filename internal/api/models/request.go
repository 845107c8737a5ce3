package models

import "bess-sim/internal/model"

// SimulateRequest is the body for POST /api/v1/simulate. The series comes
// inline; the service holds no per-request state between calls.
type SimulateRequest struct {
	SeriesName string        `json:"series_name,omitempty"`
	Series     []model.Point `json:"series" binding:"required"`
	Config     SimConfig     `json:"config" binding:"required"`
	Options    SimOptions    `json:"options,omitempty"`
}

// SimConfig mirrors the YAML config shape for API callers. InitialSOC is a
// pointer so an explicit 0 (start empty) differs from an omitted field.
type SimConfig struct {
	BatteryFile string         `json:"battery_file,omitempty"`
	Battery     BatteryConfig  `json:"battery,omitempty"`
	Strategy    StrategyConfig `json:"strategy" binding:"required"`
	DtHours     float64        `json:"dt_hours,omitempty"`
	InitialSOC  *float64       `json:"initial_soc,omitempty"`
}

// BatteryConfig defines battery parameters.
type BatteryConfig struct {
	Name                string  `json:"name,omitempty"`
	PowerMW             float64 `json:"power_mw"`
	EnergyMWh           float64 `json:"energy_mwh"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
	MinSOC              float64 `json:"min_soc"`
	MaxSOC              float64 `json:"max_soc"`
	CRate               float64 `json:"c_rate,omitempty"`
	Tier                string  `json:"tier,omitempty"`
}

// StrategyConfig selects a dispatch strategy and its parameters.
type StrategyConfig struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// SimOptions contains optional simulation parameters.
type SimOptions struct {
	LimitSteps    int  `json:"limit_steps,omitempty"`    // 0 = all
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// CompareRequest runs one series against several strategy/battery variations.
type CompareRequest struct {
	SeriesName string        `json:"series_name,omitempty"`
	Series     []model.Point `json:"series" binding:"required"`
	BaseConfig SimConfig     `json:"base_config" binding:"required"`
	Variations []Variation   `json:"variations" binding:"required"`
}

// Variation defines one compared configuration.
type Variation struct {
	Name   string    `json:"name" binding:"required"`
	Config SimConfig `json:"config" binding:"required"`
}

// RankRequest scores candidate site profiles against a reference cap.
type RankRequest struct {
	CapMW    float64          `json:"cap_mw"`
	Profiles []ProfilePayload `json:"profiles" binding:"required"`
	Limit    int              `json:"limit,omitempty"` // 0 = all
}

// ProfilePayload is one inline site profile.
type ProfilePayload struct {
	Name   string        `json:"name" binding:"required"`
	Series []model.Point `json:"series" binding:"required"`
}
