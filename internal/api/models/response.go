package models

import (
	"time"

	"bess-sim/internal/model"
	"bess-sim/internal/sim"
	"bess-sim/internal/validate"
)

// SimulateResponse is the result of one simulation run. Validation always
// runs; a report with violations does not turn the response into an error.
type SimulateResponse struct {
	Status     string          `json:"status"`
	Summary    sim.Summary     `json:"summary"`
	Validation validate.Report `json:"validation"`
	Ledger     []LedgerRow     `json:"ledger,omitempty"`
}

// LedgerRow is the wire shape of one dispatch decision.
type LedgerRow struct {
	Index        int       `json:"index"`
	Timestamp    time.Time `json:"timestamp"`
	SourceMW     float64   `json:"source_mw"`
	Action       string    `json:"action"`
	RequestedMW  float64   `json:"requested_mw"`
	ActualMW     float64   `json:"actual_mw"`
	DeliveredMW  float64   `json:"delivered_mw"`
	EnergyInMWh  float64   `json:"energy_in_mwh"`
	EnergyOutMWh float64   `json:"energy_out_mwh"`
	LossMWh      float64   `json:"loss_mwh"`
	CurtailedMWh float64   `json:"curtailed_mwh"`
	SOCStartMWh  float64   `json:"soc_start_mwh"`
	SOCEndMWh    float64   `json:"soc_end_mwh"`
}

// LedgerFromDecisions converts runner output to wire rows.
func LedgerFromDecisions(decisions []model.DispatchDecision) []LedgerRow {
	rows := make([]LedgerRow, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, LedgerRow{
			Index:        d.Index,
			Timestamp:    d.Timestamp,
			SourceMW:     d.SourceMW,
			Action:       string(d.Action),
			RequestedMW:  d.RequestedMW,
			ActualMW:     d.ActualMW,
			DeliveredMW:  d.DeliveredMW(),
			EnergyInMWh:  d.EnergyInMWh,
			EnergyOutMWh: d.EnergyOutMWh,
			LossMWh:      d.LossMWh,
			CurtailedMWh: d.CurtailedMWh,
			SOCStartMWh:  d.SOCStartMWh,
			SOCEndMWh:    d.SOCEndMWh,
		})
	}
	return rows
}

// CompareResponse holds one summary per variation.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

type ComparisonResult struct {
	Name       string          `json:"name"`
	Summary    sim.Summary     `json:"summary"`
	Validation validate.Report `json:"validation"`
}

// RankResponse lists scored sites, best first.
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

type Ranking struct {
	Rank         int     `json:"rank"`
	Site         string  `json:"site"`
	Count        int     `json:"count"`
	MeanMW       float64 `json:"mean_mw"`
	MaxMW        float64 `json:"max_mw"`
	P95MW        float64 `json:"p95_mw"`
	ShiftableMWh float64 `json:"shiftable_mwh"`
	Score        float64 `json:"score"`
}

// BatteryInfo describes one catalog preset.
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

type BatterySpecs struct {
	PowerMW   float64 `json:"power_mw"`
	EnergyMWh float64 `json:"energy_mwh"`
	Tier      string  `json:"tier,omitempty"`
}

// StrategyInfo describes one dispatch strategy for UI discovery.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
