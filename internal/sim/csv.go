package sim

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"bess-sim/internal/model"
)

// WriteLedgerCSV writes the per-step trajectory, one row per decision.
// This is the primary artifact consumed by the reporting layer.
func WriteLedgerCSV(path string, decisions []model.DispatchDecision) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"timestamp",
		"source_mw",
		"action",
		"requested_mw",
		"actual_mw",
		"delivered_mw",
		"energy_in_mwh",
		"energy_out_mwh",
		"loss_mwh",
		"curtailed_mwh",
		"soc_start_mwh",
		"soc_end_mwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, d := range decisions {
		row := []string{
			strconv.Itoa(d.Index),
			fmtTime(d.Timestamp),
			fmtFloat(d.SourceMW),
			string(d.Action),
			fmtFloat(d.RequestedMW),
			fmtFloat(d.ActualMW),
			fmtFloat(d.DeliveredMW()),
			fmtFloat(d.EnergyInMWh),
			fmtFloat(d.EnergyOutMWh),
			fmtFloat(d.LossMWh),
			fmtFloat(d.CurtailedMWh),
			fmtFloat(d.SOCStartMWh),
			fmtFloat(d.SOCEndMWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteSummaryJSON writes the run summary for the dashboard/report layer.
func WriteSummaryJSON(path string, res *Result) error {
	doc := struct {
		Strategy string  `json:"strategy"`
		Battery  string  `json:"battery"`
		Summary  Summary `json:"summary"`
	}{
		Strategy: res.Strategy,
		Battery:  res.Spec.Name,
		Summary:  res.Summary,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
