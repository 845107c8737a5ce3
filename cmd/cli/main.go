package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bess-sim/internal/analysis"
	"bess-sim/internal/config"
	"bess-sim/internal/data"
	"bess-sim/internal/model"
	"bess-sim/internal/sim"
	"bess-sim/internal/strategy"
	"bess-sim/internal/validate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --profile site.json --config configs/run.yaml --out results/ledger.csv")
	fmt.Println("  cli sweep --profile site.json --batteries configs/batteries --strategies cap_shave,night_shift")
	fmt.Println("  cli rank --profiles data/profiles --cap 2.0")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes a per-step ledger CSV and prints the run summary")
	fmt.Println("  - sweep runs every battery x strategy combination in parallel")
	fmt.Println("  - rank scores candidate site profiles for storage installation")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to site profile (.json or .csv)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	summaryPath := fs.String("summary", "", "Optional summary JSON path")
	n := fs.Int("n", 0, "Optional: limit to first N steps (0=all)")
	_ = fs.Parse(args)

	if *profilePath == "" || *cfgPath == "" {
		fmt.Println("--profile and --config are required")
		os.Exit(2)
	}

	series := loadSeries(*profilePath)
	if *n > 0 && *n < series.Len() {
		series.Points = series.Points[:*n]
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}

	spec, err := model.NewBatterySpec(cfg.Battery.ToSpec())
	if err != nil {
		fatal(err)
	}
	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		fatal(err)
	}

	res, err := sim.New().Run(series, strat, spec, *cfg.Simulation.InitialSOC, cfg.Simulation.DtHours)
	if err != nil {
		fatal(err)
	}

	report := validate.Check(res, series, spec)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fatal(err)
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Decisions); err != nil {
		fatal(err)
	}
	if *summaryPath != "" {
		if err := sim.WriteSummaryJSON(*summaryPath, res); err != nil {
			fatal(err)
		}
	}

	s := res.Summary
	fmt.Printf("Wrote %d rows to %s\n", len(res.Decisions), *outPath)
	fmt.Printf("Delivered=%.3f MWh  Absorbed=%.3f MWh  Loss=%.3f MWh  Curtailed=%.3f MWh\n",
		s.DeliveredMWh, s.AbsorbedMWh, s.LossMWh, s.CurtailedMWh)
	fmt.Printf("Cycles=%.3f  Final SOC=%.3f\n", s.EquivalentFullCycles, s.FinalSOCFraction)
	if report.Valid {
		fmt.Println("Validation: OK")
	} else {
		fmt.Printf("Validation: %d violation(s)\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Printf("  step=%d rule=%s magnitude=%.6f\n", v.Step, v.Rule, v.Magnitude)
		}
	}
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to site profile (.json or .csv)")
	batteryDir := fs.String("batteries", "configs/batteries", "Directory of battery catalog YAML files")
	strategies := fs.String("strategies", strings.Join(strategy.Names(), ","), "Comma-separated strategy names")
	initialSOC := fs.Float64("initial-soc", sim.DefaultInitialSOC, "Initial SOC fraction")
	workers := fs.Int("workers", 4, "Parallel workers")
	_ = fs.Parse(args)

	if *profilePath == "" {
		fmt.Println("--profile is required")
		os.Exit(2)
	}
	series := loadSeries(*profilePath)

	entries, err := os.ReadDir(*batteryDir)
	if err != nil {
		fatal(err)
	}

	var cases []sim.Case
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		battCfg, err := config.LoadBatteryFile(filepath.Join(*batteryDir, e.Name()))
		if err != nil {
			fatal(err)
		}
		spec, err := model.NewBatterySpec(battCfg.ToSpec())
		if err != nil {
			fatal(fmt.Errorf("%s: %w", e.Name(), err))
		}
		for _, name := range splitList(*strategies) {
			strat, err := strategy.Build(name, nil)
			if err != nil {
				fatal(err)
			}
			cases = append(cases, sim.Case{
				Name:       fmt.Sprintf("%s/%s", strings.TrimSuffix(e.Name(), ".yaml"), name),
				Spec:       spec,
				Strategy:   strat,
				InitialSOC: *initialSOC,
			})
		}
	}
	if len(cases) == 0 {
		fmt.Println("no sweep cases found")
		os.Exit(1)
	}

	results := sim.RunSweep(series, cases, 0, *workers)

	fmt.Printf("%-32s %-12s %-12s %-12s %-10s %-8s\n", "case", "delivered", "loss", "curtailed", "cycles", "status")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-32s %-12s %-12s %-12s %-10s error: %v\n", r.Name, "-", "-", "-", "-", r.Err)
			continue
		}
		s := r.Result.Summary
		fmt.Printf("%-32s %-12.3f %-12.3f %-12.3f %-10.3f ok\n",
			r.Name, s.DeliveredMWh, s.LossMWh, s.CurtailedMWh, s.EquivalentFullCycles)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	profileDir := fs.String("profiles", "", "Directory of site profile JSON files")
	capMW := fs.Float64("cap", 0, "Reference injection cap in MW")
	_ = fs.Parse(args)

	if *profileDir == "" {
		fmt.Println("--profiles is required")
		os.Exit(2)
	}

	bySite, err := data.LoadProfileDir(*profileDir)
	if err != nil {
		fatal(err)
	}

	ranked := analysis.RankSites(bySite, *capMW)
	fmt.Printf("%-4s %-18s %-8s %-10s %-10s %-12s %-8s\n", "rank", "site", "count", "mean_mw", "p95_mw", "shiftable", "score")
	for _, r := range ranked {
		fmt.Printf("%-4d %-18s %-8d %-10.3f %-10.3f %-12.3f %-8.4f\n",
			r.Rank, r.Site, r.Count, r.MeanMW, r.P95MW, r.ShiftableMWh, r.Score)
	}
}

func loadSeries(path string) model.TimeSeries {
	var series model.TimeSeries
	switch {
	case strings.HasSuffix(path, ".csv"):
		s, err := data.LoadSeriesCSV(path)
		if err != nil {
			fatal(err)
		}
		series = s
	default:
		doc, err := data.LoadProfileJSON(path)
		if err != nil {
			fatal(err)
		}
		series = doc.Series()
	}
	return series
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
