package main

import (
	"flag"
	"fmt"
	"time"

	"bess-sim/internal/model"
	"bess-sim/internal/sim"
	"bess-sim/internal/solar"
	"bess-sim/internal/strategy"
	"bess-sim/internal/validate"
)

// Demo:
// - Generate a clear-sky solar profile for a southern-hemisphere site
// - Instantiate a battery spec
// - Run the night-shift strategy and print the hourly ledger
func main() {
	days := flag.Int("days", 2, "Number of days to simulate")
	capacity := flag.Float64("capacity", 3.0, "Plant capacity in MW")
	flag.Parse()

	plant := solar.Plant{
		Name:       "demo-site",
		CapacityMW: *capacity,
		Derate:     0.8,
		Array:      solar.Array{TiltDeg: 35},
		Site:       solar.Site{LatitudeDeg: -41.2, ElevationM: 890},
	}

	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	series := plant.Profile(start, *days*24, 1, nil)

	spec := model.BatterySpec{
		Name:                "demo-bess",
		PowerMW:             1.0,
		EnergyMWh:           4.0,
		RoundTripEfficiency: 0.93,
		MinSOC:              0.10,
		MaxSOC:              0.95,
		Tier:                model.TierModernLFP,
	}
	if err := spec.Validate(); err != nil {
		panic(err)
	}

	strat := &strategy.NightShiftStrategy{Params: strategy.NightShiftParams{
		ChargeStartHour:    9,
		ChargeEndHour:      17,
		DischargeStartHour: 19,
		DischargeEndHour:   23,
	}}

	res, err := sim.New().Run(series, strat, spec, sim.DefaultInitialSOC, 1)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Simulated %d hourly steps, strategy=%s\n\n", series.Len(), strat.Name())
	for i := 0; i < min(24, len(res.Decisions)); i++ {
		d := res.Decisions[i]
		fmt.Printf("%s src=%6.3f  action=%-11s  req=%7.3f  p=%7.3f  soc=%.3f->%.3f  loss=%.4f\n",
			d.Timestamp.Format("2006-01-02 15:04"),
			d.SourceMW,
			string(d.Action),
			d.RequestedMW,
			d.ActualMW,
			d.SOCStartMWh,
			d.SOCEndMWh,
			d.LossMWh,
		)
	}

	s := res.Summary
	fmt.Printf("\nDelivered=%.3f MWh  Absorbed=%.3f MWh  Loss=%.3f MWh  Cycles=%.3f  Final SOC=%.3f\n",
		s.DeliveredMWh, s.AbsorbedMWh, s.LossMWh, s.EquivalentFullCycles, s.FinalSOCFraction)

	report := validate.Check(res, series, spec)
	if report.Valid {
		fmt.Println("Validation: OK")
	} else {
		fmt.Printf("Validation: %d violation(s)\n", len(report.Violations))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
