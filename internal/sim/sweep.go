package sim

import (
	"sync"

	"bess-sim/internal/model"
	"bess-sim/internal/strategy"
)

// Case is one immutable (spec, strategy) combination of a parameter sweep.
type Case struct {
	Name       string
	Spec       model.BatterySpec
	Strategy   strategy.Strategy
	InitialSOC float64
}

// CaseResult pairs a sweep case with its outcome. A failed case carries its
// error and does not abort the rest of the sweep.
type CaseResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunSweep executes independent runs across a bounded worker pool. Runs share
// no mutable state, so no coordination is needed beyond the work queue;
// results come back in case order.
func RunSweep(series model.TimeSeries, cases []Case, dtHours float64, workers int) []CaseResult {
	if workers <= 0 {
		workers = 4
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	out := make([]CaseResult, len(cases))
	jobs := make(chan int)
	var wg sync.WaitGroup

	runner := New()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c := cases[i]
				res, err := runner.Run(series, c.Strategy, c.Spec, c.InitialSOC, dtHours)
				out[i] = CaseResult{Name: c.Name, Result: res, Err: err}
			}
		}()
	}

	for i := range cases {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
