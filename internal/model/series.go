package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput marks a malformed time series at the start of a run.
var ErrInvalidInput = errors.New("invalid input series")

// Point is one sample of a power series.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	MW        float64   `json:"mw"`
}

// TimeSeries is an ordered, uniformly spaced power series. It is immutable
// once loaded; strategies and the runner only read it.
type TimeSeries struct {
	Name   string
	Points []Point
}

func (ts TimeSeries) Len() int { return len(ts.Points) }

// StepHours returns the uniform sample spacing in hours. Series with a single
// point default to one hour.
func (ts TimeSeries) StepHours() (float64, error) {
	if len(ts.Points) == 0 {
		return 0, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}
	if len(ts.Points) == 1 {
		return 1, nil
	}
	return ts.Points[1].Timestamp.Sub(ts.Points[0].Timestamp).Hours(), nil
}

// Validate checks the series is non-empty and uniformly spaced. The spacing
// tolerance absorbs sub-second jitter from file round-trips.
func (ts TimeSeries) Validate() error {
	if len(ts.Points) == 0 {
		return fmt.Errorf("%w: empty series", ErrInvalidInput)
	}
	if len(ts.Points) == 1 {
		return nil
	}
	step := ts.Points[1].Timestamp.Sub(ts.Points[0].Timestamp)
	if step <= 0 {
		return fmt.Errorf("%w: non-increasing timestamps", ErrInvalidInput)
	}
	for i := 2; i < len(ts.Points); i++ {
		d := ts.Points[i].Timestamp.Sub(ts.Points[i-1].Timestamp)
		if math.Abs(d.Seconds()-step.Seconds()) > 1 {
			return fmt.Errorf("%w: non-uniform step at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

// Window reports the covered time range.
func (ts TimeSeries) Window() (start, end time.Time) {
	if len(ts.Points) == 0 {
		return time.Time{}, time.Time{}
	}
	return ts.Points[0].Timestamp, ts.Points[len(ts.Points)-1].Timestamp
}
