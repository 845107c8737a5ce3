package solar

import (
	"time"

	"bess-sim/internal/model"
)

// Plant converts plane-of-array irradiance into AC output.
type Plant struct {
	Name       string
	CapacityMW float64
	// Derate folds inverter, wiring, soiling and temperature losses into one
	// factor applied to the irradiance ratio.
	Derate float64
	Array  Array
	Site   Site
}

// Standard test condition irradiance used to scale capacity.
const stcIrradiance = 1000.0

// OutputMW estimates plant output at one instant. Cloudiness in [0,1]
// scales the clear-sky value (0 = clear).
func (p Plant) OutputMW(t time.Time, cloudiness float64) float64 {
	derate := p.Derate
	if derate <= 0 || derate > 1 {
		derate = 0.8
	}
	if cloudiness < 0 {
		cloudiness = 0
	}
	if cloudiness > 1 {
		cloudiness = 1
	}

	irr := Irradiance(p.Array, p.Site, t)
	out := p.CapacityMW * (irr / stcIrradiance) * derate * (1 - cloudiness)
	if out > p.CapacityMW {
		out = p.CapacityMW
	}
	if out < 0 {
		out = 0
	}
	return out
}

// Profile samples the plant at a fixed cadence into a simulation-ready
// series. cloudiness may be nil for clear-sky output.
func (p Plant) Profile(start time.Time, steps int, stepHours float64, cloudiness func(t time.Time) float64) model.TimeSeries {
	points := make([]model.Point, 0, steps)
	step := time.Duration(stepHours * float64(time.Hour))
	for i := 0; i < steps; i++ {
		t := start.Add(time.Duration(i) * step)
		cloud := 0.0
		if cloudiness != nil {
			cloud = cloudiness(t)
		}
		points = append(points, model.Point{Timestamp: t, MW: p.OutputMW(t, cloud)})
	}
	name := p.Name
	if name == "" {
		name = "solar"
	}
	return model.TimeSeries{Name: name, Points: points}
}
