package solar

import (
	"math"
	"time"
)

// Site locates a candidate plant. Latitude in degrees (south negative),
// elevation in meters above sea level.
type Site struct {
	LatitudeDeg  float64
	ElevationM   float64
}

// Array is the collector geometry in degrees.
type Array struct {
	TiltDeg    float64
	AzimuthDeg float64
}

const degToRad = math.Pi / 180

// Irradiance returns the clear-sky plane-of-array irradiance in W/m^2 for a
// site and instant: direct beam attenuated by air mass plus a 10% diffuse
// component, zero outside the sunrise/sunset interval.
func Irradiance(a Array, s Site, t time.Time) float64 {
	rad := clearSkyIntensity(s, t)
	angle := incidentAngle(s, a, t)

	if angle > math.Pi/2 {
		return rad.diffuse
	}
	return rad.direct*math.Cos(angle) + rad.diffuse
}

type radiation struct {
	direct  float64
	diffuse float64
}

func clearSkyIntensity(s Site, t time.Time) radiation {
	if !isDaytime(s, t) {
		return radiation{}
	}
	elevationKm := s.ElevationM / 1000
	attenuated := math.Pow(0.7, math.Pow(airMass(s, t), 0.678))
	altitudeGain := elevationKm * 0.14

	direct := (attenuated*(1-altitudeGain) + altitudeGain) * 1353
	return radiation{direct: direct, diffuse: direct * 0.1}
}

func incidentAngle(s Site, a Array, t time.Time) float64 {
	lat := s.LatitudeDeg * degToRad
	tilt := a.TiltDeg * degToRad

	d := declinationAngle(t)
	return math.Acos(
		math.Cos(hourAngle(t))*math.Cos(d)*math.Cos(lat-tilt) +
			math.Sin(d)*math.Sin(lat-tilt))
}

func airMass(s Site, t time.Time) float64 {
	return 1 / math.Cos(math.Pi/2-elevationAngle(s, t))
}

func elevationAngle(s Site, t time.Time) float64 {
	lat := s.LatitudeDeg * degToRad
	d := declinationAngle(t)

	sinAlt := math.Sin(d)*math.Sin(lat) + math.Cos(d)*math.Cos(lat)*math.Cos(hourAngle(t))
	alt := math.Asin(sinAlt)
	if alt < 0 {
		return 0
	}
	return alt
}

func hourAngle(t time.Time) float64 {
	hourOfDay := float64(t.Hour()*3600+t.Minute()*60+t.Second()) / 3600
	return (hourOfDay - 12) * 15 * degToRad
}

func isDaytime(s Site, t time.Time) bool {
	return t.After(Sunrise(s, t)) && t.Before(Sunset(s, t))
}

// Sunrise returns the local sunrise instant for the site on t's calendar day.
func Sunrise(s Site, t time.Time) time.Time {
	return solarNoonOffset(s, t, -1)
}

// Sunset returns the local sunset instant for the site on t's calendar day.
func Sunset(s Site, t time.Time) time.Time {
	return solarNoonOffset(s, t, +1)
}

func solarNoonOffset(s Site, t time.Time, sign float64) time.Time {
	lat := s.LatitudeDeg * degToRad
	d := declinationAngle(t)

	cosH := -math.Tan(d) * math.Tan(lat)
	if cosH < -1 {
		cosH = -1
	}
	if cosH > 1 {
		cosH = 1
	}
	offsetHours := math.Acos(cosH) / degToRad / 15

	hr, fracHr := math.Modf(12 + sign*offsetHours)
	min, fracMin := math.Modf(fracHr * 60)
	sec, _ := math.Modf(fracMin * 60)

	return time.Date(t.Year(), t.Month(), t.Day(), int(hr), int(math.Abs(min)), int(math.Abs(sec)), 0, t.Location())
}

func declinationAngle(t time.Time) float64 {
	return 23.45 * degToRad * math.Sin(((float64(t.YearDay())-81)*2*math.Pi)/365.25)
}
