package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bess-sim/internal/model"
)

// LoadSeriesCSV reads a two-column CSV (timestamp, mw) into a series.
// A header row is skipped when the first field does not parse as a time.
// Timestamps are RFC 3339.
func LoadSeriesCSV(path string) (model.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.TimeSeries{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var points []model.Point
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.TimeSeries{}, fmt.Errorf("read %s: %w", path, err)
		}
		line++
		if len(rec) < 2 {
			return model.TimeSeries{}, fmt.Errorf("%s line %d: expected timestamp,mw", path, line)
		}
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return model.TimeSeries{}, fmt.Errorf("%s line %d: bad timestamp: %w", path, line, err)
		}
		mw, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return model.TimeSeries{}, fmt.Errorf("%s line %d: bad value: %w", path, line, err)
		}
		points = append(points, model.Point{Timestamp: ts, MW: mw})
	}

	name := strings.TrimSuffix(filepath.Base(path), ".csv")
	return model.TimeSeries{Name: name, Points: points}, nil
}
