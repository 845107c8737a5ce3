package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bess-sim/internal/model"
)

// ProfileDocument matches the JSON shape the study's preprocessing step
// emits per candidate site: metadata plus an ordered (timestamp, MW) series.
type ProfileDocument struct {
	Site   SiteInfo      `json:"site"`
	Points []model.Point `json:"points"`
}

type SiteInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Feeder      string  `json:"feeder,omitempty"`
	LatitudeDeg float64 `json:"latitude_deg,omitempty"`
	ElevationM  float64 `json:"elevation_m,omitempty"`
}

// LoadProfileJSON reads one site profile document.
func LoadProfileJSON(path string) (*ProfileDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc ProfileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &doc, nil
}

// Series converts the document into a simulation input.
func (d *ProfileDocument) Series() model.TimeSeries {
	name := d.Site.ID
	if name == "" {
		name = d.Site.Name
	}
	return model.TimeSeries{Name: name, Points: d.Points}
}

// SaveProfileJSON writes a profile document, creating parent directories.
func SaveProfileJSON(doc *ProfileDocument, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

// LoadProfileDir reads every .json profile in a directory, keyed by site.
func LoadProfileDir(dir string) (map[string]model.TimeSeries, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := map[string]model.TimeSeries{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		doc, err := LoadProfileJSON(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		series := doc.Series()
		if series.Name == "" {
			series.Name = strings.TrimSuffix(e.Name(), ".json")
		}
		out[series.Name] = series
	}
	return out, nil
}
