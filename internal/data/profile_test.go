package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bess-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *ProfileDocument {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &ProfileDocument{
		Site: SiteInfo{ID: "jacobacci", Name: "Ingeniero Jacobacci", Feeder: "linea-sur-33kv", LatitudeDeg: -41.3, ElevationM: 890},
		Points: []model.Point{
			{Timestamp: start, MW: 0},
			{Timestamp: start.Add(time.Hour), MW: 1.2},
			{Timestamp: start.Add(2 * time.Hour), MW: 2.4},
		},
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jacobacci.json")

	require.NoError(t, SaveProfileJSON(sampleDoc(), path))

	doc, err := LoadProfileJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "jacobacci", doc.Site.ID)
	assert.Equal(t, "linea-sur-33kv", doc.Site.Feeder)

	series := doc.Series()
	assert.Equal(t, "jacobacci", series.Name)
	require.Equal(t, 3, series.Len())
	assert.InDelta(t, 2.4, series.Points[2].MW, 1e-12)
	assert.NoError(t, series.Validate())
}

func TestLoadProfileJSON_Missing(t *testing.T) {
	_, err := LoadProfileJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadProfileJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadProfileJSON(path)
	assert.Error(t, err)
}

func TestLoadProfileDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveProfileJSON(sampleDoc(), filepath.Join(dir, "jacobacci.json")))

	other := sampleDoc()
	other.Site.ID = "maquinchao"
	require.NoError(t, SaveProfileJSON(other, filepath.Join(dir, "maquinchao.json")))

	// Non-JSON entries are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	bySite, err := LoadProfileDir(dir)
	require.NoError(t, err)
	require.Len(t, bySite, 2)
	assert.Contains(t, bySite, "jacobacci")
	assert.Contains(t, bySite, "maquinchao")
}

func TestLoadSeriesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.csv")
	content := "timestamp,mw\n" +
		"2024-01-15T00:00:00Z,0.0\n" +
		"2024-01-15T01:00:00Z,1.5\n" +
		"2024-01-15T02:00:00Z,3.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	series, err := LoadSeriesCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "site", series.Name)
	require.Equal(t, 3, series.Len())
	assert.InDelta(t, 1.5, series.Points[1].MW, 1e-12)
	assert.NoError(t, series.Validate())
}

func TestLoadSeriesCSV_BadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.csv")
	content := "2024-01-15T00:00:00Z,abc\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadSeriesCSV(path)
	assert.Error(t, err)
}
