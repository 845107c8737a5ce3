package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"bess-sim/internal/api/models"
	"bess-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// BatteryHandler serves the catalog of battery presets from a directory of
// YAML files.
type BatteryHandler struct {
	batteryDir string
}

func NewBatteryHandler(batteryDir string) *BatteryHandler {
	if batteryDir == "" {
		batteryDir = defaultBatteryDir()
	}
	return &BatteryHandler{batteryDir: batteryDir}
}

func defaultBatteryDir() string {
	if dir := os.Getenv("BATTERY_DIR"); dir != "" {
		return dir
	}
	return "./configs/batteries"
}

// GetBatteryDir returns the resolved catalog directory.
func (h *BatteryHandler) GetBatteryDir() string { return h.batteryDir }

// ListBatteries handles GET /api/v1/batteries.
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		// An absent catalog is not a failure: the API still accepts fully
		// inline battery configs.
		c.JSON(http.StatusOK, gin.H{"batteries": []models.BatteryInfo{}})
		return
	}

	batteries := make([]models.BatteryInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		cfg, err := config.LoadBatteryFile(filepath.Join(h.batteryDir, e.Name()))
		if err != nil {
			continue // skip unreadable presets, serve the rest
		}
		id := strings.TrimSuffix(strings.TrimSuffix(e.Name(), ".yaml"), ".yml")
		name := cfg.Name
		if name == "" {
			name = id
		}
		batteries = append(batteries, models.BatteryInfo{
			ID:   id,
			Name: name,
			File: e.Name(),
			Specs: models.BatterySpecs{
				PowerMW:   cfg.PowerMW,
				EnergyMWh: cfg.EnergyMWh,
				Tier:      cfg.Tier,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
