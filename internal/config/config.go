package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bess-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML catalog file
	// (e.g. configs/batteries/*.yaml). Fields set under Battery override the
	// loaded file.
	BatteryFile string           `yaml:"battery_file"`
	Battery     BatteryConfig    `yaml:"battery"`
	Strategy    StrategyConfig   `yaml:"strategy"`
	Simulation  SimulationConfig `yaml:"simulation"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name"`
	PowerMW             float64 `yaml:"power_mw"`
	EnergyMWh           float64 `yaml:"energy_mwh"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency"`
	MinSOC              float64 `yaml:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc"`
	CRate               float64 `yaml:"c_rate"`
	Tier                string  `yaml:"tier"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type SimulationConfig struct {
	// DtHours <= 0 derives the step from the profile timestamps.
	DtHours float64 `yaml:"dt_hours"`
	// InitialSOC is a pointer so an explicit 0 (start empty) is
	// distinguishable from an omitted key.
	InitialSOC *float64 `yaml:"initial_soc"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Default the run start to mid-band; it keeps configs concise and avoids
	// "free" starting inventory dominating short runs.
	if c.Simulation.InitialSOC == nil {
		mid := (c.Battery.MinSOC + c.Battery.MaxSOC) / 2
		c.Simulation.InitialSOC = &mid
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer paths relative to the config file directory, falling
			// back to the cwd-relative path if that does not exist.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := LoadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	if _, err := model.NewBatterySpec(c.Battery.ToSpec()); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	return nil
}

func (b BatteryConfig) ToSpec() model.BatterySpec {
	tier := model.Tier(b.Tier)
	if b.Tier == "" {
		tier = model.TierStandard
	}
	return model.BatterySpec{
		Name:                b.Name,
		PowerMW:             b.PowerMW,
		EnergyMWh:           b.EnergyMWh,
		RoundTripEfficiency: b.RoundTripEfficiency,
		MinSOC:              b.MinSOC,
		MaxSOC:              b.MaxSOC,
		CRate:               b.CRate,
		Tier:                tier,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryFile reads one catalog entry (a YAML file with a `battery` key).
func LoadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// Used when a catalog file is loaded and the request or config overrides
// individual parameters.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.PowerMW != 0 {
		out.PowerMW = override.PowerMW
	}
	if override.EnergyMWh != 0 {
		out.EnergyMWh = override.EnergyMWh
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	if override.MinSOC != 0 {
		out.MinSOC = override.MinSOC
	}
	if override.MaxSOC != 0 {
		out.MaxSOC = override.MaxSOC
	}
	if override.CRate != 0 {
		out.CRate = override.CRate
	}
	if override.Tier != "" {
		out.Tier = override.Tier
	}
	return out
}
