package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"bess-sim/internal/api/models"
	"bess-sim/internal/config"
	"bess-sim/internal/model"
	"bess-sim/internal/sim"
	"bess-sim/internal/strategy"
	"bess-sim/internal/validate"

	"github.com/gin-gonic/gin"
)

// SimulateHandler runs battery simulations for inline series.
type SimulateHandler struct {
	batteryDir string
	runner     *sim.Runner
}

// NewSimulateHandler creates the handler. batteryDir is where catalog
// presets live when a request references a battery_file by id.
func NewSimulateHandler(batteryDir string) *SimulateHandler {
	return &SimulateHandler{
		batteryDir: batteryDir,
		runner:     sim.New(),
	}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	series := seriesFromRequest(req.SeriesName, req.Series, req.Options.LimitSteps)

	res, report, err := h.simulate(series, req.Config)
	if err != nil {
		respondSimError(c, err)
		return
	}

	resp := models.SimulateResponse{
		Status:     "completed",
		Summary:    res.Summary,
		Validation: report,
	}
	if req.Options.IncludeLedger {
		resp.Ledger = models.LedgerFromDecisions(res.Decisions)
	}
	c.JSON(http.StatusOK, resp)
}

// CompareSimulations handles POST /api/v1/simulate/compare.
func (h *SimulateHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if len(req.Variations) == 0 {
		badRequest(c, "INVALID_REQUEST", errors.New("at least one variation is required"))
		return
	}

	series := seriesFromRequest(req.SeriesName, req.Series, 0)

	out := models.CompareResponse{}
	for _, v := range req.Variations {
		cfg := mergeSimConfig(req.BaseConfig, v.Config)
		res, report, err := h.simulate(series, cfg)
		if err != nil {
			respondSimError(c, err)
			return
		}
		out.Comparison = append(out.Comparison, models.ComparisonResult{
			Name:       v.Name,
			Summary:    res.Summary,
			Validation: report,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ValidateRun handles POST /api/v1/validate: run the simulation and return
// only the physical consistency report.
func (h *SimulateHandler) ValidateRun(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	series := seriesFromRequest(req.SeriesName, req.Series, req.Options.LimitSteps)
	_, report, err := h.simulate(series, req.Config)
	if err != nil {
		respondSimError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *SimulateHandler) simulate(series model.TimeSeries, cfg models.SimConfig) (*sim.Result, validate.Report, error) {
	spec, err := h.buildSpec(cfg)
	if err != nil {
		return nil, validate.Report{}, err
	}
	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return nil, validate.Report{}, err
	}

	initialSOC := sim.DefaultInitialSOC
	if cfg.InitialSOC != nil {
		initialSOC = *cfg.InitialSOC
	}

	res, err := h.runner.Run(series, strat, spec, initialSOC, cfg.DtHours)
	if err != nil {
		return nil, validate.Report{}, err
	}
	return res, validate.Check(res, series, spec), nil
}

func (h *SimulateHandler) buildSpec(cfg models.SimConfig) (model.BatterySpec, error) {
	base := config.BatteryConfig{}
	if cfg.BatteryFile != "" {
		path := cfg.BatteryFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(h.batteryDir, filepath.Base(path))
		}
		loaded, err := config.LoadBatteryFile(path)
		if err != nil {
			return model.BatterySpec{}, err
		}
		base = loaded
	}
	merged := config.MergeBattery(base, config.BatteryConfig{
		Name:                cfg.Battery.Name,
		PowerMW:             cfg.Battery.PowerMW,
		EnergyMWh:           cfg.Battery.EnergyMWh,
		RoundTripEfficiency: cfg.Battery.RoundTripEfficiency,
		MinSOC:              cfg.Battery.MinSOC,
		MaxSOC:              cfg.Battery.MaxSOC,
		CRate:               cfg.Battery.CRate,
		Tier:                cfg.Battery.Tier,
	})
	return model.NewBatterySpec(merged.ToSpec())
}

func seriesFromRequest(name string, points []model.Point, limit int) model.TimeSeries {
	if limit > 0 && limit < len(points) {
		points = points[:limit]
	}
	if name == "" {
		name = "request"
	}
	return model.TimeSeries{Name: name, Points: points}
}

// mergeSimConfig overlays the set fields of a variation onto the base.
func mergeSimConfig(base, override models.SimConfig) models.SimConfig {
	out := base
	if override.BatteryFile != "" {
		out.BatteryFile = override.BatteryFile
	}
	if override.Battery != (models.BatteryConfig{}) {
		out.Battery = override.Battery
	}
	if override.Strategy.Name != "" {
		out.Strategy = override.Strategy
	}
	if override.DtHours != 0 {
		out.DtHours = override.DtHours
	}
	if override.InitialSOC != nil {
		out.InitialSOC = override.InitialSOC
	}
	return out
}

func respondSimError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidSpec):
		badRequest(c, "INVALID_BATTERY", err)
	case errors.Is(err, model.ErrInvalidInput):
		badRequest(c, "INVALID_SERIES", err)
	default:
		badRequest(c, "INVALID_CONFIG", err)
	}
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
