package handlers

import (
	"net/http"

	"bess-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler exposes the closed strategy set for UI discovery.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "cap_shave",
			Description: "Charges the excess above a cap and discharges to cover shortfalls below a floor. Flattens injection peaks.",
			Parameters: []models.ParameterInfo{
				{Name: "cap_mw", Type: "float", Description: "Injection level above which surplus is charged (MW)", Default: 0.0},
				{Name: "floor_mw", Type: "float", Description: "Injection level below which the battery discharges (MW)", Default: 0.0},
			},
		},
		{
			Name:        "flat_day",
			Description: "Targets a constant delivered level inside a daytime window, set to the day's mean in-window generation.",
			Parameters: []models.ParameterInfo{
				{Name: "start_hour", Type: "int", Description: "Window start hour-of-day, inclusive", Default: 9},
				{Name: "end_hour", Type: "int", Description: "Window end hour-of-day, exclusive", Default: 18},
			},
		},
		{
			Name:        "night_shift",
			Description: "Charges at full rated power during the generation window and discharges during the evening window. Shifts solar energy into the nighttime peak.",
			Parameters: []models.ParameterInfo{
				{Name: "charge_start_hour", Type: "int", Description: "Charge window start hour-of-day", Default: 9},
				{Name: "charge_end_hour", Type: "int", Description: "Charge window end hour-of-day, exclusive", Default: 17},
				{Name: "discharge_start_hour", Type: "int", Description: "Discharge window start hour-of-day", Default: 18},
				{Name: "discharge_end_hour", Type: "int", Description: "Discharge window end hour-of-day, exclusive", Default: 23},
			},
		},
		{
			Name:        "ramp_limit",
			Description: "Bounds the step-to-step change of delivered power; the battery absorbs or supplies the difference.",
			Parameters: []models.ParameterInfo{
				{Name: "max_ramp_mw", Type: "float", Description: "Maximum delivered-power change per step (MW)", Default: 1.0},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
