package handlers

import (
	"errors"
	"net/http"

	"bess-sim/internal/analysis"
	"bess-sim/internal/api/models"
	"bess-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler scores candidate site profiles for storage installation.
type RankHandler struct{}

func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// RankSites handles POST /api/v1/rank.
func (h *RankHandler) RankSites(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if len(req.Profiles) == 0 {
		badRequest(c, "INVALID_REQUEST", errors.New("at least one profile is required"))
		return
	}

	bySite := make(map[string]model.TimeSeries, len(req.Profiles))
	for _, p := range req.Profiles {
		bySite[p.Name] = model.TimeSeries{Name: p.Name, Points: p.Series}
	}

	ranked := analysis.RankSites(bySite, req.CapMW)
	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	resp := models.RankResponse{Rankings: make([]models.Ranking, 0, len(ranked))}
	for _, r := range ranked {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:         r.Rank,
			Site:         r.Site,
			Count:        r.Count,
			MeanMW:       r.MeanMW,
			MaxMW:        r.MaxMW,
			P95MW:        r.P95MW,
			ShiftableMWh: r.ShiftableMWh,
			Score:        r.Score,
		})
	}
	c.JSON(http.StatusOK, resp)
}
