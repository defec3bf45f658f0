package controllers

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Dashboard handles GET /api/stats/dashboard. The block is computed
// all-or-nothing, so a failed counter yields a 500 rather than a
// partially zeroed dashboard.
func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Dashboard()
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, stats)
}
