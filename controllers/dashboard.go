// controllers/dashboard.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"salonops-backend/services"
)

type DashboardController struct {
	aggregation *services.AggregationService
}

func NewDashboardController(aggregation *services.AggregationService) *DashboardController {
	return &DashboardController{aggregation: aggregation}
}

// Overview returns the full owner dashboard: live feed, revenue for
// today / this week / this month, leaderboard, service popularity, new
// clients and who is clocked in. Owner dashboards poll this; a partial
// flag tells them one of the ledgers could not be read this round.
func (ctl *DashboardController) Overview(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctl.aggregation.Overview(salonUUID, time.Now()))
}

// Feed returns the live activity feed, optionally narrowed to one event
// type, without recomputing anything beyond the merge.
func (ctl *DashboardController) Feed(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	events, partial := ctl.aggregation.Feed(salonUUID, time.Now(), c.Query("type"), limit)
	c.JSON(http.StatusOK, gin.H{"events": events, "partial": partial})
}
