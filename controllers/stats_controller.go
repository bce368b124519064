package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// StatsController exposes hit recording and view-count aggregation on the
// stats service.
type StatsController struct {
	stats *services.StatsService
}

// NewStatsController creates a StatsController.
func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Hit handles POST /hit.
func (c *StatsController) Hit(ctx *gin.Context) {
	var hit dto.EndpointHit
	if err := ctx.ShouldBindJSON(&hit); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	if err := c.stats.RecordHit(hit); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// Stats handles GET /stats?start&end&uris&unique.
func (c *StatsController) Stats(ctx *gin.Context) {
	start, err := queryTime(ctx, "start")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	end, err := queryTime(ctx, "end")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	if start == nil || end == nil {
		utils.RespondError(ctx, models.Validationf("start and end are required"))
		return
	}
	unique, err := queryBool(ctx, "unique")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	uniqueIPs := unique != nil && *unique

	stats, err := c.stats.GetStats(*start, *end, queryStringList(ctx, "uris"), uniqueIPs)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
