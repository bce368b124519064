package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dchirkov/eventum/config"
	"github.com/dchirkov/eventum/controllers"
	"github.com/dchirkov/eventum/middleware"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// NewStatsRouter wires the stats-service HTTP surface.
func NewStatsRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	gin.SetMode(cfg.GinMode)

	statsCtrl := controllers.NewStatsController(services.NewStatsService(db))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/hit", statsCtrl.Hit)
	r.GET("/stats", statsCtrl.Stats)

	return r
}
