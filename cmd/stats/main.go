package main

import (
	"log"

	"github.com/dchirkov/eventum/config"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/routes"
	"github.com/dchirkov/eventum/utils"
)

func main() {
	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer utils.Logger.Sync()

	db := config.InitDatabase(cfg.StatsDBName, &models.Hit{})
	router := routes.NewStatsRouter(db)

	utils.Sugar.Infof("stats service listening on :%s", cfg.StatsPort)
	if err := utils.GraceServer(":"+cfg.StatsPort, router); err != nil {
		utils.Sugar.Fatalf("server stopped: %v", err)
	}
}
