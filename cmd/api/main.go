package main

import (
	"log"

	"github.com/dchirkov/eventum/config"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/routes"
	"github.com/dchirkov/eventum/statsclient"
	"github.com/dchirkov/eventum/utils"
)

func main() {
	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer utils.Logger.Sync()

	db := config.InitDatabase(cfg.DBName,
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Event{},
		&models.ParticipationRequest{},
		&models.Compilation{},
		&models.Comment{},
	)

	stats := statsclient.New(cfg.StatsServerURL, cfg.AppName)
	router := routes.NewRouter(db, stats)

	utils.Sugar.Infof("main service listening on :%s", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, router); err != nil {
		utils.Sugar.Fatalf("server stopped: %v", err)
	}
}
