package main

import (
	"log"

	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	"github.com/teerapatch/rodhai/fallback"
	"github.com/teerapatch/rodhai/server"
	"github.com/teerapatch/rodhai/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	hub := server.NewHub()
	mailgunClient := services.NewMailgun(conf)

	s := &server.Server{
		Config: conf,
		Mail:   mailgunClient,
		Hub:    hub,
	}

	if conf.DemoMode {
		// The local data path replaces Postgres entirely: seeded JSON
		// files, one mock session, in-memory registry.
		store, err := fallback.NewStore(conf.DataDir)
		if err != nil {
			log.Fatalf("unable to open local store: %v", err)
		}
		roster := fallback.NewRoster(store, hub)
		registry := fallback.NewRegistry(store, roster, hub)
		s.Roster = roster
		s.Registry = registry
	} else {
		gormDB := db.GetDB(conf)

		authRepo := db.NewAuthRepo(gormDB)
		lostCarRepo := db.NewLostCarRepo(gormDB)
		tipRepo := db.NewTipRepo(gormDB)
		pointsRepo := db.NewPointsRepo(gormDB)
		planRepo := db.NewPlanRepo(gormDB)
		mediaRepo := db.NewMediaRepo()

		pointsService := services.NewPointsService(pointsRepo, conf)
		authService := services.NewAuthService(authRepo, pointsRepo, mailgunClient, conf)
		lostCarService := services.NewLostCarService(lostCarRepo, conf)
		tipService := services.NewTipService(tipRepo, lostCarRepo, pointsService, conf)
		planService := services.NewPlanService(planRepo, conf)
		mediaService := services.NewMediaService(mediaRepo, conf)

		s.AuthRepository = authRepo
		s.AuthService = authService
		s.LostCarService = lostCarService
		s.TipService = tipService
		s.PointsService = pointsService
		s.PlanService = planService
		s.MediaService = mediaService
		s.DB = *gormDB
	}

	s.Start()
}
