package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/config"
	"github.com/iliyamo/campus-event-allocation/internal/database"
	"github.com/iliyamo/campus-event-allocation/internal/handler"
	"github.com/iliyamo/campus-event-allocation/internal/queue"
	"github.com/iliyamo/campus-event-allocation/internal/repository"
	"github.com/iliyamo/campus-event-allocation/internal/router"
	notifier "github.com/iliyamo/campus-event-allocation/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter; nil means
	// both degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, caching and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	requests := repository.NewResourceRequestRepo(db)
	resources := repository.NewResourceRepo(db)
	venues := repository.NewVenueRepo(db)
	allocations := repository.NewAllocationRepo(db)
	logs := repository.NewApprovalLogRepo(db)

	emitter := notifier.NewQueue()

	// Background consumer turns published notifications into log lines.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, router.Deps{
		Cfg:       cfg,
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Events:    handler.NewEventHandler(events, requests, resources, venues, allocations, logs, emitter),
		Catalog:   handler.NewCatalogHandler(venues, resources, emitter),
		Dashboard: handler.NewDashboardHandler(events, venues, resources),
		Redis:     rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
