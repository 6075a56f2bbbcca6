package main // Entry point package

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/SAFE-MLC/safe-gate-ms/internal/cache"
	"github.com/SAFE-MLC/safe-gate-ms/internal/config"
	"github.com/SAFE-MLC/safe-gate-ms/internal/credential"
	"github.com/SAFE-MLC/safe-gate-ms/internal/database"
	"github.com/SAFE-MLC/safe-gate-ms/internal/handler"
	"github.com/SAFE-MLC/safe-gate-ms/internal/queue"
	"github.com/SAFE-MLC/safe-gate-ms/internal/repository"
	"github.com/SAFE-MLC/safe-gate-ms/internal/router"
	"github.com/SAFE-MLC/safe-gate-ms/internal/service"
)

func main() {
	// .env is a convenience for local runs; deployed environments inject
	// real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	// Clients are constructed here and injected; no component reaches for
	// global connection state.
	verifier := credential.NewVerifier(cfg.SessionKey, cfg.EventID)
	ticketRepo := repository.NewTicketRepo(db)
	views := cache.NewViewCache(rdb, cfg.TicketCacheTTL)
	directory := service.NewTicketDirectory(ticketRepo, views, logger)
	replay := cache.NewReplayGuard(rdb, cfg.ReplayTTL)
	scanLog := cache.NewScanLog(rdb)

	var publisher service.ScanPublisher
	if p := queue.NewPublisher(os.Getenv("RABBITMQ_URL")); p != nil {
		publisher = p
	} else {
		logger.Warn("RABBITMQ_URL not set, scan event publishing disabled")
	}

	gate := service.NewGateService(verifier, directory, replay, ticketRepo, scanLog, publisher,
		cfg.EventID, cfg.DepTimeout, logger)

	e := echo.New()
	router.RegisterRoutes(e, handler.NewScanHandler(gate))

	addr := ":" + cfg.Port
	log.Printf("gate service listening on %s (env=%s, event=%s)", addr, cfg.Env, cfg.EventID)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
