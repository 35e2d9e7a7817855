package main // Entry point package

import (
	"context" // Context for startup deadlines
	"log"     // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/apartment-rental/internal/config"     // Internal config loader
	"github.com/iliyamo/apartment-rental/internal/database"   // MySQL pool and schema provisioning
	"github.com/iliyamo/apartment-rental/internal/engine"     // Admission, aggregate and ranking engines
	"github.com/iliyamo/apartment-rental/internal/handler"    // HTTP handlers
	"github.com/iliyamo/apartment-rental/internal/queue"      // RabbitMQ reservation event consumer
	"github.com/iliyamo/apartment-rental/internal/repository" // MySQL-backed store
	"github.com/iliyamo/apartment-rental/internal/router"     // Internal router setup
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if cfg.ProvisionDB { // Create tables on first boot when requested
		if err := database.CreateSchema(context.Background(), db); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	store := repository.NewMySQLStore(db) // Single store behind every engine

	admission := engine.NewAdmission(store)
	catalog := engine.NewCatalog(store)
	aggregates := engine.NewAggregates(store)
	ranking := engine.NewRanking(store)

	publish := cfg.AMQPURL != "" // Domain events are best-effort and optional
	if publish {
		go queue.StartReservationConsumer(cfg.AMQPURL) // Background consumer writes the reservation log
	}

	// Optional Redis-backed rate limiter; nil when disabled or Redis is down.
	rdb := config.NewRedisClient()
	limit := router.RateLimiter(config.LoadRateLimitConfig(), rdb)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog), limit)
	router.RegisterReservations(e,
		handler.NewReservationHandler(admission, catalog, publish),
		handler.NewReviewHandler(admission),
		limit)
	router.RegisterAnalytics(e, handler.NewAnalyticsHandler(aggregates, ranking))

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
