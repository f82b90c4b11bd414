package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"portfolio-snapshots/internal/api/handlers"
	"portfolio-snapshots/internal/api/middleware"
	"portfolio-snapshots/internal/config"
	"portfolio-snapshots/internal/data"
	"portfolio-snapshots/internal/replay"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; the file is allowed to be absent.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", cfgPath, err)
	}

	client := data.NewClient(cfg.DataService.BaseURL, cfg.Timeout())
	gen := replay.NewGenerator(client)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	snapshotHandler := handlers.NewSnapshotHandler(gen)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/snapshots/generate", snapshotHandler.GenerateSnapshots)
	}

	if cfg.SchedulerEnabled() {
		go runScheduler(gen, cfg.Scheduler)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting API server on %s (data service: %s)", addr, cfg.DataService.BaseURL)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runScheduler regenerates snapshots for the configured portfolios on a fixed
// interval. Each portfolio gets its own run and its own state; a failing
// portfolio does not stop the others.
func runScheduler(gen *replay.Generator, cfg config.SchedulerConfig) {
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	log.Printf("[Scheduler] Regenerating %d portfolio(s) every %v", len(cfg.Portfolios), interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		for _, portfolioID := range cfg.Portfolios {
			snapshots, err := gen.GenerateDailySnapshots(portfolioID)
			if err != nil {
				log.Printf("[Scheduler] Run failed for portfolio %s: %v", portfolioID, err)
				continue
			}
			log.Printf("[Scheduler] Portfolio %s: %d snapshot(s) generated", portfolioID, len(snapshots))
		}
	}
}
