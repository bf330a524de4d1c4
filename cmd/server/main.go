package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_site_go/config"
	"portfolio_site_go/handlers"
	"portfolio_site_go/middleware"
	"portfolio_site_go/router"
	"portfolio_site_go/services/api"
	"portfolio_site_go/services/i18n"
	"portfolio_site_go/services/jobs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	middleware.InitAssetVersions(cfg.StaticDir)

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	monitor := jobs.NewBackendMonitor(client, cfg.APITimeout)
	h := handlers.New(cfg, client, monitor)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead},
	}))
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	healthPath, _ := router.Path(router.Healthz)
	limiter := middleware.PageRateLimiter(cfg.RateLimitPerMinute, router.StaticPrefix, healthPath)
	e.Use(limiter.Middleware())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSPNonce())

	router.Register(e, h, cfg.StaticDir)

	// Backend reachability is informational; the site still serves error pages without it
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	go monitor.Check(jobsCtx)
	if cfg.BackendCheckSchedule != "" {
		scheduler, err := jobs.StartScheduler(jobsCtx, time.UTC, monitor.Job(cfg.BackendCheckSchedule))
		if err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	go limiter.Cleanup(jobsCtx, time.Minute)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	log.Println("Server stopped")
}

// hstsMaxAge enables HSTS for a year in production only.
func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}
