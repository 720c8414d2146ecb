package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/handlers"
	"tripplanner/logger"
	"tripplanner/metrics"
	"tripplanner/planner"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(os.Stdout, cfg.IsDevelopment())
	slog.SetDefault(appLogger)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.PublicBaseURL == "" && !cfg.IsDevelopment() {
		appLogger.Warn("PUBLIC_BASE_URL is not set, share links use the request Host header")
	}

	store := database.NewSessionStore(cfg.Session.TTL, cfg.Session.Cleanup)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, func() float64 { return float64(store.Count()) })

	h := handlers.New(handlers.Options{
		Engine:         planner.NewEngine(planner.DefaultSource),
		Store:          store,
		Metrics:        m,
		Gatherer:       reg,
		Logger:         appLogger,
		PublicBaseURL:  cfg.PublicBaseURL,
		AllowedOrigins: cfg.AllowedOrigins(),
		TrustedProxies: cfg.TrustedProxies(),
		MaxDays:        cfg.MaxDays,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(appLogger.Handler(), slog.LevelError),
	}

	go func() {
		appLogger.Info("Trip planner starting", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", slog.Any("error", err))
		return
	}
	appLogger.Info("Server stopped")
}
