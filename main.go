package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowers-delivery/app/bootstrap"
	"github.com/flowers-delivery/app/config"
	"github.com/flowers-delivery/app/controllers"
	"github.com/flowers-delivery/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// 2. Logger
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting delivery cost service", zap.String("env", cfg.App.Env))

	// 3. Services
	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Error closing connections", zap.Error(err))
		}
	}()

	// Load tariffs up front so file problems show in the startup log.
	logger.Info("Tariff table ready", zap.Int("zones", app.Tariffs.Table().Len()))

	// 4. Controllers
	var reverser controllers.Reverser
	if app.Geocoder.Enabled() {
		reverser = app.Geocoder
	}
	deliveryController := controllers.NewDeliveryController(app.Delivery, reverser, logger)
	adminController := controllers.NewAdminController(app.Admin, logger)

	// 5. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, deliveryController, adminController, logger.Named("http"))

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 6. Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", zap.Error(err))
	}

	logger.Info("Server exited")
}
