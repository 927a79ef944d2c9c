package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-delivery/internal/cache"
	"storefront-delivery/internal/config"
	"storefront-delivery/internal/database"
	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
	"storefront-delivery/internal/modules/coverage"
	"storefront-delivery/internal/modules/geocoding"
	"storefront-delivery/internal/modules/pricing"
	"storefront-delivery/internal/modules/quotes"
	"storefront-delivery/internal/modules/routing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg)
	log.Info("Starting storefront delivery service...")

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Redis is optional: without it geocoding results are simply not cached
	// and the keyless provider window is not enforced.
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer cacheClient.Close()
	} else {
		log.Warn("REDIS_ADDR not set, geocode caching disabled")
	}

	hub := models.HubLocation{
		Label:      cfg.HubLabel,
		Coordinate: models.Coordinate{Lat: cfg.HubLat, Lng: cfg.HubLng},
	}

	geocodingSvc := geocoding.NewService(cfg, cacheClient, log)
	routingSvc := routing.NewService(cfg, log)
	pricingSvc := pricing.NewService(pricing.NewRepository(db), log)
	coverageSvc := coverage.NewService(geocodingSvc, hub, cfg.ServiceRadiusKm, log)
	quoteSvc := quotes.NewService(geocodingSvc, routingSvc, pricingSvc, log)

	// Warm the fee configuration cache up front; later refreshes happen only
	// through the explicit admin reload.
	if err := pricingSvc.Reload(ctx); err != nil {
		log.WithError(err).Warn("Initial fee configuration load failed")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	}))

	e.GET("/health", func(c echo.Context) error {
		hctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(hctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": err.Error()})
		}
		if err := cacheClient.Health(hctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "cache": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "hub": hub.Label})
	})

	api := e.Group("/api")
	quotes.NewHandler(quoteSvc).RegisterRoutes(api)
	coverage.NewHandler(coverageSvc).RegisterRoutes(api)
	pricing.NewHandler(pricingSvc).RegisterRoutes(api)

	go func() {
		log.WithField("port", cfg.ServerPort).Info("HTTP server starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exited")
}
