package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/tripplanner/internal/cache"
	"github.com/dharmasatrya/tripplanner/internal/config"
	"github.com/dharmasatrya/tripplanner/internal/costs"
	"github.com/dharmasatrya/tripplanner/internal/exchange"
	"github.com/dharmasatrya/tripplanner/internal/handler"
	"github.com/dharmasatrya/tripplanner/internal/httpclient"
	"github.com/dharmasatrya/tripplanner/internal/llm"
	"github.com/dharmasatrya/tripplanner/internal/metrics"
	"github.com/dharmasatrya/tripplanner/internal/places"
	"github.com/dharmasatrya/tripplanner/internal/planner"
	"github.com/dharmasatrya/tripplanner/internal/ratelimit"
	"github.com/dharmasatrya/tripplanner/internal/report"
	"github.com/dharmasatrya/tripplanner/internal/search"
	"github.com/dharmasatrya/tripplanner/internal/storage"
	"github.com/dharmasatrya/tripplanner/internal/weather"
	"github.com/dharmasatrya/tripplanner/pkg/currency"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		var missing *config.MissingKeysError
		if errors.As(err, &missing) {
			log.Println("Missing required API keys. Please set the following environment variables:")
			for _, m := range missing.Missing {
				log.Printf("- %s", m)
			}
		}
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(metrics.Middleware())

	rateLimiter := ratelimit.NewServiceLimiterWithDefaults()
	for service, limit := range cfg.RateLimit {
		rateLimiter.SetLimit(service, limit)
	}

	client := httpclient.New(httpclient.Config{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		Limiter:   rateLimiter,
	})

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.Cache.RedisHost,
			Port:     cfg.Cache.RedisPort,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		responseCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.Cache.RedisHost, cfg.Cache.RedisPort, cfg.Cache.TTL)
	} else {
		responseCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}
	defer responseCache.Close()

	tables := costs.DefaultTables()
	if cfg.Storage.CostTablesFile != "" {
		tables, err = costs.LoadTables(cfg.Storage.CostTablesFile)
		if err != nil {
			log.Fatalf("Failed to load cost tables: %v", err)
		}
		log.Printf("Loaded cost tables from %s", cfg.Storage.CostTablesFile)
	}

	planStore, err := storage.NewPlanStore(cfg.Storage.PlansDir)
	if err != nil {
		log.Fatalf("Failed to open plan store: %v", err)
	}
	feedbackStore, err := storage.NewFeedbackStore(cfg.Storage.FeedbackDir)
	if err != nil {
		log.Fatalf("Failed to open feedback store: %v", err)
	}

	converter := exchange.NewConverter(client, exchange.Config{
		BaseURL: cfg.Services.ExchangeRateURL,
		APIKey:  cfg.Services.ExchangeRateKey,
	})

	tripPlanner := planner.NewPlanner(
		currency.NewDefaultResolver(),
		costs.NewEstimator(tables),
		report.NewPresenter(converter),
		search.NewClient(client, responseCache, search.Config{BaseURL: cfg.Services.SearchURL}),
		weather.NewClient(client, responseCache, weather.Config{
			BaseURL: cfg.Services.OpenWeatherURL,
			APIKey:  cfg.Services.OpenWeatherKey,
		}),
		llm.NewClient(client, llm.Config{
			BaseURL: cfg.Services.OpenAIURL,
			APIKey:  cfg.Services.OpenAIKey,
			Model:   cfg.Services.OpenAIModel,
		}),
		planStore,
		planner.Config{GatherTimeout: cfg.Planner.GatherTimeout},
	)

	placeFinder := places.NewClient(client, responseCache, places.Config{
		NominatimURL: cfg.Services.NominatimURL,
		OverpassURL:  cfg.Services.OverpassURL,
	})

	planHandler := handler.NewPlanHandler(tripPlanner, planStore)
	costHandler := handler.NewCostHandler(tripPlanner)
	travelHandler := handler.NewTravelHandler(placeFinder, feedbackStore)

	api := e.Group("/api/v1")
	api.POST("/plans", planHandler.Create)
	api.GET("/plans", planHandler.List)
	api.GET("/plans/:id", planHandler.Get)
	api.DELETE("/plans/:id", planHandler.Delete)
	api.GET("/plans/:id/download", planHandler.Download)
	api.POST("/costs/estimate", costHandler.Estimate)
	api.GET("/currency/resolve", costHandler.ResolveCurrency)
	api.POST("/checklist", travelHandler.Checklist)
	api.GET("/places/nearby", travelHandler.Nearby)
	api.POST("/feedback", travelHandler.Feedback)
	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", metrics.Handler())

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	go func() {
		log.Printf("Starting trip planner server on port %s", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
