package main

import (
	"context"
	"net/http"

	"autoparts-service/internal/handler"
	mid "autoparts-service/internal/middleware"
	"autoparts-service/internal/realtime"
	"autoparts-service/internal/seed"
	"autoparts-service/internal/store"
	"autoparts-service/internal/upload"
	"autoparts-service/pkg/config"
	"autoparts-service/pkg/database"
	"autoparts-service/pkg/logger"
	"autoparts-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting autoparts-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Connect to the document store; an unreachable store is fatal
	ctx := context.Background()
	db, err := database.Connect(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer database.Disconnect(ctx, db)
	log.Info("Document store connection established",
		zap.String("database", appConfig.Mongo.Database))

	// Construct stores and supporting services
	products := store.NewProductStore(db)
	categories := store.NewCategoryStore(db)
	brands := store.NewBrandStore(db)

	if err := categories.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to ensure category indexes", zap.Error(err))
	}
	if err := brands.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to ensure brand indexes", zap.Error(err))
	}

	// Seed the default taxonomy; failure is non-fatal and the server
	// starts anyway
	if err := seed.Run(ctx, categories, log); err != nil {
		log.Error("Category seeding failed", zap.Error(err))
	}

	// Real-time event fan-out
	hub := realtime.NewHub(log)
	go hub.Run()

	uploads := upload.NewSaver(appConfig.Upload.Dir, appConfig.Upload.PublicPath)

	productHandler := handler.NewProductHandler(products, hub, uploads, appConfig.Upload.MaxFiles)
	categoryHandler := handler.NewCategoryHandler(categories)
	brandHandler := handler.NewBrandHandler(brands, uploads)
	statsHandler := handler.NewStatsHandler(products)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Real-time channel
	e.GET("/ws", hub.ServeWS)

	// Static serving of uploaded images
	e.Static(appConfig.Upload.PublicPath, appConfig.Upload.Dir)

	// Product API routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", productHandler.List)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create)
	productAPI.PUT("/:id", productHandler.Update)
	productAPI.DELETE("/:id", productHandler.Delete)

	// Category API routes
	categoryAPI := e.Group("/api/categories")
	categoryAPI.GET("", categoryHandler.List)
	categoryAPI.POST("", categoryHandler.Create)

	// Brand API routes
	brandAPI := e.Group("/api/brands")
	brandAPI.GET("", brandHandler.List)
	brandAPI.POST("", brandHandler.Create)

	// Statistics
	e.GET("/api/stats", statsHandler.Get)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server error", zap.Error(err))
	}
}
