package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/config"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/handlers"
	"github.com/stayvelle/hotel-backend/internal/metrics"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/services"
	"github.com/stayvelle/hotel-backend/internal/utils"
	"github.com/stayvelle/hotel-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_time": buildTime,
	}).Info("Starting hotel back end")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			logger.Fatalf("Failed to create schema: %v", err)
		}
		logger.Info("Database schema is up to date")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Without a configured secret no presented token can verify
	jwtSecret := cfg.Auth.Secret
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET is not set; authentication is disabled and every request acts as anonymous")
		if jwtSecret, err = utils.GenerateJWTSecret(); err != nil {
			logger.Fatalf("Failed to generate throwaway JWT secret: %v", err)
		}
	}
	jwtService := jwt.NewService(jwtSecret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)

	logger.Info("Initializing services...")
	auditService := services.NewAuditService(db, cfg.Security.EnableAuditLog)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db, logger)
	housekeepingService := services.NewHousekeepingService(db, logger)
	catalogService := services.NewCatalogService(db)
	userService := services.NewUserService(db, cfg.Security.BcryptCost)
	documentService := services.NewDocumentService(db)

	var cronService *services.CronService
	if cfg.Reconciler.Schedule != "" {
		cronService = services.NewCronService(db, m, logger)
		if err := cronService.Start(cfg.Reconciler.Schedule); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatalf("Failed to register request validators: %v", err)
	}

	h := &handlers.Handlers{
		Rooms:        handlers.NewRoomHandler(roomService, auditService, logger),
		Bookings:     handlers.NewBookingHandler(bookingService, auditService, logger),
		Housekeeping: handlers.NewHousekeepingHandler(housekeepingService, auditService, logger),
		Catalog:      handlers.NewCatalogHandler(catalogService, auditService, logger),
		Users:        handlers.NewUserHandler(userService, auditService, logger),
		Documents:    handlers.NewDocumentHandler(documentService, auditService, logger),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtService, cfg.Auth.Required, logger))
	handlers.RegisterRoutes(api, h, middleware.RequireRole(models.RoleAdmin))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if cronService != nil {
		cronService.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// healthCheckHandler reports whether the database answers a ping
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
