package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	goredis "github.com/redis/go-redis/v9"

	"github.com/shenikar/crime_map/internal/classifier"
	"github.com/shenikar/crime_map/internal/config"
	v1 "github.com/shenikar/crime_map/internal/handler/http/v1"
	"github.com/shenikar/crime_map/internal/metrics"
	"github.com/shenikar/crime_map/internal/report"
	"github.com/shenikar/crime_map/internal/repository"
	"github.com/shenikar/crime_map/internal/service"
	"github.com/shenikar/crime_map/pkg/logger"
	"github.com/shenikar/crime_map/pkg/postgres"
	redisclient "github.com/shenikar/crime_map/pkg/redis"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/crime_map/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Crime Map API
// @version 1.0
// @description Geolocated crime incidents for a map front end, with PDF report extraction and category prediction.
// @host localhost:5000
// @BasePath /api
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, dir := range []string{cfg.UploadDir, cfg.ProcessedDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	if cfg.RunMigrations {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	if version, err := postgres.PostGISVersion(ctx, dbpool); err != nil {
		log.WithError(err).Warn("PostGIS check failed, spatial queries will error")
	} else {
		log.WithField("postgis", version).Info("Successfully connected to PostgreSQL")
	}

	// Redis нужен только для CACHE_TYPE=redis
	var redisClient *goredis.Client
	if cfg.CacheType == config.CacheRedis {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	cache, err := repository.NewCache(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	log.WithField("cache_type", cfg.CacheType).Info("Cache initialized")

	// Модель загружается один раз; при ошибке запросы получают ErrModelUnavailable
	predictor, err := classifier.NewPredictor(cfg.ModelPath, log)
	if err != nil {
		log.WithError(err).Warn("Category prediction is disabled")
	}

	// Инициализация репозиториев и сервисов
	crimeRepo := repository.NewCrimeRepository(dbpool)
	crimeService := service.NewCrimeService(crimeRepo, cache, log, cfg)
	reportService := report.NewService(report.NewPdfToText(cfg.PdfToTextPath), log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(crimeService, reportService, predictor, log, cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(gin.Recovery())
	router.Use(v1.RequestLogger(log))
	router.Use(v1.CORS(cfg.CORSOrigins))

	api := router.Group(cfg.APIPrefix)
	api.Use(v1.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, log))
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Добавление маршрута для Swagger UI
	docs.SwaggerInfo.BasePath = cfg.APIPrefix
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
