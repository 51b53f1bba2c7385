package service

//go:generate mockgen -source=crime.go -destination=mocks/mock_crime.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shenikar/crime_map/internal/config"
	"github.com/shenikar/crime_map/internal/metrics"
	"github.com/shenikar/crime_map/internal/models"
	"github.com/shenikar/crime_map/internal/spatial"
	"github.com/sirupsen/logrus"
)

const (
	categoriesCacheKey = "categories"
	statsCacheKey      = "stats"
)

// CrimeRepository определяет контракт пространственного хранилища
type CrimeRepository interface {
	QueryPlan(ctx context.Context, plan spatial.Plan) ([]spatial.Row, error)
	CategoryCounts(ctx context.Context) ([]models.CategoryCount, error)
	CountCrimes(ctx context.Context) (int64, error)
	CheckConnection(ctx context.Context) error
}

// Cache - хранилище ключ-значение с TTL. Промах - это (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CrimeService определяет контракт для бизнес-логики чтения инцидентов
type CrimeService interface {
	GetCrimes(ctx context.Context, q spatial.ViewportQuery) (*spatial.FeatureCollection, error)
	GetHeatmap(ctx context.Context, q spatial.ViewportQuery) (*spatial.Heatmap, error)
	ListCategories(ctx context.Context) ([]models.CategoryCount, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	CheckHealth(ctx context.Context) error
}

type crimeService struct {
	repo      CrimeRepository
	cache     Cache
	assembler *spatial.Assembler
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewCrimeService(repo CrimeRepository, cache Cache, logger *logrus.Logger, cfg *config.Config) CrimeService {
	return &crimeService{
		repo:      repo,
		cache:     cache,
		assembler: spatial.NewAssembler(logger.WithField("component", "assembler")),
		logger:    logger,
		cfg:       cfg,
	}
}

// GetCrimes возвращает отдельные точки или кластеры в зависимости от масштаба.
// Два одновременных промаха по одному ключу оба пересчитают результат; последняя запись побеждает.
func (s *crimeService) GetCrimes(ctx context.Context, q spatial.ViewportQuery) (*spatial.FeatureCollection, error) {
	key := q.CacheKey(spatial.EndpointCrimes)
	log := s.logger.WithFields(logrus.Fields{
		"service": "crime",
		"method":  "GetCrimes",
		"zoom":    q.Zoom,
	})

	var cached spatial.FeatureCollection
	if s.fromCache(ctx, log, string(spatial.EndpointCrimes), key, &cached) {
		return &cached, nil
	}

	plan := spatial.PlanQuery(q)
	log = log.WithField("mode", plan.Mode.String())
	if plan.Mode == spatial.ModeClustered {
		log = log.WithField("cluster_factor", plan.ClusterFactor)
	}
	log.Debug("Querying crimes")
	metrics.QueriesByModeTotal.WithLabelValues(plan.Mode.String()).Inc()

	rows, err := s.repo.QueryPlan(ctx, plan)
	if err != nil {
		log.WithError(err).Error("Failed to query crimes from repository")
		return nil, fmt.Errorf("service: could not query crimes: %w", err)
	}

	fc, dropped := s.assembler.Assemble(plan, rows)
	if dropped > 0 {
		metrics.DroppedRowsTotal.WithLabelValues(string(spatial.EndpointCrimes)).Add(float64(dropped))
	}
	log.WithFields(logrus.Fields{
		"rows":      len(rows),
		"features":  len(fc.Features),
		"truncated": fc.Truncated,
	}).Info("Crimes assembled")

	s.toCache(ctx, log, key, fc, s.cfg.CrimesTTL)
	return fc, nil
}

// GetHeatmap возвращает точки [lat, lng, 1] без кластеризации
func (s *crimeService) GetHeatmap(ctx context.Context, q spatial.ViewportQuery) (*spatial.Heatmap, error) {
	key := q.CacheKey(spatial.EndpointHeatmap)
	log := s.logger.WithFields(logrus.Fields{
		"service": "crime",
		"method":  "GetHeatmap",
	})

	var cached spatial.Heatmap
	if s.fromCache(ctx, log, string(spatial.EndpointHeatmap), key, &cached) {
		return &cached, nil
	}

	plan := spatial.PlanHeatmap(q)
	metrics.QueriesByModeTotal.WithLabelValues("heatmap").Inc()

	rows, err := s.repo.QueryPlan(ctx, plan)
	if err != nil {
		log.WithError(err).Error("Failed to query heatmap points from repository")
		return nil, fmt.Errorf("service: could not query heatmap: %w", err)
	}

	points, dropped := s.assembler.AssembleHeatmap(rows)
	if dropped > 0 {
		metrics.DroppedRowsTotal.WithLabelValues(string(spatial.EndpointHeatmap)).Add(float64(dropped))
	}
	result := &spatial.Heatmap{
		Points:    points,
		Truncated: len(rows) >= plan.Limit,
	}
	log.WithField("count", len(points)).Info("Generated heatmap points")

	s.toCache(ctx, log, key, result, s.cfg.HeatmapTTL)
	return result, nil
}

// ListCategories возвращает категории по убыванию количества
func (s *crimeService) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "crime",
		"method":  "ListCategories",
	})

	var cached []models.CategoryCount
	if s.fromCache(ctx, log, categoriesCacheKey, categoriesCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count categories in repository")
		return nil, fmt.Errorf("service: could not list categories: %w", err)
	}

	s.toCache(ctx, log, categoriesCacheKey, categories, s.cfg.CategoriesTTL)
	return categories, nil
}

// GetStats возвращает общее количество и все категории, несмотря на имя top_categories
func (s *crimeService) GetStats(ctx context.Context) (*models.Stats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "crime",
		"method":  "GetStats",
	})

	var cached models.Stats
	if s.fromCache(ctx, log, statsCacheKey, statsCacheKey, &cached) {
		return &cached, nil
	}

	total, err := s.repo.CountCrimes(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count crimes in repository")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	categories, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count categories in repository")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}

	stats := &models.Stats{TotalCrimes: total, TopCategories: categories}
	s.toCache(ctx, log, statsCacheKey, stats, s.cfg.StatsTTL)
	return stats, nil
}

// CheckHealth возвращает ошибку, если хранилище недоступно
func (s *crimeService) CheckHealth(ctx context.Context) error {
	if err := s.repo.CheckConnection(ctx); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "crime",
			"method":  "CheckHealth",
		}).WithError(err).Warn("Health check failed")
		return fmt.Errorf("service: store unavailable: %w", err)
	}
	return nil
}

// fromCache treats every cache failure as a miss.
func (s *crimeService) fromCache(ctx context.Context, log *logrus.Entry, endpoint, key string, dst any) bool {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(endpoint, "error").Inc()
		log.WithError(err).Warn("Cache read failed, recomputing")
		return false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(endpoint, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(endpoint, "error").Inc()
		log.WithError(err).Warn("Cached value is unreadable, recomputing")
		return false
	}
	metrics.CacheLookupsTotal.WithLabelValues(endpoint, "hit").Inc()
	log.WithField("cache_key", key).Debug("Cache hit")
	return true
}

func (s *crimeService) toCache(ctx context.Context, log *logrus.Entry, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).Warn("Failed to marshal value for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		log.WithError(err).Warn("Failed to write cache")
	}
}
