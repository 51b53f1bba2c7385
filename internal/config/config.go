package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backend names. NormalizeCacheType also accepts common aliases.
const (
	CacheRedis  = "redis"
	CacheMemory = "simple"
	CacheNull   = "null"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	APIPrefix   string   `env:"API_PREFIX" envDefault:"/api"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
	DatabaseURL string   `env:"DATABASE_URL"`
	HTTPPort    string   `env:"PORT" envDefault:"5000"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	Debug       bool     `env:"DEBUG" envDefault:"false"`

	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`

	// Cache Config
	CacheType      string        `env:"CACHE_TYPE" envDefault:"simple"`
	CacheKeyPrefix string        `env:"CACHE_KEY_PREFIX" envDefault:"crimemap:"`
	CacheTTL       time.Duration `env:"CACHE_DEFAULT_TIMEOUT" envDefault:"300"`
	CrimesTTL      time.Duration `env:"CRIMES_CACHE_TIMEOUT"`
	HeatmapTTL     time.Duration `env:"HEATMAP_CACHE_TIMEOUT"`
	CategoriesTTL  time.Duration `env:"CATEGORIES_CACHE_TIMEOUT" envDefault:"3600"`
	StatsTTL       time.Duration `env:"STATS_CACHE_TIMEOUT" envDefault:"3600"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Upload Config
	UploadDir     string `env:"UPLOAD_FOLDER" envDefault:"./uploads"`
	ProcessedDir  string `env:"PROCESSED_FOLDER" envDefault:"./processed"`
	MaxUploadSize int64  `env:"MAX_CONTENT_LENGTH" envDefault:"16777216"`
	PdfToTextPath string `env:"PDFTOTEXT_PATH" envDefault:"pdftotext"`

	ModelPath string `env:"MODEL_PATH" envDefault:"./crime_category_prediction_model.json"`

	// Rate limiting; RateLimitRPS <= 0 disables it
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"50"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	defaultTTL := getEnvAsSeconds("CACHE_DEFAULT_TIMEOUT", 300*time.Second)
	cfg := &Config{
		APIPrefix:      normalizePrefix(getEnv("API_PREFIX", "/api")),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		HTTPPort:       getEnv("PORT", getEnv("HTTP_PORT", "5000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Debug:          getEnvAsBool("DEBUG", false),
		RunMigrations:  getEnvAsBool("RUN_MIGRATIONS", false),
		CacheType:      getEnv("CACHE_TYPE", CacheMemory),
		CacheKeyPrefix: getEnv("CACHE_KEY_PREFIX", "crimemap:"),
		CacheTTL:       defaultTTL,
		CrimesTTL:      getEnvAsSeconds("CRIMES_CACHE_TIMEOUT", defaultTTL),
		HeatmapTTL:     getEnvAsSeconds("HEATMAP_CACHE_TIMEOUT", defaultTTL),
		CategoriesTTL:  getEnvAsSeconds("CATEGORIES_CACHE_TIMEOUT", time.Hour),
		StatsTTL:       getEnvAsSeconds("STATS_CACHE_TIMEOUT", time.Hour),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		UploadDir:      getEnv("UPLOAD_FOLDER", "./uploads"),
		ProcessedDir:   getEnv("PROCESSED_FOLDER", "./processed"),
		MaxUploadSize:  int64(getEnvAsInt("MAX_CONTENT_LENGTH", 16<<20)),
		PdfToTextPath:  getEnv("PDFTOTEXT_PATH", "pdftotext"),
		ModelPath:      getEnv("MODEL_PATH", "./crime_category_prediction_model.json"),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 50),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = composeDatabaseURL()
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or DB_USER/DB_NAME environment variables are required")
	}

	cacheType, err := NormalizeCacheType(cfg.CacheType)
	if err != nil {
		return nil, err
	}
	cfg.CacheType = cacheType

	return cfg, nil
}

// NormalizeCacheType maps the configured backend name onto one of the Cache* constants.
func NormalizeCacheType(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "redis", "rediscache":
		return CacheRedis, nil
	case "", "simple", "simplecache", "memory":
		return CacheMemory, nil
	case "null", "nullcache", "none":
		return CacheNull, nil
	}
	return "", fmt.Errorf("unknown CACHE_TYPE %q", name)
}

// composeDatabaseURL собирает DSN из отдельных DB_* переменных
func composeDatabaseURL() string {
	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, os.Getenv("DB_PASSWORD")),
		Host:   getEnv("DB_HOST", "localhost") + ":" + getEnv("DB_PORT", "5432"),
		Path:   "/" + name,
	}
	return u.String()
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "t", "yes":
			return true
		case "false", "0", "f", "no":
			return false
		}
	}
	return defaultValue
}

// getEnvAsSeconds принимает как целое число секунд, так и time.Duration ("5m")
func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if durationValue, err := time.ParseDuration(value); err == nil {
		return durationValue
	}
	return defaultValue
}
