package config

import (
	"errors"
	"fmt"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	DB struct {
		Host    string
		Port    string
		User    string
		Pass    string
		Name    string
		Retries int
	}

	MigrateOnStart bool

	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}

	Kafka struct {
		Brokers      []string
		ProductTopic string
		PricingTopic string
		GroupID      string
	}

	HTTP struct {
		Addr      string
		JWTSecret string
		RateLimit float64
		RateBurst int
	}

	LogLevel zerolog.Level
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "3306")
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Pass = getEnv("DB_PASS", "")
	cfg.DB.Name = getEnv("DB_NAME", "kpmg")
	if cfg.DB.Retries, err = strconv.Atoi(getEnv("DB_CONNECT_RETRIES", "1")); err != nil || cfg.DB.Retries < 1 {
		return nil, fmt.Errorf("%w: DB_CONNECT_RETRIES must be a positive integer", ErrInvalidConfig)
	}

	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "false")); err != nil {
		return nil, fmt.Errorf("%w: MIGRATE_ON_START: %v", ErrInvalidConfig, err)
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	if cfg.Redis.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "1m")); err != nil || cfg.Redis.CacheTTL < 0 {
		return nil, fmt.Errorf("%w: CACHE_TTL must be a non-negative duration", ErrInvalidConfig)
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.ProductTopic = getEnv("KAFKA_PRODUCT_TOPIC", "product-topic")
	cfg.Kafka.PricingTopic = getEnv("KAFKA_PRICING_TOPIC", "pricing-topic")
	cfg.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", "product-console-group")

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8081")
	cfg.HTTP.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.HTTP.RateLimit, err = strconv.ParseFloat(getEnv("HTTP_RATE_LIMIT", "10"), 64); err != nil || cfg.HTTP.RateLimit <= 0 {
		return nil, fmt.Errorf("%w: HTTP_RATE_LIMIT must be a positive number", ErrInvalidConfig)
	}
	if cfg.HTTP.RateBurst, err = strconv.Atoi(getEnv("HTTP_RATE_BURST", "20")); err != nil || cfg.HTTP.RateBurst < 1 {
		return nil, fmt.Errorf("%w: HTTP_RATE_BURST must be a positive integer", ErrInvalidConfig)
	}

	if cfg.LogLevel, err = zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// DSN builds the MySQL data source name.
func (c *Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DB.User
	mc.Passwd = c.DB.Pass
	mc.Net = "tcp"
	mc.Addr = c.DB.Host + ":" + c.DB.Port
	mc.DBName = c.DB.Name
	return mc.FormatDSN()
}

func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
