// Package config builds service configuration from environment variables so
// main stays lean. Every section carries development defaults; production
// deployments override them.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates all service configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Engine   Engine
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Postgres captures connection settings for the relational stores.
type Postgres struct {
	// URL is a pgx-compatible connection string. Empty means the service
	// runs on in-memory stores (development mode).
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Redis captures settings for the eligibility report cache.
type Redis struct {
	// URL is a redis:// connection string. Empty disables caching.
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ReportTTL    time.Duration
}

// Kafka captures settings for recalculation event publishing.
type Kafka struct {
	// Brokers is a comma-separated seed broker list. Empty disables the
	// event pipeline; recalculation then only happens on demand.
	Brokers     string
	RecalcTopic string
	GroupID     string
}

// Engine captures eligibility engine tuning.
type Engine struct {
	// MaxConcurrency bounds the per-batch scheme evaluation fan-out.
	MaxConcurrency int
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("YOJANA_ADDR", ":8080"),
			ShutdownTimeout: envDuration("YOJANA_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: Postgres{
			URL:          os.Getenv("YOJANA_POSTGRES_URL"),
			MaxOpenConns: envInt("YOJANA_POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns: envInt("YOJANA_POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: Redis{
			URL:          os.Getenv("YOJANA_REDIS_URL"),
			PoolSize:     envInt("YOJANA_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("YOJANA_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("YOJANA_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("YOJANA_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("YOJANA_REDIS_WRITE_TIMEOUT", 3*time.Second),
			ReportTTL:    envDuration("YOJANA_REPORT_CACHE_TTL", time.Hour),
		},
		Kafka: Kafka{
			Brokers:     os.Getenv("YOJANA_KAFKA_BROKERS"),
			RecalcTopic: envString("YOJANA_KAFKA_RECALC_TOPIC", "eligibility.recalculate"),
			GroupID:     envString("YOJANA_KAFKA_GROUP_ID", "yojana-recalc"),
		},
		Engine: Engine{
			MaxConcurrency: envInt("YOJANA_ENGINE_MAX_CONCURRENCY", 8),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
