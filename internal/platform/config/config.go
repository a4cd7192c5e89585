package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything cmd/server needs to wire the process. All
// values come from the environment so main stays lean.
type Config struct {
	Addr string

	DatabaseDSN string

	Redis RedisConfig

	// JWTSigningKey verifies bearer tokens minted by the identity provider.
	JWTSigningKey string

	Blob BlobConfig

	// PublicListingTTL bounds staleness of the cached public evidence listing.
	PublicListingTTL time.Duration
}

// RedisConfig holds connection settings for the listing cache. An empty URL
// disables Redis; the service then serves listings straight from Postgres.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BlobConfig holds S3-compatible object storage settings for evidence and
// report files.
type BlobConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:        envOr("CUSTODIA_ADDR", ":8080"),
		DatabaseDSN: os.Getenv("CUSTODIA_DATABASE_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("CUSTODIA_REDIS_URL"),
			PoolSize:     envIntOr("CUSTODIA_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("CUSTODIA_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		// Default for development only; override in production.
		JWTSigningKey: envOr("CUSTODIA_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Blob: BlobConfig{
			Bucket:    os.Getenv("CUSTODIA_BLOB_BUCKET"),
			Region:    envOr("CUSTODIA_BLOB_REGION", "us-east-1"),
			Endpoint:  os.Getenv("CUSTODIA_BLOB_ENDPOINT"),
			AccessKey: os.Getenv("CUSTODIA_BLOB_ACCESS_KEY"),
			SecretKey: os.Getenv("CUSTODIA_BLOB_SECRET_KEY"),
		},
		PublicListingTTL: envDurationOr("CUSTODIA_PUBLIC_LISTING_TTL", time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
