package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// StorageDriver selects the kv backend: memory, file, postgres, redis.
	StorageDriver string
	DataDir       string
	DatabaseURL   string
	RedisAddr     string

	JWTSecret string

	MetricsEnabled bool
	MetricsToken   string
}

func Load() Config {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	return Config{
		Port:           getenv("PORT", "8080"),
		StorageDriver:  getenv("STORAGE_DRIVER", "file"),
		DataDir:        getenv("DATA_DIR", "./data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:      getenv("JWT_SECRET", "dev-secret"),
		MetricsEnabled: os.Getenv("METRICS_ENABLED") == "true",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
