package config

import (
	"os"
	"strconv"
	"strings"
)

// Supported values for STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnectRetries     int
	AppName            string
	AutoMigrate        bool
}

// RedisConfig holds settings for the redis issue store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinIOConfig holds object storage settings for MinIO.
// The archive of deleted issues is enabled only when Endpoint is set.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LogConfig controls the process logger.
type LogConfig struct {
	Env      string
	Level    string
	Timezone string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port               string
	StoreBackend       string
	ShutdownTimeoutSec int
	Log                LogConfig
	Database           DatabaseConfig
	Redis              RedisConfig
	MinIO              MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:               getEnv("PORT", "8080"),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		Log: LogConfig{
			Env:      getEnv("APP_ENV", "production"),
			Level:    getEnv("LOG_LEVEL", "info"),
			Timezone: getEnv("TZ", "UTC"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectRetries:     getEnvInt("DB_CONNECT_RETRIES", 5),
			AppName:            getEnv("DB_APP_NAME", "issuetracker"),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// ArchiveEnabled reports whether deleted issues should be copied to object storage.
func (c *AppConfig) ArchiveEnabled() bool {
	return c.MinIO.Endpoint != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
