package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string

	Logger LoggerConfig

	RedisHost string
	RedisPort string

	StreamName    string
	ConsumerGroup string

	SiteReadingsPrefix string

	IngestAddr    string
	ProcessorAddr string

	ConsumerBatchSize int
	ConsumerBlock     time.Duration
	ConsumerBackoff   time.Duration
}

type LoggerConfig struct {
	Level string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:    getenv("APP_SERVICE", "gridstream"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),
		Logger: LoggerConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
		RedisHost:          getenv("REDIS_HOST", "localhost"),
		RedisPort:          getenv("REDIS_PORT", "6379"),
		StreamName:         getenv("STREAM_NAME", "energy_readings"),
		ConsumerGroup:      getenv("CONSUMER_GROUP", "processing_group"),
		SiteReadingsPrefix: getenv("SITE_READINGS_PREFIX", "site_readings"),
		IngestAddr:         getenv("INGEST_ADDR", ":8000"),
		ProcessorAddr:      getenv("PROCESSOR_ADDR", ":8001"),
		ConsumerBatchSize:  getenvInt("CONSUMER_BATCH_SIZE", 10),
		ConsumerBlock:      getenvMillis("CONSUMER_BLOCK_MS", 5*time.Second),
		ConsumerBackoff:    getenvMillis("CONSUMER_BACKOFF_MS", 5*time.Second),
	}
}

// RedisAddr returns the host:port pair for the backing Redis.
func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvMillis(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Millisecond
}
