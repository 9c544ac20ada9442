package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Market string

	MaxResultsPerPlatform int
	RequestTimeoutSec     int
	MaxRetries            int
	DelayBetweenMs        int
	MaxConcurrency        int

	StoreDriver string // "sqlite" or "postgres"
	SQLitePath  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	APIAddr      string
	ExportDir    string
	LogFilePath  string
	SampleDataOK bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Market: getEnv("MARKET", "id"),

		MaxResultsPerPlatform: getEnvInt("MAX_RESULTS_PER_PLATFORM", 50),
		RequestTimeoutSec:     getEnvInt("REQUEST_TIMEOUT", 30),
		MaxRetries:            getEnvInt("MAX_RETRIES", 3),
		DelayBetweenMs:        getEnvInt("DELAY_BETWEEN_MS", 1000),
		MaxConcurrency:        getEnvInt("MAX_CONCURRENCY", 3),

		StoreDriver: getEnv("STORE_DRIVER", "sqlite"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/search_history.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "marketscope"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		APIAddr:      getEnv("API_ADDR", ":8080"),
		ExportDir:    getEnv("EXPORT_DIR", "./exports"),
		LogFilePath:  getEnv("LOG_FILE", ""),
		SampleDataOK: getEnvBool("SAMPLE_DATA_FALLBACK", true),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
