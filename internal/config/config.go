package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings for the analysis archive.
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
	ConnectTimeoutSec  int
}

// MinIOConfig holds object storage settings for archived uploads.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LLMConfig holds the chat-completion provider settings.
// The API key is only read here; clients receive it through their constructor.
type LLMConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	Temperature      float64
	MaxTokens        int
	SectionMaxTokens int
	TimeoutSec       int
}

// AnalyzerConfig tunes extraction, sectioning and the pacing of section calls.
type AnalyzerConfig struct {
	MaxInputTokens     int
	MinTextChars       int
	MinPDFChars        int
	SectionIntervalMS  int
	SectionConcurrency int
	DefaultMode        string
}

// SectionInterval is the minimum spacing between two section calls.
func (a AnalyzerConfig) SectionInterval() time.Duration {
	return time.Duration(a.SectionIntervalMS) * time.Millisecond
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	Timezone       string
	LogLevel       string
	MaxUploadMB    int
	ArchiveEnabled bool
	LLM            LLMConfig
	Analyzer       AnalyzerConfig
	Database       DatabaseConfig
	MinIO          MinIOConfig
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 10),
		ArchiveEnabled: getEnvBool("ARCHIVE_ENABLED", false),
		LLM: LLMConfig{
			APIKey:           getEnv("OPENAI_API_KEY", ""),
			BaseURL:          getEnv("OPENAI_BASE_URL", ""),
			Model:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature:      getEnvFloat("OPENAI_TEMPERATURE", 0.3),
			MaxTokens:        getEnvInt("OPENAI_MAX_TOKENS", 4000),
			SectionMaxTokens: getEnvInt("OPENAI_SECTION_MAX_TOKENS", 1500),
			TimeoutSec:       getEnvInt("OPENAI_TIMEOUT_SEC", 120),
		},
		Analyzer: AnalyzerConfig{
			MaxInputTokens:     getEnvInt("ANALYZE_MAX_INPUT_TOKENS", 25000),
			MinTextChars:       getEnvInt("ANALYZE_MIN_TEXT_CHARS", 20),
			MinPDFChars:        getEnvInt("ANALYZE_MIN_PDF_CHARS", 50),
			SectionIntervalMS:  getEnvInt("ANALYZE_SECTION_INTERVAL_MS", 1000),
			SectionConcurrency: getEnvInt("ANALYZE_SECTION_CONCURRENCY", 1),
			DefaultMode:        getEnv("ANALYZE_DEFAULT_MODE", "report"),
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
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "quotes"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
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

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
