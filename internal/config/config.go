package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"finance-app-go/pkg/logger"
)

type Config struct {
	HTTPPort string
	Env      string
	DB       DBConfig
	Supabase SupabaseConfig
	LLM      LLMConfig
	Market   MarketConfig
	Gateway  GatewayConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SupabaseConfig struct {
	URL            string
	PublishableKey string
	AuthTimeout    time.Duration
	SkipAuth       bool
	MockUserID     string
	MockUserEmail  string
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
}

type MarketConfig struct {
	BaseURL         string
	APIKey          string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
}

type GatewayConfig struct {
	Port       string
	BackendURL string
	Timeout    time.Duration
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "finance_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Supabase: SupabaseConfig{
			URL:            getEnv("SUPABASE_URL", ""),
			PublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
			AuthTimeout:    getEnvDuration("SUPABASE_AUTH_TIMEOUT", 5*time.Second),
			SkipAuth:       getEnvBool("AUTH_SKIP", false),
			MockUserID:     getEnv("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			MockUserEmail:  getEnv("AUTH_MOCK_USER_EMAIL", ""),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", "gemini"),
			APIKey:   getEnv("LLM_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:    getEnv("LLM_MODEL", "gemini-2.5-flash"),
		},
		Market: MarketConfig{
			BaseURL:         getEnv("MARKET_DATA_BASE_URL", ""),
			APIKey:          getEnv("MARKET_DATA_API_KEY", getEnv("EODHD_API_KEY", "")),
			RequestTimeout:  getEnvDuration("MARKET_DATA_TIMEOUT", 10*time.Second),
			RefreshInterval: getEnvDuration("MARKET_DATA_REFRESH_INTERVAL", time.Minute),
		},
		Gateway: GatewayConfig{
			Port:       getEnv("GATEWAY_PORT", "3000"),
			BackendURL: getEnv("GATEWAY_BACKEND_URL", "http://localhost:8080"),
			Timeout:    getEnvDuration("GATEWAY_TIMEOUT", 30*time.Second),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
