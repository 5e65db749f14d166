package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Report   ReportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// ReportConfig holds report listing and lifecycle settings
type ReportConfig struct {
	DefaultPageLimit  int
	MaxPageLimit      int
	StaleAfter        time.Duration
	ReconcileInterval time.Duration
	AutoMigrate       bool
}

// Load reads configuration from the environment, after loading .env when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	config := &Config{}
	var err error

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll_reports"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Report configuration
	defaultLimit, err := strconv.Atoi(getEnv("REPORT_DEFAULT_PAGE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_DEFAULT_PAGE_LIMIT: %w", err)
	}
	maxLimit, err := strconv.Atoi(getEnv("REPORT_MAX_PAGE_LIMIT", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_MAX_PAGE_LIMIT: %w", err)
	}
	staleAfter, err := time.ParseDuration(getEnv("REPORT_STALE_AFTER", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_STALE_AFTER: %w", err)
	}
	reconcileInterval, err := time.ParseDuration(getEnv("REPORT_RECONCILE_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_RECONCILE_INTERVAL: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	config.Report = ReportConfig{
		DefaultPageLimit:  defaultLimit,
		MaxPageLimit:      maxLimit,
		StaleAfter:        staleAfter,
		ReconcileInterval: reconcileInterval,
		AutoMigrate:       autoMigrate,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Report.DefaultPageLimit <= 0 || c.Report.MaxPageLimit < c.Report.DefaultPageLimit {
		return fmt.Errorf("REPORT_DEFAULT_PAGE_LIMIT must be positive and not above REPORT_MAX_PAGE_LIMIT")
	}
	if c.Report.StaleAfter <= 0 || c.Report.ReconcileInterval <= 0 {
		return fmt.Errorf("REPORT_STALE_AFTER and REPORT_RECONCILE_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
