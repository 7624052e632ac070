package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	App         AppConfig
	HRAPI       HRAPIConfig
	ClockWindow ClockWindowConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port             int
	Env              string
	LogLevel         string
	Timezone         string
	AllowedOrigins   []string
	SettingsCacheTTL time.Duration
	TickInterval     time.Duration
}

// HRAPIConfig holds the upstream attendance backend configuration
type HRAPIConfig struct {
	BaseURL       string
	UnitCode      string
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
}

// ClockWindowConfig holds the default punch windows as HH:MM strings.
// Stored settings override them at runtime.
type ClockWindowConfig struct {
	MorningStart   string
	MorningEnd     string
	AfternoonStart string
	AfternoonEnd   string
}

// Load reads the server configuration and validates it
func Load() (*Config, error) {
	config, err := Read()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadClient reads the configuration for tools that never touch the database
func LoadClient() (*Config, error) {
	config, err := Read()
	if err != nil {
		return nil, err
	}

	if err := config.validateRuntime(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Read loads .env and the process environment without validating
func Read() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clockin"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("SETTINGS_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SETTINGS_CACHE_TTL: %w", err)
	}

	tickInterval, err := time.ParseDuration(getEnv("TICK_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}

	config.App = AppConfig{
		Port:             appPort,
		Env:              getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Timezone:         getEnv("TIMEZONE", "Asia/Shanghai"),
		AllowedOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		SettingsCacheTTL: cacheTTL,
		TickInterval:     tickInterval,
	}

	// HR API configuration
	hrTimeout, err := time.ParseDuration(getEnv("HR_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HR_API_TIMEOUT: %w", err)
	}

	hrRetryDelay, err := time.ParseDuration(getEnv("HR_API_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HR_API_RETRY_DELAY: %w", err)
	}

	hrAttempts, err := strconv.ParseUint(getEnv("HR_API_RETRY_ATTEMPTS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid HR_API_RETRY_ATTEMPTS: %w", err)
	}

	config.HRAPI = HRAPIConfig{
		BaseURL:       getEnv("HR_API_BASE_URL", ""),
		UnitCode:      getEnv("HR_API_UNIT_CODE", ""),
		UserAgent:     getEnv("HR_API_USER_AGENT", "clockin-console/1.0"),
		Timeout:       hrTimeout,
		RetryAttempts: uint(hrAttempts),
		RetryDelay:    hrRetryDelay,
	}

	// Clock window defaults
	config.ClockWindow = ClockWindowConfig{
		MorningStart:   getEnv("CLOCK_MORNING_START", "06:00"),
		MorningEnd:     getEnv("CLOCK_MORNING_END", "09:00"),
		AfternoonStart: getEnv("CLOCK_AFTERNOON_START", "13:00"),
		AfternoonEnd:   getEnv("CLOCK_AFTERNOON_END", "17:00"),
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return c.validateRuntime()
}

func (c *Config) validateRuntime() error {
	if c.HRAPI.BaseURL == "" {
		return fmt.Errorf("HR_API_BASE_URL is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.App.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive")
	}
	return nil
}

// Location returns the configured timezone; Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
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

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
