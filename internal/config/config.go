package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Upstream article search API
	SearchEndpoint string        `json:"search_endpoint" validate:"required,url"`
	SearchAPIKey   string        `json:"-" validate:"required"`
	DefaultQuery   string        `json:"default_query"`
	ImageBaseURL   string        `json:"image_base_url" validate:"required,url"`
	FetchTimeout   time.Duration `json:"fetch_timeout"`

	// Local store
	StoreBackend string `json:"store_backend" validate:"oneof=memory file redis"`
	RedisURL     string `json:"redis_url"`
	RedisPrefix  string `json:"redis_prefix"`
	SnapshotPath string `json:"snapshot_path"`
	SettingsPath string `json:"settings_path"`
	CacheEnabled bool   `json:"cache_enabled"`

	// Connectivity probe
	ProbeURL      string        `json:"probe_url" validate:"required,url"`
	ProbeInterval time.Duration `json:"probe_interval"`
	ProbeTimeout  time.Duration `json:"probe_timeout"`

	// CloudFlare R2 snapshot mirror (disabled when endpoint is empty)
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Upstream article search API
		SearchEndpoint: getEnv("SEARCH_ENDPOINT", "https://api.nytimes.com/svc/search/v2/articlesearch.json"),
		SearchAPIKey:   getEnv("SEARCH_API_KEY", ""),
		DefaultQuery:   getEnv("SEARCH_DEFAULT_QUERY", ""),
		ImageBaseURL:   getEnv("IMAGE_BASE_URL", "https://www.nytimes.com/"),
		FetchTimeout:   getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second),

		// Local store
		StoreBackend: getEnv("STORE_BACKEND", "file"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "newsdesk:"),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "./data/articles.json"),
		SettingsPath: getEnv("SETTINGS_PATH", "./data/settings.json"),
		CacheEnabled: getEnvAsBool("CACHE_ENABLED", true),

		// Connectivity probe
		ProbeURL:      getEnv("PROBE_URL", "https://www.google.com/generate_204"),
		ProbeInterval: getEnvAsDuration("PROBE_INTERVAL", 15*time.Second),
		ProbeTimeout:  getEnvAsDuration("PROBE_TIMEOUT", 5*time.Second),

		// CloudFlare R2 snapshot mirror
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "newsdesk"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("config field %s failed on %q", errs[0].Field(), errs[0].Tag())
		}
		return err
	}
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
