package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file configuration.
const (
	EnvConfigPath  = "CONFIG_PATH"
	EnvAPIKey      = "COVALENT_API_KEY"
	EnvPort        = "PORT"
	EnvFrontendURL = "FRONTEND_URL"
	EnvLogLevel    = "LOG_LEVEL"

	DefaultConfigPath = "config/config.yaml"
)

// ErrMissingAPIKey is returned when no indexer API key is configured.
var ErrMissingAPIKey = errors.New("COVALENT_API_KEY is required")

// Config holds the overall configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Indexer   IndexerConfig   `yaml:"indexer"`
	Chains    ChainsConfig    `yaml:"chains"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Swagger   SwaggerConfig   `yaml:"swagger"`
	Debug     DebugConfig     `yaml:"debug"`
}

// ServerConfig holds the server-specific configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// IndexerConfig holds the configuration for the Covalent client.
type IndexerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	MaxConnsPerHost      int    `yaml:"maxConnsPerHost"`
}

// ChainsConfig selects the supported chains. An empty list enables all known chains.
type ChainsConfig struct {
	Enabled []uint64 `yaml:"enabled"`
}

// CORSConfig holds the browser cross-origin settings.
type CORSConfig struct {
	AllowedOrigin    string `yaml:"allowedOrigin"`
	AllowCredentials *bool  `yaml:"allowCredentials"`
}

// RateLimitConfig holds the per-IP limit for /api routes. MaxRequests <= 0 disables it.
type RateLimitConfig struct {
	WindowMinutes int `yaml:"windowMinutes"`
	MaxRequests   int `yaml:"maxRequests"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DebugConfig toggles debug endpoints.
type DebugConfig struct {
	PprofEnabled bool `yaml:"pprofEnabled"`
}

// Addr returns the listen address for net/http.
func (s ServerConfig) Addr() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// RequestTimeout returns the per-request upstream timeout.
func (i IndexerConfig) RequestTimeout() time.Duration {
	return time.Duration(i.RequestTimeoutMillis) * time.Millisecond
}

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMinutes) * time.Minute
}

// GetEnv returns the value of key or fallback if it is unset or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// LoadConfig loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result. A missing file is not an
// error: the service can be configured from the environment alone.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults and environment", path)
	default:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		logrus.Errorf("Invalid configuration: %v", err)
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := GetEnv(EnvAPIKey, ""); v != "" {
		cfg.Indexer.APIKey = v
	}
	if v := GetEnv(EnvPort, ""); v != "" {
		cfg.Server.Port = v
		logrus.Infof("Server.Port overridden from %s: %s", EnvPort, v)
	}
	if v := GetEnv(EnvFrontendURL, ""); v != "" {
		cfg.CORS.AllowedOrigin = v
		logrus.Infof("CORS.AllowedOrigin overridden from %s: %s", EnvFrontendURL, v)
	}
	if v := GetEnv(EnvLogLevel, ""); v != "" {
		cfg.Logging.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3001"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		// must exceed the upstream timeout
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Indexer.BaseURL == "" {
		cfg.Indexer.BaseURL = "https://api.covalenthq.com/v1"
		logrus.Infof("Indexer.BaseURL not set, defaulting to %s", cfg.Indexer.BaseURL)
	}
	if cfg.Indexer.RequestTimeoutMillis == 0 {
		cfg.Indexer.RequestTimeoutMillis = 15000
		logrus.Infof("Indexer.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Indexer.RequestTimeoutMillis)
	}
	if cfg.Indexer.MaxConnsPerHost == 0 {
		cfg.Indexer.MaxConnsPerHost = 64
	}

	if cfg.CORS.AllowedOrigin == "" {
		cfg.CORS.AllowedOrigin = "http://localhost:5173"
		logrus.Infof("CORS.AllowedOrigin not set, defaulting to %s", cfg.CORS.AllowedOrigin)
	}
	if cfg.CORS.AllowCredentials == nil {
		allow := true
		cfg.CORS.AllowCredentials = &allow
	}

	if cfg.RateLimit.WindowMinutes == 0 {
		cfg.RateLimit.WindowMinutes = 15
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 100
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Indexer.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if !strings.Contains(c.Server.Port, ":") {
		if _, err := strconv.Atoi(c.Server.Port); err != nil {
			return fmt.Errorf("invalid server port %q", c.Server.Port)
		}
	}
	if c.RateLimit.WindowMinutes < 0 {
		return fmt.Errorf("rateLimit.windowMinutes must not be negative, got %d", c.RateLimit.WindowMinutes)
	}
	return nil
}
