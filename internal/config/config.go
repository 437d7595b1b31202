package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`

	// Deployment identity; the config file is the only per-client artifact.
	CompanyName string `json:"company_name"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Weather
	WeatherBaseURL string `json:"weather_base_url"`

	// Google (Gmail + Calendar)
	GoogleCredentialsFile string `json:"google_credentials_file"`
	GoogleTokenFile       string `json:"google_token_file"`
	CalendarID            string `json:"calendar_id"`
	CalendarTimeZone      string `json:"calendar_time_zone"`

	// External calls
	ToolTimeoutSeconds   int `json:"tool_timeout_seconds"`
	AdapterRetryAttempts int `json:"adapter_retry_attempts"`
}

// ToolTimeout is the uniform bound applied to every tool invocation.
func (c *Config) ToolTimeout() time.Duration {
	return time.Duration(c.ToolTimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		Environment:          DefaultEnvironment,
		LogLevel:             DefaultLogLevel,
		CORSOrigins:          DefaultCORSOrigins,
		APIKeyHeader:         "X-API-Key",
		RateLimitPerMinute:   DefaultRateLimitPerMinute,
		WeatherBaseURL:       DefaultWeatherBaseURL,
		GoogleTokenFile:      DefaultGoogleTokenFile,
		CalendarID:           DefaultCalendarID,
		CalendarTimeZone:     DefaultCalendarTimeZone,
		ToolTimeoutSeconds:   DefaultToolTimeoutSeconds,
		AdapterRetryAttempts: DefaultAdapterRetryAttempts,
	}

	path := getEnv("AGENCY_MCP_CONFIG", "")
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("AGENCY_MCP_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("AGENCY_MCP_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("AGENCY_MCP_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("AGENCY_MCP_COMPANY_NAME", ""); v != "" {
		cfg.CompanyName = v
	}
	if v := getEnv("AGENCY_MCP_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("AGENCY_MCP_ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("AGENCY_MCP_CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := getEnv("AGENCY_MCP_WEATHER_BASE_URL", ""); v != "" {
		cfg.WeatherBaseURL = v
	}
	if v := getEnv("GOOGLE_CREDENTIALS_FILE", ""); v != "" {
		cfg.GoogleCredentialsFile = v
	}
	if v := getEnv("GOOGLE_TOKEN_FILE", ""); v != "" {
		cfg.GoogleTokenFile = v
	}
	if v := getEnv("AGENCY_MCP_CALENDAR_ID", ""); v != "" {
		cfg.CalendarID = v
	}
	if v := getEnv("AGENCY_MCP_CALENDAR_TZ", ""); v != "" {
		cfg.CalendarTimeZone = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("AGENCY_MCP_TOOL_TIMEOUT", ""); v != "" {
		if s, err := strconv.Atoi(v); err == nil {
			cfg.ToolTimeoutSeconds = s
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
