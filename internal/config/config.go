package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	APIBaseURL      string   `mapstructure:"API_URL"`
	DefaultClientID string   `mapstructure:"DEFAULT_CLIENT_ID"`
	APITimeoutSecs  int      `mapstructure:"API_TIMEOUT_SECONDS"`
	FastTimeoutSecs int      `mapstructure:"API_FAST_TIMEOUT_SECONDS"`
	CacheTTLSecs    int      `mapstructure:"CACHE_TTL_SECONDS"`
	LoginURL        string   `mapstructure:"LOGIN_URL"`
	CredentialsFile string   `mapstructure:"CREDENTIALS_FILE"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("API_URL", "http://localhost:3001/api/v1")
	v.SetDefault("DEFAULT_CLIENT_ID", "clnt_default")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("API_FAST_TIMEOUT_SECONDS", 10)
	v.SetDefault("CACHE_TTL_SECONDS", 30)
	v.SetDefault("LOGIN_URL", "/login")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("API_URL")
	v.BindEnv("DEFAULT_CLIENT_ID")
	v.BindEnv("API_TIMEOUT_SECONDS")
	v.BindEnv("API_FAST_TIMEOUT_SECONDS")
	v.BindEnv("CACHE_TTL_SECONDS")
	v.BindEnv("LOGIN_URL")
	v.BindEnv("CREDENTIALS_FILE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: running in development mode; requests without a session fall back to DEFAULT_CLIENT_ID")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. The backend base URL
// must be set, timeouts must be positive, and the default tenant fallback must
// never be empty: every outgoing request carries an x-client-id header.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.DefaultClientID == "" {
		return fmt.Errorf("DEFAULT_CLIENT_ID must not be empty; anonymous requests carry it as x-client-id")
	}
	if c.APITimeoutSecs <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive, got %d", c.APITimeoutSecs)
	}
	if c.FastTimeoutSecs <= 0 {
		return fmt.Errorf("API_FAST_TIMEOUT_SECONDS must be positive, got %d", c.FastTimeoutSecs)
	}
	if c.FastTimeoutSecs > c.APITimeoutSecs {
		return fmt.Errorf("API_FAST_TIMEOUT_SECONDS (%d) must not exceed API_TIMEOUT_SECONDS (%d)", c.FastTimeoutSecs, c.APITimeoutSecs)
	}
	if c.CacheTTLSecs < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must not be negative, got %d", c.CacheTTLSecs)
	}
	return nil
}
