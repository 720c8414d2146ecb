package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"port"`
	GinMode       string `mapstructure:"gin_mode"`
	AppEnv        string `mapstructure:"app_env"`
	FrontendURL   string `mapstructure:"frontend_url"`
	PublicBaseURL string `mapstructure:"public_base_url"`

	// TrustedProxyList is a comma-separated list of proxy IPs or CIDRs whose
	// X-Forwarded-* headers are honoured.
	TrustedProxyList string `mapstructure:"trusted_proxies"`

	// MaxDays caps the trip length accepted by the HTTP API.
	MaxDays int           `mapstructure:"max_days"`
	Session SessionConfig `mapstructure:",squash"`
}

type SessionConfig struct {
	TTL     time.Duration `mapstructure:"session_ttl"`
	Cleanup time.Duration `mapstructure:"session_cleanup"`
}

var defaults = map[string]any{
	"port":            "8080",
	"gin_mode":        "",
	"app_env":         "development",
	"frontend_url":    "",
	"public_base_url": "",
	"trusted_proxies": "",
	"max_days":        60,
	"session_ttl":     2 * time.Hour,
	"session_cleanup": 10 * time.Minute,
}

// Load reads configuration from the environment (PORT, GIN_MODE, APP_ENV,
// FRONTEND_URL, PUBLIC_BASE_URL, TRUSTED_PROXIES, MAX_DAYS, SESSION_TTL,
// SESSION_CLEANUP).
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Session.TTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.MaxDays <= 0 {
		return Config{}, fmt.Errorf("MAX_DAYS must be positive, got %d", cfg.MaxDays)
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "" || c.AppEnv == "development"
}

func (c Config) TrustedProxies() []string {
	return splitList(c.TrustedProxyList)
}

// AllowedOrigins returns the CORS origins: local dev servers plus any
// comma-separated FRONTEND_URL entries.
func (c Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	return append(origins, splitList(c.FrontendURL)...)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
