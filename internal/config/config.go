package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// rate limits
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
	OTPRateLimitAllowedPerMin   int `toml:"otp_rate_limit_allowed_per_min"`

	// activity
	ReferenceTimezone                string `toml:"reference_timezone"`
	FrequencyBuckets                 int    `toml:"frequency_buckets"`
	ActivityCacheTTLSeconds          int    `toml:"activity_cache_ttl_seconds"`
	CheckinNotificationWindowSeconds int    `toml:"checkin_notification_window_seconds"`

	// payments
	UPIPayeeFallbackName string `toml:"upi_payee_fallback_name"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in %s", env, path)
	}

	cfg.applyDefaults()
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ReferenceTimezone == "" {
		c.ReferenceTimezone = "UTC"
	}
	if c.FrequencyBuckets <= 0 {
		c.FrequencyBuckets = 12
	}
	if c.ActivityCacheTTLSeconds <= 0 {
		c.ActivityCacheTTLSeconds = 60
	}
	if c.CheckinNotificationWindowSeconds <= 0 {
		c.CheckinNotificationWindowSeconds = 300
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.OTPRateLimitAllowedPerMin <= 0 {
		c.OTPRateLimitAllowedPerMin = 3
	}
	if c.UPIPayeeFallbackName == "" {
		c.UPIPayeeFallbackName = "Gym"
	}
}

// Location resolves the zone calendar days are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("load reference timezone %q: %w", c.ReferenceTimezone, err)
	}
	return loc, nil
}

func (c *Config) ActivityCacheTTL() time.Duration {
	return time.Duration(c.ActivityCacheTTLSeconds) * time.Second
}

func (c *Config) CheckinNotificationWindow() time.Duration {
	return time.Duration(c.CheckinNotificationWindowSeconds) * time.Second
}
