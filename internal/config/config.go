package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/wekeepgrowing/payment-recovery/pkg/config"
)

// ServiceName is the config file name and the environment variable prefix (PAYMENT_*).
const ServiceName = "payment"

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Stripe    StripeConfig    `mapstructure:"stripe"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// Defaults returns the value used for every key the config file and environment leave unset.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":        "payment-recovery",
		"service.environment": "dev",
		"service.version":     "0.1.0",
		"service.platform":    PlatformMobile,

		"server.http.host": "0.0.0.0",
		"server.http.port": 8080,
		"server.grpc.host": "0.0.0.0",
		"server.grpc.port": 9090,

		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "payments",
		"database.user":               "postgres",
		"database.password":           "",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"database.auto_migrate":       true,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.development": false,

		"jwt.secret": "",

		"stripe.secret_key":     "",
		"stripe.webhook_secret": "",
		"stripe.api_url":        "",

		"retry.max_attempts": 3,
		"retry.timeout":      "10s",

		"analytics.driver":          AnalyticsDriverLog,
		"analytics.channel":         "analytics.payment",
		"analytics.publish_timeout": "2s",

		"redis.url":      "redis://localhost:6379/0",
		"redis.password": "",
	}
}

// LoadConfig reads configs/$APP_ENV/payment.yaml (or $CONFIG_PATH) with PAYMENT_* overrides.
func LoadConfig() (*Config, error) {
	loaded, err := pkgconfig.Load(ServiceName, Defaults())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := loaded.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the retry pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be positive, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Timeout <= 0 {
		return fmt.Errorf("retry.timeout must be positive, got %s", c.Retry.Timeout)
	}
	switch c.Service.Platform {
	case PlatformMobile, PlatformWeb:
	default:
		return fmt.Errorf("unknown service.platform %q", c.Service.Platform)
	}
	switch c.Analytics.Driver {
	case AnalyticsDriverRedis, AnalyticsDriverLog, AnalyticsDriverNone:
	default:
		return fmt.Errorf("unknown analytics.driver %q", c.Analytics.Driver)
	}
	return nil
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	FilePath    string `mapstructure:"file_path"`
	Development bool   `mapstructure:"development"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

const (
	AnalyticsDriverRedis = "redis"
	AnalyticsDriverLog   = "log"
	AnalyticsDriverNone  = "none"
)

type AnalyticsConfig struct {
	Driver         string        `mapstructure:"driver"`
	Channel        string        `mapstructure:"channel"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
}
