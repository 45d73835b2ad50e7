package config

import (
	"time"

	"wealth-backoffice/internal/marketdata"
	"wealth-backoffice/pkg/config"
)

// Comparison holds comparison engine configuration.
type Comparison struct {
	TolerancePercent float64 `mapstructure:"tolerance_percent"`
}

// HealthMonitor holds health monitor configuration.
type HealthMonitor struct {
	CheckInterval        time.Duration `mapstructure:"check_interval"`
	MaxConsecutiveErrors int           `mapstructure:"max_consecutive_errors"`
	AlertCooldown        time.Duration `mapstructure:"alert_cooldown"`
	DBReconnectAttempts  int           `mapstructure:"db_reconnect_attempts"`
	DBReconnectDelay     time.Duration `mapstructure:"db_reconnect_delay"`
	AlertRecipients      []string      `mapstructure:"alert_recipients"`
	CanarySymbol         string        `mapstructure:"canary_symbol"`
	MarketDataTimeout    time.Duration `mapstructure:"market_data_timeout"`
}

// MarketData holds quote provider configuration.
type MarketData struct {
	AlphaVantage   marketdata.AlphaVantageConfig `mapstructure:"alpha_vantage"`
	Yahoo          marketdata.YahooConfig        `mapstructure:"yahoo"`
	CacheTTL       time.Duration                 `mapstructure:"cache_ttl"`
	RequestTimeout time.Duration                 `mapstructure:"request_timeout"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the optional Telegram ops channel.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Auth holds session configuration inspected by the auth health probe.
type Auth struct {
	SessionSecret string `mapstructure:"session_secret"`
}

// Jobs holds cron expressions for the background jobs.
type Jobs struct {
	PriceRefreshCron string `mapstructure:"price_refresh_cron"`
	PlanRolloverCron string `mapstructure:"plan_rollover_cron"`
}

// Config holds the full configuration for the server.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	SMTP       config.SMTP     `mapstructure:"smtp"`
	API        config.API      `mapstructure:"api"`
	Auth       Auth            `mapstructure:"auth"`
	Comparison Comparison      `mapstructure:"comparison"`
	Health     HealthMonitor   `mapstructure:"health"`
	MarketData MarketData      `mapstructure:"market_data"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Telegram   Telegram        `mapstructure:"telegram"`
	Jobs       Jobs            `mapstructure:"jobs"`
}

// Load loads the server configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
