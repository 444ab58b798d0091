package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Advisor   AdvisorConfig   `mapstructure:",squash"`
	AMQP      AMQPConfig      `mapstructure:",squash"`
	Cache     CacheConfig     `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"DATABASE_DRIVER"`
	URL             string `mapstructure:"DATABASE_URL"`
	Host            string `mapstructure:"DATABASE_HOST"`
	Port            string `mapstructure:"DATABASE_PORT"`
	Name            string `mapstructure:"DATABASE_NAME"`
	User            string `mapstructure:"DATABASE_USER"`
	Password        string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
	EnsureSchema    bool   `mapstructure:"DATABASE_ENSURE_SCHEMA"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	OverdueSpec     string `mapstructure:"SCHEDULER_OVERDUE_SPEC"`
	BudgetAlertSpec string `mapstructure:"SCHEDULER_BUDGET_ALERT_SPEC"`
	Timezone        string `mapstructure:"SCHEDULER_TIMEZONE"`
	Workers         int    `mapstructure:"SCHEDULER_WORKERS"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	DefaultAlertThreshold    string `mapstructure:"DEFAULT_ALERT_THRESHOLD"`
	DefaultMonthlyIncome     string `mapstructure:"DEFAULT_MONTHLY_INCOME"`
	RecentDisbursementsLimit int    `mapstructure:"RECENT_DISBURSEMENTS_LIMIT"`
	UpcomingRepaymentsLimit  int    `mapstructure:"UPCOMING_REPAYMENTS_LIMIT"`
}

type AdvisorConfig struct {
	APIKey  string `mapstructure:"OPENAI_API_KEY"`
	BaseURL string `mapstructure:"OPENAI_BASE_URL"`
	Model   string `mapstructure:"OPENAI_MODEL"`
	Timeout string `mapstructure:"OPENAI_TIMEOUT"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"AMQP_URL"`
	Exchange string `mapstructure:"AMQP_EXCHANGE"`
	Queue    string `mapstructure:"AMQP_QUEUE"`
}

type CacheConfig struct {
	StatsTTL    string `mapstructure:"CACHE_STATS_TTL"`
	ScheduleTTL string `mapstructure:"CACHE_SCHEDULE_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":                 "8080",
	"SERVER_HOST":                 "0.0.0.0",
	"ENV":                         "development",
	"SERVER_READ_TIMEOUT":         "15s",
	"SERVER_WRITE_TIMEOUT":        "30s",
	"DATABASE_DRIVER":             "postgres",
	"DATABASE_URL":                "",
	"DATABASE_HOST":               "localhost",
	"DATABASE_PORT":               "5432",
	"DATABASE_NAME":               "helbflow",
	"DATABASE_USER":               "postgres",
	"DATABASE_PASSWORD":           "",
	"DATABASE_SSLMODE":            "disable",
	"DATABASE_MAX_OPEN_CONNS":     25,
	"DATABASE_MAX_IDLE_CONNS":     5,
	"DATABASE_CONN_MAX_LIFETIME":  "5m",
	"DATABASE_ENSURE_SCHEMA":      false,
	"REDIS_URL":                   "",
	"REDIS_HOST":                  "",
	"REDIS_PORT":                  "6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"SCHEDULER_OVERDUE_SPEC":      "0 0 0 * * *",
	"SCHEDULER_BUDGET_ALERT_SPEC": "0 0 8 * * *",
	"SCHEDULER_TIMEZONE":          "Africa/Nairobi",
	"SCHEDULER_WORKERS":           4,
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"DEFAULT_ALERT_THRESHOLD":     "80",
	"DEFAULT_MONTHLY_INCOME":      "15000",
	"RECENT_DISBURSEMENTS_LIMIT":  10,
	"UPCOMING_REPAYMENTS_LIMIT":   10,
	"OPENAI_API_KEY":              "",
	"OPENAI_BASE_URL":             "",
	"OPENAI_MODEL":                "gpt-5",
	"OPENAI_TIMEOUT":              "30s",
	"AMQP_URL":                    "",
	"AMQP_EXCHANGE":               "helbflow",
	"AMQP_QUEUE":                  "helbflow.alerts",
	"CACHE_STATS_TTL":             "1m",
	"CACHE_SCHEDULE_TTL":          "24h",
	"HEALTH_CHECK_TIMEOUT":        "5s",
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.URL == "" && c.Database.Host == "" {
			return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
		}
	case "sqlite":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}

	threshold, err := decimal.NewFromString(c.Business.DefaultAlertThreshold)
	if err != nil {
		return fmt.Errorf("DEFAULT_ALERT_THRESHOLD must be a valid decimal: %w", err)
	}
	if threshold.IsNegative() || threshold.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("DEFAULT_ALERT_THRESHOLD must be between 0 and 100")
	}

	if _, err := decimal.NewFromString(c.Business.DefaultMonthlyIncome); err != nil {
		return fmt.Errorf("DEFAULT_MONTHLY_INCOME must be a valid decimal: %w", err)
	}

	if c.Business.RecentDisbursementsLimit <= 0 {
		return fmt.Errorf("RECENT_DISBURSEMENTS_LIMIT must be greater than 0")
	}

	if c.Business.UpcomingRepaymentsLimit <= 0 {
		return fmt.Errorf("UPCOMING_REPAYMENTS_LIMIT must be greater than 0")
	}

	if c.Scheduler.Workers <= 0 {
		return fmt.Errorf("SCHEDULER_WORKERS must be greater than 0")
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for name, spec := range map[string]string{
		"SCHEDULER_OVERDUE_SPEC":      c.Scheduler.OverdueSpec,
		"SCHEDULER_BUDGET_ALERT_SPEC": c.Scheduler.BudgetAlertSpec,
	} {
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("%s must be a valid cron spec: %w", name, err)
		}
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	for name, value := range map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"OPENAI_TIMEOUT":             c.Advisor.Timeout,
		"CACHE_STATS_TTL":            c.Cache.StatsTTL,
		"CACHE_SCHEDULE_TTL":         c.Cache.ScheduleTTL,
		"HEALTH_CHECK_TIMEOUT":       c.Health.Timeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", name, err)
		}
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN returns the data source name for the configured driver
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"dbname=" + d.Name,
		"user=" + d.User,
		"sslmode=" + d.SSLMode,
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	return strings.Join(parts, " ")
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.URL != "" || c.Redis.Host != ""
}

// AMQPEnabled reports whether a message broker is configured
func (c *Config) AMQPEnabled() bool {
	return c.AMQP.URL != ""
}

// AdvisorEnabled reports whether an LLM API key is configured
func (c *Config) AdvisorEnabled() bool {
	return c.Advisor.APIKey != ""
}

// GetDefaultAlertThreshold returns the default budget alert threshold as decimal
func (c *Config) GetDefaultAlertThreshold() decimal.Decimal {
	threshold, _ := decimal.NewFromString(c.Business.DefaultAlertThreshold)
	return threshold
}

// GetDefaultMonthlyIncome returns the allowance assumed for budget analysis
func (c *Config) GetDefaultMonthlyIncome() decimal.Decimal {
	income, _ := decimal.NewFromString(c.Business.DefaultMonthlyIncome)
	return income
}

// GetLocation returns the scheduler timezone
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

// GetConnMaxLifetime returns the database connection lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

// GetAdvisorTimeout returns the advisor request timeout as duration
func (c *Config) GetAdvisorTimeout() time.Duration {
	return mustDuration(c.Advisor.Timeout)
}

// GetStatsTTL returns how long dashboard statistics stay cached
func (c *Config) GetStatsTTL() time.Duration {
	return mustDuration(c.Cache.StatsTTL)
}

// GetScheduleTTL returns how long generated schedules stay cached
func (c *Config) GetScheduleTTL() time.Duration {
	return mustDuration(c.Cache.ScheduleTTL)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	return mustDuration(c.Health.Timeout)
}

func mustDuration(value string) time.Duration {
	duration, _ := time.ParseDuration(value)
	return duration
}
