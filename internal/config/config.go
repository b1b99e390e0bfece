package config

import (
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
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
	Reminder  ReminderConfig  `mapstructure:",squash"`
	Channel   ChannelConfig   `mapstructure:",squash"`
	Backlog   BacklogConfig   `mapstructure:",squash"`
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
	URL             string `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
	AutoMigrate     bool   `mapstructure:"DATABASE_AUTO_MIGRATE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	ReminderCron string `mapstructure:"SCHEDULER_REMINDER_CRON"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// BusinessConfig holds the late-payment correction policy.
type BusinessConfig struct {
	LateFeeRate          string `mapstructure:"LATE_FEE_RATE"`
	MonthlyInterestRate  string `mapstructure:"MONTHLY_INTEREST_RATE"`
	InterestDaysPerMonth int    `mapstructure:"INTEREST_DAYS_PER_MONTH"`
	DueSoonDays          int    `mapstructure:"DUE_SOON_DAYS"`
}

type ReminderConfig struct {
	CountryCode string `mapstructure:"REMINDER_COUNTRY_CODE"`
	DaysAhead   int    `mapstructure:"REMINDER_DAYS_AHEAD"`
	LockTTL     string `mapstructure:"REMINDER_LOCK_TTL"`
	Dedup       bool   `mapstructure:"REMINDER_DEDUP"`
}

type ChannelConfig struct {
	Driver       string `mapstructure:"CHANNEL_DRIVER"`
	GatewayURL   string `mapstructure:"CHANNEL_GATEWAY_URL"`
	GatewayToken string `mapstructure:"CHANNEL_GATEWAY_TOKEN"`
	Timeout      string `mapstructure:"CHANNEL_TIMEOUT"`
	Pacing       string `mapstructure:"CHANNEL_PACING"`
}

type BacklogConfig struct {
	ResponsibleUser string `mapstructure:"BACKLOG_RESPONSIBLE_USER"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

const (
	ChannelDriverPrint   = "print"
	ChannelDriverGateway = "gateway"
	ChannelDriverWALink  = "walink"
)

var defaults = map[string]interface{}{
	"SERVER_PORT":                "8080",
	"SERVER_HOST":                "0.0.0.0",
	"ENV":                        "development",
	"SERVER_READ_TIMEOUT":        "15s",
	"SERVER_WRITE_TIMEOUT":       "15m",
	"DATABASE_URL":               "",
	"DATABASE_MAX_OPEN_CONNS":    10,
	"DATABASE_MAX_IDLE_CONNS":    5,
	"DATABASE_CONN_MAX_LIFETIME": "30m",
	"DATABASE_AUTO_MIGRATE":      true,
	"REDIS_HOST":                 "localhost",
	"REDIS_PORT":                 "6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"SCHEDULER_REMINDER_CRON":    "0 0 9 * * *",
	"SCHEDULER_TIMEZONE":         "America/Sao_Paulo",
	"LOG_LEVEL":                  "info",
	"LOG_FORMAT":                 "json",
	"LATE_FEE_RATE":              "0.05",
	"MONTHLY_INTEREST_RATE":      "0.03",
	"INTEREST_DAYS_PER_MONTH":    30,
	"DUE_SOON_DAYS":              3,
	"REMINDER_COUNTRY_CODE":      "55",
	"REMINDER_DAYS_AHEAD":        3,
	"REMINDER_LOCK_TTL":          "30m",
	"REMINDER_DEDUP":             true,
	"CHANNEL_DRIVER":             ChannelDriverPrint,
	"CHANNEL_GATEWAY_URL":        "",
	"CHANNEL_GATEWAY_TOKEN":      "",
	"CHANNEL_TIMEOUT":            "30s",
	"CHANNEL_PACING":             "5s",
	"BACKLOG_RESPONSIBLE_USER":   defaultResponsibleUser(),
	"HEALTH_CHECK_TIMEOUT":       "5s",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

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

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	for key, value := range map[string]string{
		"LATE_FEE_RATE":         c.Business.LateFeeRate,
		"MONTHLY_INTEREST_RATE": c.Business.MonthlyInterestRate,
	} {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", key, err)
		}
		if rate.IsNegative() {
			return fmt.Errorf("%s must not be negative", key)
		}
	}

	if c.Business.InterestDaysPerMonth <= 0 {
		return fmt.Errorf("INTEREST_DAYS_PER_MONTH must be greater than 0")
	}

	if c.Business.DueSoonDays < 0 {
		return fmt.Errorf("DUE_SOON_DAYS must not be negative")
	}

	if c.Reminder.DaysAhead < 0 {
		return fmt.Errorf("REMINDER_DAYS_AHEAD must not be negative")
	}

	for key, value := range map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"REMINDER_LOCK_TTL":          c.Reminder.LockTTL,
		"CHANNEL_TIMEOUT":            c.Channel.Timeout,
		"CHANNEL_PACING":             c.Channel.Pacing,
		"HEALTH_CHECK_TIMEOUT":       c.Health.Timeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Scheduler.ReminderCron); err != nil {
		return fmt.Errorf("SCHEDULER_REMINDER_CRON must be a valid cron spec: %w", err)
	}

	switch c.Channel.Driver {
	case ChannelDriverPrint, ChannelDriverWALink:
	case ChannelDriverGateway:
		if c.Channel.GatewayURL == "" {
			return fmt.Errorf("CHANNEL_GATEWAY_URL is required for the gateway driver")
		}
	default:
		return fmt.Errorf("CHANNEL_DRIVER must be one of print, gateway, walink")
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

// GetLateFeeRate returns the one-time late fee rate as decimal
func (c *Config) GetLateFeeRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.LateFeeRate)
	return rate
}

// GetMonthlyInterestRate returns the nominal monthly interest rate as decimal
func (c *Config) GetMonthlyInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.MonthlyInterestRate)
	return rate
}

// GetLocation returns the scheduler timezone
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

func (c *Config) GetWriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

func (c *Config) GetConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

func (c *Config) GetReminderLockTTL() time.Duration {
	return mustDuration(c.Reminder.LockTTL)
}

func (c *Config) GetChannelTimeout() time.Duration {
	return mustDuration(c.Channel.Timeout)
}

func (c *Config) GetChannelPacing() time.Duration {
	return mustDuration(c.Channel.Pacing)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	return mustDuration(c.Health.Timeout)
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

func defaultResponsibleUser() string {
	name := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return name
	}
	return name + "@" + strings.TrimSpace(host)
}
