package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	ExpirySchedule string `mapstructure:"REFERRAL_EXPIRY_SCHEDULE"`
	Timezone       string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type BusinessConfig struct {
	MinPrincipal    string `mapstructure:"LOAN_MIN_PRINCIPAL"`
	MaxPrincipal    string `mapstructure:"LOAN_MAX_PRINCIPAL"`
	MinTermYears    int    `mapstructure:"LOAN_MIN_TERM_YEARS"`
	MaxTermYears    int    `mapstructure:"LOAN_MAX_TERM_YEARS"`
	MaxCodeAttempts int    `mapstructure:"REFERRAL_MAX_CODE_ATTEMPTS"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	// Registered empty so AutomaticEnv can populate them during Unmarshal.
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REFERRAL_EXPIRY_SCHEDULE", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	viper.SetDefault("LOAN_MIN_PRINCIPAL", "1000")
	viper.SetDefault("LOAN_MAX_PRINCIPAL", "50000")
	viper.SetDefault("LOAN_MIN_TERM_YEARS", 1)
	viper.SetDefault("LOAN_MAX_TERM_YEARS", 7)
	viper.SetDefault("REFERRAL_MAX_CODE_ATTEMPTS", 5)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
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

	if c.Business.MinTermYears <= 0 {
		return fmt.Errorf("LOAN_MIN_TERM_YEARS must be greater than 0")
	}

	if c.Business.MaxTermYears < c.Business.MinTermYears {
		return fmt.Errorf("LOAN_MAX_TERM_YEARS must not be less than LOAN_MIN_TERM_YEARS")
	}

	if c.Business.MaxCodeAttempts <= 0 {
		return fmt.Errorf("REFERRAL_MAX_CODE_ATTEMPTS must be greater than 0")
	}

	min, err := decimal.NewFromString(c.Business.MinPrincipal)
	if err != nil {
		return fmt.Errorf("LOAN_MIN_PRINCIPAL must be a valid decimal: %w", err)
	}

	max, err := decimal.NewFromString(c.Business.MaxPrincipal)
	if err != nil {
		return fmt.Errorf("LOAN_MAX_PRINCIPAL must be a valid decimal: %w", err)
	}

	if max.LessThan(min) {
		return fmt.Errorf("LOAN_MAX_PRINCIPAL must not be less than LOAN_MIN_PRINCIPAL")
	}

	return nil
}

// GetMinPrincipal returns the minimum loan principal as decimal
func (c *Config) GetMinPrincipal() decimal.Decimal {
	min, _ := decimal.NewFromString(c.Business.MinPrincipal)
	return min
}

// GetMaxPrincipal returns the maximum loan principal as decimal
func (c *Config) GetMaxPrincipal() decimal.Decimal {
	max, _ := decimal.NewFromString(c.Business.MaxPrincipal)
	return max
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}
