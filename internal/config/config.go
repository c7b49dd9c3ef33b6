// Package config loads server configuration from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
)

// DefaultJWTSecret is the development secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-this-secret"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Settle   SettleConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Path string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	BcryptCost int
}

type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

type SettleConfig struct {
	Tolerance       decimal.Decimal
	MaxParticipants int
}

// Load reads the configuration. envPath optionally names a .env file that
// must exist; without it a missing ./.env is ignored.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	tolerance, err := getDecimalEnv("SETTLE_TOLERANCE", calculator.DefaultTolerance)
	if err != nil {
		return nil, fmt.Errorf("invalid SETTLE_TOLERANCE: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getIntEnv("PORT", 8080),
			ReadTimeout:  getDurationEnv("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/settleup.db"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", DefaultJWTSecret),
			Expiration: getDurationEnv("JWT_TTL", 24*time.Hour),
			BcryptCost: getIntEnv("BCRYPT_COST", 0),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
		Settle: SettleConfig{
			Tolerance:       tolerance,
			MaxParticipants: getIntEnv("SETTLE_MAX_PARTICIPANTS", calculator.DefaultMaxParticipants),
		},
	}, nil
}

// Validate reports every setting the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Server.Port))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.Expiration <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive: %s", c.JWT.Expiration))
	}
	if c.Settle.Tolerance.IsNegative() {
		errs = append(errs, fmt.Errorf("SETTLE_TOLERANCE must not be negative: %s", c.Settle.Tolerance))
	}
	if c.Settle.MaxParticipants < 0 {
		errs = append(errs, fmt.Errorf("SETTLE_MAX_PARTICIPANTS must not be negative: %d", c.Settle.MaxParticipants))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json: %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Engine returns the settlement engine configuration.
func (c *Config) Engine() calculator.Config {
	return calculator.Config{
		Tolerance:       c.Settle.Tolerance,
		MaxParticipants: c.Settle.MaxParticipants,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	return decimal.NewFromString(value)
}
