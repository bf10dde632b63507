package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	LogLevel          string
	LotExpirySchedule string
	CodeRetryBudget   int
}

// LoadConfig reads the configuration through getenv, usually os.Getenv
// after the .env file has been loaded.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:          getenv("HTTP_PORT"),
		DBHost:            getenv("DB_HOST"),
		DBPort:            getenv("DB_PORT"),
		DBUser:            getenv("DB_USER"),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME"),
		DBSslMode:         getenv("DB_SSLMODE"),
		LogLevel:          getenv("LOG_LEVEL"),
		LotExpirySchedule: getenv("LOT_EXPIRY_SCHEDULE"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}

	if raw := getenv("CODE_RETRY_BUDGET"); raw != "" {
		budget, err := strconv.Atoi(raw)
		if err != nil || budget <= 0 {
			return Config{}, fmt.Errorf("CODE_RETRY_BUDGET must be a positive integer, got %q", raw)
		}
		config.CodeRetryBudget = budget
	}
	if _, err := config.SlogLevel(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel, defaulting to info.
func (c Config) SlogLevel() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// EchoLevel is LogLevel for the echo logger.
func (c Config) EchoLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
