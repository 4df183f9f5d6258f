package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPPort               string
	StoreDriver            string
	SQLitePath             string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	RedisAddr              string
	RedisPassword          string
	RedisKeyPrefix         string
	KafkaHost              string
	KafkaOrderChangedTopic string
	JWTSecret              string
	SimulatedLatency       time.Duration
	LogLevel               slog.Level
}

// NewConfig reads the configuration through getenv and fills in defaults.
func NewConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT", "8080"),
		StoreDriver:            strings.ToLower(get("STORE_DRIVER", StoreDriverSQLite)),
		SQLitePath:             get("SQLITE_PATH", "orderflow.db"),
		DBHost:                 get("DB_HOST", ""),
		DBPort:                 get("DB_PORT", "5432"),
		DBUser:                 get("DB_USER", ""),
		DBPassword:             get("DB_PASSWORD", ""),
		DBName:                 get("DB_NAME", ""),
		DBSslMode:              get("DB_SSLMODE", "disable"),
		RedisAddr:              get("REDIS_ADDR", ""),
		RedisPassword:          get("REDIS_PASSWORD", ""),
		RedisKeyPrefix:         get("REDIS_KEY_PREFIX", ""),
		KafkaHost:              get("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: get("KAFKA_ORDER_CHANGED_TOPIC", "order.status.changed"),
		JWTSecret:              get("JWT_SECRET", ""),
	}

	var errList []error

	latency, err := time.ParseDuration(get("SIMULATED_LATENCY", "1s"))
	if err != nil || latency < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"SIMULATED_LATENCY",
			fmt.Errorf("%q is not a non-negative duration", getenv("SIMULATED_LATENCY")),
		))
	}
	cfg.SimulatedLatency = latency

	if err = cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	errList = append(errList, cfg.validate())
	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errList []error

	if c.JWTSecret == "" {
		errList = append(errList, errs.NewValueIsRequiredError("JWT_SECRET"))
	}

	switch c.StoreDriver {
	case StoreDriverSQLite, StoreDriverMemory:
	case StoreDriverPostgres:
		if c.DBHost == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
		}
		if c.DBName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_NAME"))
		}
	case StoreDriverRedis:
		if c.RedisAddr == "" {
			errList = append(errList, errs.NewValueIsRequiredError("REDIS_ADDR"))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"STORE_DRIVER",
			fmt.Errorf("%q is not one of sqlite, postgres, redis, memory", c.StoreDriver),
		))
	}

	return errors.Join(errList...)
}
