package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string `validate:"required,numeric"`
	Storage  string `validate:"required,oneof=postgres memory"`

	DBHost     string `validate:"required_if=Storage postgres"`
	DBPort     string `validate:"omitempty,numeric"`
	DBUser     string `validate:"required_if=Storage postgres"`
	DBPassword string
	DBName     string `validate:"required_if=Storage postgres"`
	DBSslMode  string `validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Empty KafkaBrokers logs events instead of publishing them.
	KafkaBrokers          string
	KafkaOrderEventsTopic string `validate:"required_with=KafkaBrokers"`

	StatsSchedule string
}

// LoadConfig reads the configuration from the environment. Values from a
// .env file in the working directory are used for keys not already set.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:              env("HTTP_PORT", "8080"),
		Storage:               env("STORAGE", StoragePostgres),
		DBHost:                env("DB_HOST", ""),
		DBPort:                env("DB_PORT", "5432"),
		DBUser:                env("DB_USER", ""),
		DBPassword:            env("DB_PASSWORD", ""),
		DBName:                env("DB_NAME", ""),
		DBSslMode:             env("DB_SSLMODE", "disable"),
		KafkaBrokers:          env("KAFKA_BROKERS", ""),
		KafkaOrderEventsTopic: env("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		StatsSchedule:         env("STATS_SCHEDULE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// DSN is the PostgreSQL connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func env(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
