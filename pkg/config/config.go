package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds service configuration loaded from the environment, an
// optional .env file and an optional config.yaml.
type Config struct {
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME" validate:"required"`
	Environment string `mapstructure:"ENVIRONMENT" validate:"required,oneof=development staging production test"`
	LogLevel    string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn error"`

	HTTPPort       string        `mapstructure:"HTTP_PORT" validate:"required,numeric"`
	GRPCPort       string        `mapstructure:"GRPC_PORT" validate:"omitempty,numeric"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT" validate:"gt=0"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST" validate:"required_without=DatabaseURL"`
	DBPort      string `mapstructure:"DB_PORT" validate:"required_without=DatabaseURL"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME" validate:"required_without=DatabaseURL"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL" validate:"gte=0"`

	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS" validate:"gte=0"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW" validate:"gt=0"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`

	TracingEnabled bool   `mapstructure:"TRACING_ENABLED"`
	JaegerEndpoint string `mapstructure:"JAEGER_ENDPOINT" validate:"omitempty,url"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var keys = []string{
	"OTEL_SERVICE_NAME",
	"ENVIRONMENT",
	"LOG_LEVEL",
	"HTTP_PORT",
	"GRPC_PORT",
	"REQUEST_TIMEOUT",
	"DATABASE_URL",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"DB_SSLMODE",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"CACHE_TTL",
	"RATE_LIMIT_REQUESTS",
	"RATE_LIMIT_WINDOW",
	"KAFKA_BROKERS",
	"TRACING_ENABLED",
	"JAEGER_ENDPOINT",
}

// Load reads configuration. Missing .env and config.yaml files are not errors.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("OTEL_SERVICE_NAME", "starwars-api")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "3000")
	v.SetDefault("GRPC_PORT", "9090")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "starwars")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// IsDevelopment reports whether the console log writer should be used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DSN returns the Postgres connection string. DATABASE_URL wins over the
// discrete DB_* settings; the legacy postgres:// scheme is normalized.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		if strings.HasPrefix(c.DatabaseURL, "postgres://") {
			return "postgresql://" + strings.TrimPrefix(c.DatabaseURL, "postgres://")
		}
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Brokers splits KAFKA_BROKERS on commas. An empty result disables publishing.
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
