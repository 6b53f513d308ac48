// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Domain tables (mastery tiers, titles, stat codes, actions) are not here;
// they live in the YAML file at ConfigPath.
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort        int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort     int    `env:"METRICS_PORT" envDefault:"8080"`
	MetricsEndpoint string `env:"METRICS_ENDPOINT" envDefault:"/metrics"`
	Environment     string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName     string `env:"SERVICE_NAME" envDefault:"ExtendCharacterProgression"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// AccelByte configuration
	// ============================================================
	// Credentials are only required when RewardsEnabled is set;
	// without them grant_item and increment_stat run in test mode.
	ABNamespace    string `env:"AB_NAMESPACE,required,notEmpty"`
	ABBaseURL      string `env:"AB_BASE_URL"`
	ABClientID     string `env:"AB_CLIENT_ID"`
	ABClientSecret string `env:"AB_CLIENT_SECRET"`
	RewardsEnabled bool   `env:"REWARDS_ENABLED" envDefault:"true"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	RecordTTL         time.Duration `env:"RECORD_TTL" envDefault:"0s"`

	// ============================================================
	// Pipeline configuration
	// ============================================================
	ConfigPath    string `env:"CONFIG_PATH" envDefault:"config/progression.yaml"`
	EventChannel  string `env:"EVENT_CHANNEL" envDefault:"progression:events"`
	UnlockChannel string `env:"UNLOCK_CHANNEL" envDefault:"progression:title_unlocked"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	// The Zipkin collector URL is read from OTEL_EXPORTER_ZIPKIN_ENDPOINT.
	OtelEnabled bool `env:"OTEL_ENABLED" envDefault:"true"`
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
