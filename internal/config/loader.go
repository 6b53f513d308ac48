// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	// Validate required fields
	if c.ABNamespace == "" {
		return fmt.Errorf("AB_NAMESPACE is required")
	}

	if c.RewardsEnabled {
		if c.ABBaseURL == "" || c.ABClientID == "" || c.ABClientSecret == "" {
			return fmt.Errorf("AB_BASE_URL, AB_CLIENT_ID and AB_CLIENT_SECRET are required when REWARDS_ENABLED is true")
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("invalid REDIS_DB: %d", c.RedisDB)
	}

	if c.RecordTTL < 0 {
		return fmt.Errorf("invalid RECORD_TTL: %s (must not be negative)", c.RecordTTL)
	}

	if c.EventChannel == "" {
		return fmt.Errorf("EVENT_CHANNEL must not be empty")
	}

	if c.EventChannel == c.UnlockChannel {
		return fmt.Errorf("EVENT_CHANNEL and UNLOCK_CHANNEL must differ, both are %s", c.EventChannel)
	}

	return nil
}
