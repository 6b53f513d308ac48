// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	healthCheckInterval = 10 * time.Second
	shutdownTimeout     = 15 * time.Second
)

// Run starts the application and blocks until a shutdown signal is received
// or the event subscription fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	subscriberErr := make(chan error, 1)
	go func() {
		subscriberErr <- a.subscriber.Run(ctx)
	}()

	// gRPC health follows Redis reachability
	go a.health.Watch(ctx, healthCheckInterval, a.grpcServer.SetServing)

	logrus.Info("application started successfully")

	var runErr error
	select {
	case <-ctx.Done():
		logrus.Info("shutdown signal received")
	case runErr = <-subscriberErr:
		logrus.Errorf("event subscriber stopped: %v", runErr)
	}

	a.grpcServer.SetServing(false)
	if err := a.Shutdown(context.Background()); err != nil {
		return err
	}
	return runErr
}

// Shutdown stops the servers first, then closes Redis (which also ends the
// subscriber) and finally flushes spans. Every step runs even if an earlier one
// fails; the failures are joined into the returned error.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logrus.Info("shutting down application...")

	var errs []error
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("grpc server: %w", err))
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metrics server: %w", err))
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logrus.Errorf("shutdown finished with errors: %v", err)
		return err
	}
	logrus.Info("application shutdown complete")
	return nil
}
