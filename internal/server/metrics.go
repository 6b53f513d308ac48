// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/AccelByte/extend-character-progression/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// MetricsServer exposes the progression counters plus Go runtime metrics for Prometheus.
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
	port     int
	endpoint string
}

func NewMetricsServer(port int, endpoint string) *MetricsServer {
	return &MetricsServer{
		port:     port,
		endpoint: endpoint,
	}
}

// Setup builds a dedicated registry so tests and the process never share the default one.
func (m *MetricsServer) Setup() error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register progression metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(m.endpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: logrus.StandardLogger(),
	}))

	m.server = &http.Server{Handler: mux}
	return nil
}

// Start binds the port before returning so a taken port fails startup instead of a goroutine.
func (m *MetricsServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", m.port))
	if err != nil {
		return fmt.Errorf("failed to listen on metrics port %d: %w", m.port, err)
	}
	m.listener = lis

	go func() {
		logrus.Infof("metrics server listening on %s%s", lis.Addr(), m.endpoint)
		if err := m.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("metrics server stopped: %v", err)
		}
	}()
	return nil
}

// Addr is only valid after Start.
func (m *MetricsServer) Addr() net.Addr {
	return m.listener.Addr()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("metrics server stopped")
	return nil
}
