// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/internal/bootstrap"
	"github.com/AccelByte/extend-character-progression/internal/config"
	"github.com/AccelByte/extend-character-progression/internal/server"
	"github.com/AccelByte/extend-character-progression/pkg/handler"
	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/AccelByte/extend-character-progression/pkg/service"
	"github.com/cenkalti/backoff/v4"

	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/iam"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	sdkAuth "github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/utils/auth"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	actionBuiltin "github.com/AccelByte/extend-character-progression/pkg/action/builtin"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	subscriber        *handler.Subscriber
	health            *service.HealthChecker
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error

	// set only when rewards are enabled
	configRepo *sdkAuth.ConfigRepositoryImpl
	tokenRepo  *sdkAuth.TokenRepositoryImpl
}

// New wires the service: AccelByte login (only when rewards are on), Redis, the
// progression YAML, record store and reward services, the pipeline, the event
// subscriber, both servers, then tracing.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if cfg.RewardsEnabled {
		if err := app.initAccelByteSDKAuth(); err != nil {
			return nil, fmt.Errorf("failed to init AccelByte SDK: %w", err)
		}
	} else {
		logrus.Warn("rewards disabled: grant_item and increment_stat actions run in test mode")
	}

	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	pipelineConfig, err := pipeline.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load progression config from %s: %w", cfg.ConfigPath, err)
	}
	logrus.Infof("loaded progression config: path=%s titles=%d stat_codes=%d",
		cfg.ConfigPath, len(pipelineConfig.Titles), len(pipelineConfig.StatCodes))

	app.health = service.NewHealthChecker(app.redisClient)
	recordStore := service.NewRedisRecordStore(app.redisClient, service.RedisRecordStoreConfig{
		TTL: cfg.RecordTTL,
	})

	services := service.NewDependencies().
		WithPublisher(service.NewRedisPublisher(app.redisClient))
	if cfg.RewardsEnabled {
		services = services.
			WithEntitlementGranter(app.initItemGranter()).
			WithStatisticUpdater(app.initStatisticService())
	}

	actionExecutor, actionRegistry, err := bootstrap.InitActionExecutor(pipelineConfig, &actionBuiltin.Dependencies{
		Services:      services,
		UnlockChannel: cfg.UnlockChannel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init action executor: %w", err)
	}

	pipelineManager, err := bootstrap.InitPipeline(pipelineConfig, recordStore, actionExecutor, actionRegistry)
	if err != nil {
		return nil, fmt.Errorf("failed to init pipeline: %w", err)
	}

	app.subscriber = handler.NewSubscriber(
		app.redisClient,
		cfg.EventChannel,
		handler.NewProgression(pipelineManager, cfg.ABNamespace),
	)

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, cfg.MetricsEndpoint)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(cfg.ServiceName, cfg.Environment, cfg.ABNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initAccelByteSDKAuth logs in with AB_CLIENT_ID / AB_CLIENT_SECRET. The repositories
// are kept on App so the reward services share one auto-refreshed token.
func (a *App) initAccelByteSDKAuth() error {
	a.configRepo = sdkAuth.DefaultConfigRepositoryImpl()
	a.tokenRepo = sdkAuth.DefaultTokenRepositoryImpl()
	refreshRepo := &sdkAuth.RefreshTokenImpl{AutoRefresh: true, RefreshRate: 0.8}

	oauthService := iam.OAuth20Service{
		Client:                 factory.NewIamClient(a.configRepo),
		ConfigRepository:       a.configRepo,
		TokenRepository:        a.tokenRepo,
		RefreshTokenRepository: refreshRepo,
	}

	clientID := a.configRepo.GetClientId()
	clientSecret := a.configRepo.GetClientSecret()

	if err := oauthService.LoginClient(&clientID, &clientSecret); err != nil {
		return fmt.Errorf("unable to login using clientId and clientSecret: %w", err)
	}

	logrus.Info("AccelByte SDK initialized and authenticated")
	return nil
}

// initRedis pings with exponential backoff until Redis answers or REDIS_MAX_RETRIES is spent.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           a.cfg.RedisDB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("redis ping %s failed: %v", a.cfg.RedisAddr(), err)
				return err
			}
			return nil
		},
		backoff.WithContext(maxRetries, ctx),
	)

	if err != nil {
		client.Close()
		return fmt.Errorf("redis %s unreachable: %w", a.cfg.RedisAddr(), err)
	}

	a.redisClient = client
	logrus.Infof("Redis client initialized (addr: %s, db: %d)", a.cfg.RedisAddr(), a.cfg.RedisDB)
	return nil
}

// initItemGranter backs grant_item actions.
func (a *App) initItemGranter() service.EntitlementGranter {
	fulfillmentService := &platform.FulfillmentService{
		Client:           factory.NewPlatformClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return service.NewEntitlementService(fulfillmentService, service.EntitlementServiceConfig{
		Namespace: a.cfg.ABNamespace,
	})
}

// initStatisticService backs increment_stat actions.
func (a *App) initStatisticService() service.UserStatisticUpdater {
	statisticService := &social.UserStatisticService{
		Client:           factory.NewSocialClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return service.NewStatisticService(statisticService,
		service.StatisticServiceConfig{
			Namespace: a.cfg.ABNamespace,
		})
}
