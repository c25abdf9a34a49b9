package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cacheadapter "github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/adapter/cache"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/adapter/client"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/adapter/model"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/cache"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/config"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/lifecycle"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/logger"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/usecase"
)

// app is the wired service graph shared by every command
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	controller *lifecycle.Controller
	prediction usecase.PredictionUsecase
	closers    []func()
}

// loadConfig reads configuration honouring the --config flag
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newAppLogger builds the logger. CLI tools log to stderr so stdout stays
// parseable.
func newAppLogger(cfg *config.Config, forceStderr bool) (*zap.Logger, error) {
	logCfg := cfg.Log
	if forceStderr {
		logCfg.Output = "stderr"
	}
	log, err := logger.NewLogger(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// newModelLoader selects the model backend
func newModelLoader(cfg *config.ModelConfig) service.ModelLoader {
	if cfg.Backend == config.ModelBackendRemote {
		return client.NewRemoteLoader(client.NewInferenceClient(cfg.RemoteURL, cfg.RemoteTimeout))
	}
	return model.NewFileLoader(cfg.Path)
}

// newPredictionCache builds the configured cache. A nil cache disables caching.
func newPredictionCache(cfg *config.Config, log *zap.Logger) (service.PredictionCache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		c, err := cacheadapter.NewMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create memory cache: %w", err)
		}
		log.Info("Prediction cache enabled", zap.String("backend", cfg.Cache.Backend))
		return c, func() { _ = c.Close() }, nil
	case config.CacheBackendRedis:
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			// the cache is optional; serve without it
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			return nil, func() {}, nil
		}
		log.Info("Prediction cache enabled", zap.String("backend", cfg.Cache.Backend), zap.String("address", cfg.Redis.Address()))
		return cacheadapter.NewRedisCache(redisClient, cfg.Cache.TTL, log), func() { _ = redisClient.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

// bootstrap loads the model and wires the prediction usecase. A model load
// failure is returned and the caller must not serve.
func bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger, withCache bool) (*app, error) {
	a := &app{cfg: cfg, logger: log}

	a.controller = lifecycle.NewController(newModelLoader(&cfg.Model), log)
	if err := a.controller.Startup(ctx); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.controller.Shutdown)

	opts := usecase.Options{
		CacheKeyPrefix:   cfg.Cache.KeyPrefix,
		MaxBatchSize:     cfg.Inference.MaxBatchSize,
		BatchConcurrency: cfg.Inference.BatchConcurrency,
	}
	if withCache {
		predictionCache, closeCache, err := newPredictionCache(cfg, log)
		if err != nil {
			a.close()
			return nil, err
		}
		opts.Cache = predictionCache
		a.closers = append(a.closers, closeCache)
	}

	a.prediction = usecase.NewPredictionUsecase(a.controller, log, opts)
	return a, nil
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
