package config_fx

import (
	"context"

	"github.com/fatihtunali/travelquotebot/internal/config"
	"github.com/fatihtunali/travelquotebot/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(provideLogger),
)

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	logConfigProblems(log, cfg)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func logConfigProblems(log *zap.Logger, cfg config.Config) {
	if cfg.EnvFileErr != nil {
		log.Debug("No .env file loaded", zap.Error(cfg.EnvFileErr))
	}
	for _, r := range cfg.Rejected {
		log.Warn("Ignoring invalid setting, using default",
			zap.String("key", r.Key),
			zap.String("value", r.Value),
			zap.String("default", r.Fallback))
	}
}
