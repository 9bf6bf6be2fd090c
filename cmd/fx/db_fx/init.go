package db_fx

import (
	"context"

	"github.com/fatihtunali/travelquotebot/internal/config"
	"github.com/fatihtunali/travelquotebot/internal/infra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db, log)
			return nil
		},
	})
	return db, nil
}
