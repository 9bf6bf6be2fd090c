package infra

import (
	"fmt"

	"github.com/fatihtunali/travelquotebot/internal/config"
	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDatabase opens the catalog store and sizes its connection pool. All
// catalog reads share this pool; a caller blocks when every connection is
// checked out.
func InitDatabase(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	connectionPool, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBPoolSize)
	sqlDB.SetMaxIdleConns(cfg.DBPoolSize)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	log.Info("Catalog database connected",
		zap.String("driver", cfg.DBDriver),
		zap.Int("pool_size", cfg.DBPoolSize))

	return connectionPool, nil
}

func newDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		mysqlCfg, err := mysqldrv.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DSN: %w", err)
		}
		mysqlCfg.ParseTime = true
		return gormmysql.Open(mysqlCfg.FormatDSN()), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q, use 'mysql' or 'postgres'", driver)
	}
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("Error closing database connection", zap.Error(err))
	} else {
		log.Info("Catalog database connection closed")
	}
}
