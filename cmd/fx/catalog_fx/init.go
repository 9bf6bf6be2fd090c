package catalog_fx

import (
	"github.com/fatihtunali/travelquotebot/internal/repositories"
	"github.com/fatihtunali/travelquotebot/internal/services"
	mem "github.com/fatihtunali/travelquotebot/pkg/memcache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideCatalogRepo, provideCatalogService)

func provideCatalogRepo(db *gorm.DB) repositories.CatalogRepository {
	return repositories.NewCatalogRepository(db)
}

func provideCatalogService(repo repositories.CatalogRepository, store mem.CatalogStore, log *zap.Logger) services.CatalogServiceInterface {
	return services.NewCatalogService(repo, store, log)
}
