package services

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/internal/repositories"
	"github.com/fatihtunali/travelquotebot/pkg/memcache"
	"go.uber.org/zap"
)

type CatalogServiceInterface interface {
	GetAccommodations(ctx context.Context, operatorID string, cities []string) []db_models.Accommodation
	GetActivities(ctx context.Context, operatorID string, cities []string) []db_models.Activity
	GetRestaurants(ctx context.Context, operatorID string, cities []string) []db_models.Restaurant
	GetTransport(ctx context.Context, operatorID string) []db_models.Transport
	GetGuides(ctx context.Context, operatorID string) []db_models.Guide
}

// CatalogService puts a TTL cache in front of the catalog repository. A
// failed query degrades to an empty list so one missing category never
// fails a whole itinerary.
type CatalogService struct {
	repo   repositories.CatalogRepository
	store  memcache.CatalogStore
	logger *zap.Logger
}

func NewCatalogService(repo repositories.CatalogRepository, store memcache.CatalogStore, logger *zap.Logger) CatalogServiceInterface {
	return &CatalogService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// CatalogCacheKey is order-insensitive in cities: the list is sorted before
// it is joined.
func CatalogCacheKey(operatorID string, category db_models.CatalogCategory, cities []string) string {
	sorted := slices.Clone(cities)
	slices.Sort(sorted)
	return "op_" + operatorID + "_" + string(category) + "_" + strings.Join(sorted, "_")
}

func operatorCacheKey(operatorID string, category db_models.CatalogCategory) string {
	return "op_" + operatorID + "_" + string(category)
}

func (s *CatalogService) GetAccommodations(ctx context.Context, operatorID string, cities []string) []db_models.Accommodation {
	key := CatalogCacheKey(operatorID, db_models.CategoryAccommodation, cities)
	return cachedFetch(ctx, s, key, func(ctx context.Context) ([]db_models.Accommodation, error) {
		return s.repo.ListAccommodations(ctx, operatorID, cities)
	})
}

func (s *CatalogService) GetActivities(ctx context.Context, operatorID string, cities []string) []db_models.Activity {
	key := CatalogCacheKey(operatorID, db_models.CategoryActivity, cities)
	return cachedFetch(ctx, s, key, func(ctx context.Context) ([]db_models.Activity, error) {
		return s.repo.ListActivities(ctx, operatorID, cities)
	})
}

func (s *CatalogService) GetRestaurants(ctx context.Context, operatorID string, cities []string) []db_models.Restaurant {
	key := CatalogCacheKey(operatorID, db_models.CategoryRestaurant, cities)
	return cachedFetch(ctx, s, key, func(ctx context.Context) ([]db_models.Restaurant, error) {
		return s.repo.ListRestaurants(ctx, operatorID, cities)
	})
}

func (s *CatalogService) GetTransport(ctx context.Context, operatorID string) []db_models.Transport {
	key := operatorCacheKey(operatorID, db_models.CategoryTransport)
	return cachedFetch(ctx, s, key, func(ctx context.Context) ([]db_models.Transport, error) {
		return s.repo.ListTransport(ctx, operatorID)
	})
}

func (s *CatalogService) GetGuides(ctx context.Context, operatorID string) []db_models.Guide {
	key := operatorCacheKey(operatorID, db_models.CategoryGuide)
	return cachedFetch(ctx, s, key, func(ctx context.Context) ([]db_models.Guide, error) {
		return s.repo.ListGuides(ctx, operatorID)
	})
}

func cachedFetch[T any](ctx context.Context, s *CatalogService, key string, query func(context.Context) ([]T, error)) []T {
	if payload, ok := s.store.Get(ctx, key); ok {
		var cached []T
		err := json.Unmarshal(payload, &cached)
		if err == nil {
			s.logger.Debug("Catalog cache hit", zap.String("key", key), zap.Int("items", len(cached)))
			return cached
		}
		s.logger.Warn("Discarding undecodable catalog cache entry", zap.String("key", key), zap.Error(err))
	}

	s.logger.Debug("Catalog cache miss", zap.String("key", key))
	items, err := query(ctx)
	if err != nil {
		s.logger.Warn("Catalog query failed, continuing without this category",
			zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("Catalog payload not cacheable", zap.String("key", key), zap.Error(err))
		return items
	}
	s.store.Set(ctx, key, payload)
	s.logger.Debug("Catalog cache stored", zap.String("key", key), zap.Int("items", len(items)))

	return items
}
