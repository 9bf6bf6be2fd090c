package repositories

import (
	"context"
	"fmt"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"gorm.io/gorm"
)

// CatalogRepository reads an operator's active catalog. Every method runs on
// its own pooled connection, which is handed back before returning.
type CatalogRepository interface {
	ListAccommodations(ctx context.Context, operatorID string, cities []string) ([]db_models.Accommodation, error)
	ListActivities(ctx context.Context, operatorID string, cities []string) ([]db_models.Activity, error)
	ListRestaurants(ctx context.Context, operatorID string, cities []string) ([]db_models.Restaurant, error)
	ListTransport(ctx context.Context, operatorID string) ([]db_models.Transport, error)
	ListGuides(ctx context.Context, operatorID string) ([]db_models.Guide, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

const accommodationsQuery = `
	SELECT
		a.id, a.name, a.city, a.category, a.star_rating,
		a.base_price_per_night, a.description, a.amenities,
		a.address, a.phone, a.check_in_time, a.check_out_time
	FROM accommodations a
	WHERE a.operator_id = ?
		AND a.is_active = ?
		AND a.city IN ?
	ORDER BY a.city, a.star_rating DESC, a.category
	LIMIT 20`

const activitiesQuery = `
	SELECT
		a.id, a.name, a.city, a.category, a.duration_hours,
		a.base_price, a.description, a.highlights,
		a.meeting_point, a.phone, a.difficulty_level,
		a.included_items, a.excluded_items, a.min_participants
	FROM activities a
	WHERE a.operator_id = ?
		AND a.is_active = ?
		AND a.city IN ?
	ORDER BY a.category, a.name
	LIMIT 25`

const restaurantColumns = `
		r.id, r.name, r.city, r.cuisine_type,
		r.breakfast_price, r.lunch_price, r.dinner_price,
		r.address, r.phone, r.operating_hours,
		r.reservation_required, r.recommended_dishes, r.specialties`

const restaurantsByCityQuery = `
	SELECT` + restaurantColumns + `
	FROM operator_restaurants r
	WHERE r.operator_id = ?
		AND r.is_active = ?
		AND r.city IN ?
	ORDER BY r.city, r.cuisine_type
	LIMIT 20`

const restaurantsQuery = `
	SELECT` + restaurantColumns + `
	FROM operator_restaurants r
	WHERE r.operator_id = ?
		AND r.is_active = ?
	ORDER BY r.city, r.cuisine_type
	LIMIT 20`

const transportQuery = `
	SELECT
		t.id, t.name, t.type, t.from_location, t.to_location,
		t.vehicle_type, t.max_passengers, t.base_price,
		t.distance_km, t.duration_minutes,
		t.pickup_location, t.contact_phone
	FROM operator_transport t
	WHERE t.operator_id = ?
		AND t.is_active = ?
	ORDER BY t.type, t.from_location
	LIMIT 25`

const guidesQuery = `
	SELECT
		g.id, g.name, g.guide_type, g.specialization,
		g.languages, g.price_per_day, g.price_half_day
	FROM operator_guide_services g
	WHERE g.operator_id = ?
		AND g.is_active = ?
	ORDER BY g.guide_type, g.name
	LIMIT 15`

func (r *catalogRepository) ListAccommodations(ctx context.Context, operatorID string, cities []string) ([]db_models.Accommodation, error) {
	if len(cities) == 0 {
		return []db_models.Accommodation{}, nil
	}
	return scopedQuery[db_models.Accommodation](ctx, r.db, accommodationsQuery, operatorID, true, cities)
}

func (r *catalogRepository) ListActivities(ctx context.Context, operatorID string, cities []string) ([]db_models.Activity, error) {
	if len(cities) == 0 {
		return []db_models.Activity{}, nil
	}
	return scopedQuery[db_models.Activity](ctx, r.db, activitiesQuery, operatorID, true, cities)
}

// ListRestaurants falls back to every active operator restaurant when no
// city is given.
func (r *catalogRepository) ListRestaurants(ctx context.Context, operatorID string, cities []string) ([]db_models.Restaurant, error) {
	if len(cities) == 0 {
		return scopedQuery[db_models.Restaurant](ctx, r.db, restaurantsQuery, operatorID, true)
	}
	return scopedQuery[db_models.Restaurant](ctx, r.db, restaurantsByCityQuery, operatorID, true, cities)
}

func (r *catalogRepository) ListTransport(ctx context.Context, operatorID string) ([]db_models.Transport, error) {
	return scopedQuery[db_models.Transport](ctx, r.db, transportQuery, operatorID, true)
}

func (r *catalogRepository) ListGuides(ctx context.Context, operatorID string) ([]db_models.Guide, error) {
	return scopedQuery[db_models.Guide](ctx, r.db, guidesQuery, operatorID, true)
}

// scopedQuery checks out one connection from the pool for the duration of a
// single query. gorm closes the connection on every return path.
func scopedQuery[T any](ctx context.Context, db *gorm.DB, query string, args ...any) ([]T, error) {
	rows := make([]T, 0)
	err := db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return tx.Raw(query, args...).Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}
	return rows, nil
}
