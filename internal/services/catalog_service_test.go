package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/internal/services"
	"github.com/fatihtunali/travelquotebot/pkg/memcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	mu             sync.Mutex
	calls          map[string]int
	accommodations []db_models.Accommodation
	activities     []db_models.Activity
	restaurants    []db_models.Restaurant
	transport      []db_models.Transport
	guides         []db_models.Guide
	err            error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{calls: map[string]int{}}
}

func (f *fakeCatalogRepo) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeCatalogRepo) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalogRepo) ListAccommodations(_ context.Context, _ string, _ []string) ([]db_models.Accommodation, error) {
	f.record("acc")
	return f.accommodations, f.err
}
func (f *fakeCatalogRepo) ListActivities(_ context.Context, _ string, _ []string) ([]db_models.Activity, error) {
	f.record("act")
	return f.activities, f.err
}
func (f *fakeCatalogRepo) ListRestaurants(_ context.Context, _ string, _ []string) ([]db_models.Restaurant, error) {
	f.record("rest")
	return f.restaurants, f.err
}
func (f *fakeCatalogRepo) ListTransport(_ context.Context, _ string) ([]db_models.Transport, error) {
	f.record("trans")
	return f.transport, f.err
}
func (f *fakeCatalogRepo) ListGuides(_ context.Context, _ string) ([]db_models.Guide, error) {
	f.record("guides")
	return f.guides, f.err
}

type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func newCatalogService(repo *fakeCatalogRepo, clock *fakeClock) services.CatalogServiceInterface {
	store := memcache.NewTTLStoreWithClock(time.Hour, clock.Now)
	return services.NewCatalogService(repo, store, zap.NewNop())
}

func TestCatalogCacheKey_SortsCities(t *testing.T) {
	a := services.CatalogCacheKey("op-1", db_models.CategoryAccommodation, []string{"Istanbul", "Cappadocia"})
	b := services.CatalogCacheKey("op-1", db_models.CategoryAccommodation, []string{"Cappadocia", "Istanbul"})

	assert.Equal(t, "op_op-1_acc_Cappadocia_Istanbul", a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, services.CatalogCacheKey("op-1", db_models.CategoryActivity, []string{"Istanbul", "Cappadocia"}))
}

func TestCatalogCacheKey_DoesNotReorderCallerSlice(t *testing.T) {
	cities := []string{"Izmir", "Antalya"}
	services.CatalogCacheKey("op-1", db_models.CategoryRestaurant, cities)
	assert.Equal(t, []string{"Izmir", "Antalya"}, cities)
}

func TestCatalogService_TTLWindow(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.accommodations = []db_models.Accommodation{{ID: "a1", Name: "Grand Hotel", City: "Istanbul"}}
	clock := &fakeClock{cur: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := newCatalogService(repo, clock)
	ctx := context.Background()

	first := svc.GetAccommodations(ctx, "op-1", []string{"Istanbul"})
	clock.Advance(time.Hour - time.Millisecond)
	second := svc.GetAccommodations(ctx, "op-1", []string{"Istanbul"})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.Calls("acc"))

	clock.Advance(2 * time.Millisecond)
	svc.GetAccommodations(ctx, "op-1", []string{"Istanbul"})
	assert.Equal(t, 2, repo.Calls("acc"))
}

func TestCatalogService_CityOrderHitsSameEntry(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.activities = []db_models.Activity{{ID: "x1", Name: "Bosphorus Cruise"}}
	svc := newCatalogService(repo, &fakeClock{cur: time.Now()})
	ctx := context.Background()

	svc.GetActivities(ctx, "op-1", []string{"A", "B"})
	got := svc.GetActivities(ctx, "op-1", []string{"B", "A"})

	require.Len(t, got, 1)
	assert.Equal(t, "x1", got[0].ID)
	assert.Equal(t, 1, repo.Calls("act"))
}

func TestCatalogService_CachesEmptyResults(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newCatalogService(repo, &fakeClock{cur: time.Now()})
	ctx := context.Background()

	first := svc.GetRestaurants(ctx, "op-1", []string{"Konya"})
	second := svc.GetRestaurants(ctx, "op-1", []string{"Konya"})

	assert.NotNil(t, first)
	assert.Empty(t, first)
	assert.Empty(t, second)
	assert.Equal(t, 1, repo.Calls("rest"))
}

func TestCatalogService_QueryErrorDegradesToEmpty(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.err = errors.New("too many connections")
	svc := newCatalogService(repo, &fakeClock{cur: time.Now()})
	ctx := context.Background()

	got := svc.GetTransport(ctx, "op-1")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// failures are not cached, the next lookup queries again
	repo.err = nil
	repo.transport = []db_models.Transport{{ID: "t1", Name: "Airport Transfer"}}
	got = svc.GetTransport(ctx, "op-1")
	require.Len(t, got, 1)
	assert.Equal(t, 2, repo.Calls("trans"))
}

func TestCatalogService_OperatorScopedKeys(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.guides = []db_models.Guide{{ID: "g1", Name: "Ayse"}}
	svc := newCatalogService(repo, &fakeClock{cur: time.Now()})
	ctx := context.Background()

	svc.GetGuides(ctx, "op-1")
	svc.GetGuides(ctx, "op-1")
	svc.GetGuides(ctx, "op-2")

	assert.Equal(t, 2, repo.Calls("guides"))
}

func TestCatalogService_CallerCannotMutateCache(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.accommodations = []db_models.Accommodation{{ID: "a1", Name: "Grand Hotel"}}
	svc := newCatalogService(repo, &fakeClock{cur: time.Now()})
	ctx := context.Background()

	got := svc.GetAccommodations(ctx, "op-1", []string{"Istanbul"})
	got[0].Name = "Changed"

	again := svc.GetAccommodations(ctx, "op-1", []string{"Istanbul"})
	assert.Equal(t, "Grand Hotel", again[0].Name)
}

func TestCatalogService_ConcurrentMisses(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.accommodations = []db_models.Accommodation{{ID: "a1", Name: "Grand Hotel"}}
	svc := newCatalogService(repo, &fakeClock{cur: time.Now()})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := svc.GetAccommodations(ctx, "op-1", []string{"Istanbul"})
			if assert.Len(t, got, 1) {
				assert.Equal(t, "a1", got[0].ID)
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, repo.Calls("acc"), 1)
}
