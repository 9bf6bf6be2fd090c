package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/internal/models/request_models"
	"github.com/fatihtunali/travelquotebot/internal/models/response_models"
	"github.com/fatihtunali/travelquotebot/internal/services"
	"github.com/fatihtunali/travelquotebot/pkg/memcache"
	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

type panickingPrompts struct{}

func (panickingPrompts) Compile(request_models.TripRequest, []db_models.Accommodation, []db_models.Activity, []db_models.Restaurant) string {
	panic("template index out of range")
}

type panickingCatalog struct {
	services.CatalogServiceInterface
}

func (panickingCatalog) GetActivities(context.Context, string, []string) []db_models.Activity {
	panic("nil map")
}

const threeDayReply = "```json\n" + `{
  "title": "3-Day Istanbul",
  "summary": "Classic Istanbul",
  "days": [
    {"day": 1, "date": "2025-06-01", "city": "Istanbul", "expenses": [
      {"category": "transport", "serviceId": "t-99", "name": "Airport to Hotel Transfer (IN)", "pricePerPerson": 30, "quantity": 2, "totalPrice": 60},
      {"category": "accommodation", "serviceId": null, "name": "Grand Hotel", "basePricePerNight": 100, "quantity": 2, "totalPrice": 200}
    ]},
    {"day": 2, "date": "2025-06-02", "city": "Istanbul", "expenses": [
      {"category": "activity", "name": "Bosphorus Cruise", "pricePerPerson": 40, "quantity": 2, "totalPrice": 80}
    ]},
    {"day": 3, "date": "2025-06-03", "city": "Istanbul", "expenses": [
      {"category": "transport", "name": "Hotel to Airport Transfer (OUT)", "pricePerPerson": 30, "quantity": 2, "totalPrice": 60}
    ]}
  ]
}` + "\n```"

func istanbulTrip() request_models.TripRequest {
	return request_models.TripRequest{
		OperatorID: "op-1",
		Days:       3,
		Cities:     []string{"Istanbul"},
		Pax:        2,
		StartDate:  "2025-06-01",
	}
}

func newPipeline(repo *fakeCatalogRepo, gen utils.GenerationClient) services.ItineraryServiceInterface {
	logger := zap.NewNop()
	catalog := services.NewCatalogService(repo, memcache.NewTTLStore(time.Hour), logger)
	return services.NewItineraryService(catalog, services.NewPromptService(), gen,
		services.NewResponseNormalizer(logger), services.NewServiceResolver(), logger)
}

func TestGenerateItinerary_EndToEnd(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.accommodations = []db_models.Accommodation{{ID: "a1", Name: "Grand Hotel", City: "Istanbul"}}
	gen := &stubGenerator{reply: threeDayReply}

	it, err := newPipeline(repo, gen).GenerateItinerary(context.Background(), istanbulTrip())

	require.NoError(t, err)
	require.Len(t, it.Days, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{it.Days[0].Day, it.Days[1].Day, it.Days[2].Day})

	hotel := it.Days[0].Expenses[1]
	assert.Equal(t, response_models.ExpenseAccommodation, hotel.Category)
	require.NotNil(t, hotel.ServiceID)
	assert.Equal(t, "a1", *hotel.ServiceID)

	assert.Nil(t, it.Days[0].Expenses[0].ServiceID, "transport ids are never trusted")
	assert.Nil(t, it.Days[1].Expenses[0].ServiceID, "activity not in catalog")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "- Grand Hotel (Istanbul)")
	assert.Contains(t, gen.prompts[0], "Duration: 3 days (2 nights)")
}

func TestGenerateItinerary_PromptOverrideReachesGenerator(t *testing.T) {
	gen := &stubGenerator{reply: `{"title":"custom","days":[]}`}
	req := istanbulTrip()
	override := "Use the upstream instruction."
	req.Prompt = &override

	it, err := newPipeline(newFakeCatalogRepo(), gen).GenerateItinerary(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "custom", it.Title)
	assert.Equal(t, []string{override}, gen.prompts)
}

func TestGenerateItinerary_GenerationErrorFallsBack(t *testing.T) {
	for _, genErr := range []error{utils.ErrGenerationTimeout, utils.ErrGenerationTransport} {
		gen := &stubGenerator{err: fmt.Errorf("ollama: %w", genErr)}

		it, err := newPipeline(newFakeCatalogRepo(), gen).GenerateItinerary(context.Background(), istanbulTrip())

		require.NoError(t, err)
		assert.Equal(t, "3-Day Turkey Tour", it.Title)
		assert.Empty(t, it.Days)
	}
}

func TestGenerateItinerary_GarbageReplyFallsBack(t *testing.T) {
	gen := &stubGenerator{reply: "Sorry, I cannot help with that."}

	it, err := newPipeline(newFakeCatalogRepo(), gen).GenerateItinerary(context.Background(), istanbulTrip())

	require.NoError(t, err)
	assert.Equal(t, "3-Day Turkey Tour", it.Title)
	assert.Equal(t, "Custom itinerary", it.Summary)
	assert.NotNil(t, it.Days)
}

func TestGenerateItinerary_StoreFailureStillGenerates(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.err = utils.ErrDatabaseError
	gen := &stubGenerator{reply: threeDayReply}

	it, err := newPipeline(repo, gen).GenerateItinerary(context.Background(), istanbulTrip())

	require.NoError(t, err)
	require.Len(t, it.Days, 3)
	assert.Nil(t, it.Days[0].Expenses[1].ServiceID)
	assert.Contains(t, gen.prompts[0], "Hotels (0 available):\nNone available")
}

func TestGenerateItinerary_PanicBecomesPipelineError(t *testing.T) {
	logger := zap.NewNop()
	catalog := services.NewCatalogService(newFakeCatalogRepo(), memcache.NewTTLStore(time.Hour), logger)
	gen := &stubGenerator{reply: threeDayReply}
	svc := services.NewItineraryService(catalog, panickingPrompts{}, gen,
		services.NewResponseNormalizer(logger), services.NewServiceResolver(), logger)

	it, err := svc.GenerateItinerary(context.Background(), istanbulTrip())

	assert.ErrorIs(t, err, utils.ErrItineraryPipeline)
	require.NotNil(t, it)
	assert.Equal(t, "3-Day Turkey Tour", it.Title)
	assert.Empty(t, gen.prompts)
}

func TestGenerateItinerary_PanicInCatalogLoader(t *testing.T) {
	logger := zap.NewNop()
	gen := &stubGenerator{reply: threeDayReply}
	svc := services.NewItineraryService(panickingCatalog{}, services.NewPromptService(), gen,
		services.NewResponseNormalizer(logger), services.NewServiceResolver(), logger)

	// the embedded nil interface makes the other loaders panic too
	it, err := svc.GenerateItinerary(context.Background(), istanbulTrip())

	assert.ErrorIs(t, err, utils.ErrItineraryPipeline)
	require.NotNil(t, it)
	assert.Empty(t, it.Days)
}

func TestGenerateItinerary_InvalidRequest(t *testing.T) {
	gen := &stubGenerator{reply: threeDayReply}
	svc := newPipeline(newFakeCatalogRepo(), gen)

	cases := map[string]func(*request_models.TripRequest){
		"no operator":  func(r *request_models.TripRequest) { r.OperatorID = "" },
		"zero days":    func(r *request_models.TripRequest) { r.Days = 0 },
		"no cities":    func(r *request_models.TripRequest) { r.Cities = nil },
		"blank city":   func(r *request_models.TripRequest) { r.Cities = []string{""} },
		"bad date":     func(r *request_models.TripRequest) { r.StartDate = "01/06/2025" },
		"negative pax": func(r *request_models.TripRequest) { r.Pax = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := istanbulTrip()
			mutate(&req)
			it, err := svc.GenerateItinerary(context.Background(), req)
			assert.ErrorIs(t, err, utils.ErrInvalidTripRequest)
			assert.Nil(t, it)
		})
	}
	assert.Empty(t, gen.prompts)
}

func TestOperatorCatalog_AllCategories(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.accommodations = []db_models.Accommodation{{ID: "a1", Name: "Grand Hotel"}}
	repo.transport = []db_models.Transport{{ID: "t1"}, {ID: "t2"}}
	repo.guides = []db_models.Guide{{ID: "g1"}}

	got, err := newPipeline(repo, &stubGenerator{}).OperatorCatalog(context.Background(), "op-1", []string{"Istanbul"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"accommodations": 1, "activities": 0, "restaurants": 0, "transport": 2, "guides": 1}, got.Counts)
	assert.Equal(t, "op-1", got.OperatorID)
}
