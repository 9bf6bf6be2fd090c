package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/internal/models/request_models"
	"github.com/fatihtunali/travelquotebot/internal/models/response_models"
	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, req request_models.TripRequest) (*response_models.Itinerary, error)
	OperatorCatalog(ctx context.Context, operatorID string, cities []string) (*response_models.CatalogResponse, error)
}

type ItineraryService struct {
	catalog    CatalogServiceInterface
	prompts    PromptServiceInterface
	generator  utils.GenerationClient
	normalizer ResponseNormalizerInterface
	resolver   ServiceResolverInterface
	logger     *zap.Logger
}

func NewItineraryService(
	catalog CatalogServiceInterface,
	prompts PromptServiceInterface,
	generator utils.GenerationClient,
	normalizer ResponseNormalizerInterface,
	resolver ServiceResolverInterface,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		catalog:    catalog,
		prompts:    prompts,
		generator:  generator,
		normalizer: normalizer,
		resolver:   resolver,
		logger:     logger,
	}
}

type tripCatalog struct {
	accommodations []db_models.Accommodation
	activities     []db_models.Activity
	restaurants    []db_models.Restaurant
}

// GenerateItinerary always hands back an itinerary. Generation and decoding
// failures yield the fallback with a nil error; an unexpected failure yields
// the fallback together with ErrItineraryPipeline.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, req request_models.TripRequest) (itinerary *response_models.Itinerary, err error) {
	req = req.WithDefaults()
	if verr := req.Validate(); verr != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrInvalidTripRequest, verr)
	}

	log := s.logger.With(
		zap.String("operator_id", req.OperatorID),
		zap.Strings("cities", req.Cities),
		zap.Int("days", req.Days),
		zap.Int("pax", req.Pax),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Itinerary pipeline panicked",
				zap.Any("panic", r),
				zap.String("tour_type", req.TourType),
				zap.String("start_date", req.StartDate),
				zap.String("budget", req.Budget),
				zap.Strings("interests", req.Interests),
				zap.Bool("prompt_override", req.HasPrompt()),
				zap.ByteString("stack", debug.Stack()))
			itinerary = response_models.FallbackItinerary(req.Days)
			err = fmt.Errorf("%w: %v", utils.ErrItineraryPipeline, r)
		}
	}()

	start := time.Now()
	catalog, fetchErr := s.fetchCatalog(ctx, req)
	if fetchErr != nil {
		log.Error("Catalog fetch failed unexpectedly", zap.Error(fetchErr))
		return response_models.FallbackItinerary(req.Days), fmt.Errorf("%w: %w", utils.ErrItineraryPipeline, fetchErr)
	}
	log.Info("Catalog loaded",
		zap.Int("accommodations", len(catalog.accommodations)),
		zap.Int("activities", len(catalog.activities)),
		zap.Int("restaurants", len(catalog.restaurants)),
		zap.Bool("prompt_override", req.HasPrompt()))

	prompt := s.prompts.Compile(req, catalog.accommodations, catalog.activities, catalog.restaurants)

	raw, genErr := s.generator.Generate(ctx, prompt)
	if genErr != nil {
		log.Warn("Generation failed, returning fallback itinerary",
			zap.Error(genErr), zap.Duration("elapsed", time.Since(start)))
		return response_models.FallbackItinerary(req.Days), nil
	}

	itinerary = s.normalizer.Normalize(raw, req.Days)
	itinerary = s.resolver.Resolve(itinerary, catalog.accommodations, catalog.activities, catalog.restaurants)

	log.Info("Itinerary generated",
		zap.Int("day_entries", len(itinerary.Days)),
		zap.Duration("elapsed", time.Since(start)))
	return itinerary, nil
}

// fetchCatalog loads the three categories concurrently. The catalog service
// already turns store errors into empty lists, so only a panic inside one of
// the loaders fails the group.
func (s *ItineraryService) fetchCatalog(ctx context.Context, req request_models.TripRequest) (tripCatalog, error) {
	var out tripCatalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(recovered("accommodations", func() {
		out.accommodations = s.catalog.GetAccommodations(gctx, req.OperatorID, req.Cities)
	}))
	g.Go(recovered("activities", func() {
		out.activities = s.catalog.GetActivities(gctx, req.OperatorID, req.Cities)
	}))
	g.Go(recovered("restaurants", func() {
		out.restaurants = s.catalog.GetRestaurants(gctx, req.OperatorID, req.Cities)
	}))

	if err := g.Wait(); err != nil {
		return tripCatalog{}, err
	}
	return out, nil
}

func recovered(category string, load func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("loading %s panicked: %v", category, r)
			}
		}()
		load()
		return nil
	}
}

func (s *ItineraryService) OperatorCatalog(ctx context.Context, operatorID string, cities []string) (*response_models.CatalogResponse, error) {
	req := request_models.TripRequest{OperatorID: operatorID, Cities: cities}
	catalog, err := s.fetchCatalog(ctx, req)
	if err != nil {
		s.logger.Error("Catalog preview failed", zap.String("operator_id", operatorID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", utils.ErrItineraryPipeline, err)
	}
	transport := s.catalog.GetTransport(ctx, operatorID)
	guides := s.catalog.GetGuides(ctx, operatorID)

	if cities == nil {
		cities = []string{}
	}
	return &response_models.CatalogResponse{
		OperatorID: operatorID,
		Cities:     cities,
		Counts: map[string]int{
			"accommodations": len(catalog.accommodations),
			"activities":     len(catalog.activities),
			"restaurants":    len(catalog.restaurants),
			"transport":      len(transport),
			"guides":         len(guides),
		},
		Accommodations: catalog.accommodations,
		Activities:     catalog.activities,
		Restaurants:    catalog.restaurants,
		Transport:      transport,
		Guides:         guides,
	}, nil
}
