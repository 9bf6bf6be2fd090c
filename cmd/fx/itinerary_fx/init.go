package itinerary_fx

import (
	"github.com/fatihtunali/travelquotebot/internal/services"
	"go.uber.org/fx"
)

var Module = fx.Provide(services.NewItineraryService)
