package controllers_fx

import (
	"github.com/fatihtunali/travelquotebot/internal/api/controllers"
	"github.com/fatihtunali/travelquotebot/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(provideHealthController))

func provideHealthController(cfg config.Config) *controllers.HealthController {
	return controllers.NewHealthController(cfg.Port)
}
