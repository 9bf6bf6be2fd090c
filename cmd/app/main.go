package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fatihtunali/travelquotebot/cmd/fx/catalog_fx"
	"github.com/fatihtunali/travelquotebot/cmd/fx/config_fx"
	"github.com/fatihtunali/travelquotebot/cmd/fx/controllers_fx"
	"github.com/fatihtunali/travelquotebot/cmd/fx/db_fx"
	"github.com/fatihtunali/travelquotebot/cmd/fx/itinerary_fx"
	"github.com/fatihtunali/travelquotebot/cmd/fx/memcache_fx"
	"github.com/fatihtunali/travelquotebot/cmd/fx/prompt_fx"
	"github.com/fatihtunali/travelquotebot/internal/api/controllers"
	"github.com/fatihtunali/travelquotebot/internal/config"
	"github.com/fatihtunali/travelquotebot/pkg/logger"
	"github.com/fatihtunali/travelquotebot/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		catalog_fx.Module,
		prompt_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg config.Config,
	log *zap.Logger,
	itineraryController *controllers.ItineraryController,
	healthController *controllers.HealthController) *gin.Engine {

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	RegisterRoutes(r, cfg, itineraryController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg config.Config,
	itineraryController *controllers.ItineraryController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Health)

	tqb := r.Group("/tqb-ai", middleware.OperatorAuthMiddleware(cfg.JWTSecret))
	tqb.POST("/generate-itinerary",
		middleware.GenerationRateLimit(cfg.GenerationRatePerMinute),
		itineraryController.GenerateItinerary)
	tqb.GET("/operators/:operatorId/catalog", itineraryController.OperatorCatalog)
}
