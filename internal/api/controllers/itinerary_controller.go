package controllers

import (
	"net/http"

	"github.com/fatihtunali/travelquotebot/internal/models/request_models"
	"github.com/fatihtunali/travelquotebot/internal/models/response_models"
	"github.com/fatihtunali/travelquotebot/internal/services"
	"github.com/fatihtunali/travelquotebot/pkg/middleware"
	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// POST /tqb-ai/generate-itinerary
func (ic *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if !middleware.OperatorAllowed(c, req.OperatorID) {
		utils.HandleServiceError(c, ic.logger, utils.ErrOperatorForbidden)
		return
	}

	itinerary, err := ic.itineraryService.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	utils.RespondJSON(c, response_models.GenerateItineraryResponse{
		Success:   true,
		Itinerary: itinerary,
	})
}

// GET /tqb-ai/operators/:operatorId/catalog?cities=Istanbul&cities=Cappadocia
func (ic *ItineraryController) OperatorCatalog(c *gin.Context) {
	operatorID := c.Param("operatorId")
	if !middleware.OperatorAllowed(c, operatorID) {
		utils.HandleServiceError(c, ic.logger, utils.ErrOperatorForbidden)
		return
	}

	catalog, err := ic.itineraryService.OperatorCatalog(c.Request.Context(), operatorID, c.QueryArray("cities"))
	if err != nil {
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	utils.RespondJSON(c, catalog)
}
