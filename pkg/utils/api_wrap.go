package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIError struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
	TraceID string `json:"trace_id,omitempty"`
}

func RespondJSON(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIError{
		Success: false,
		Detail:  message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidTripRequest):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrOperatorForbidden):
		RespondError(c, http.StatusForbidden, "Operator not allowed for this token")
	case errors.Is(err, ErrItineraryPipeline):
		log.Error("Itinerary pipeline error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Itinerary generation failed")
	default:
		log.Error("Unknown error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
