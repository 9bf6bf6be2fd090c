package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "TQB AI Itinerary Service"
	ServiceVersion = "1.0.0"
)

type HealthController struct {
	port string
}

func NewHealthController(port string) *HealthController {
	return &HealthController{port: port}
}

func (h *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
		"port":    h.port,
	})
}
