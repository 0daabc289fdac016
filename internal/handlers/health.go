package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kosarica/supplier-import/internal/database"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheck reports service health. The database is only checked when a
// pool is configured; the service works from a suppliers file without one.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if database.Pool() == nil {
		response.Database = "not configured"
		c.JSON(http.StatusOK, response)
		return
	}

	if err := database.Status(c.Request.Context()); err != nil {
		response.Status = "degraded"
		response.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	response.Database = "connected"
	c.JSON(http.StatusOK, response)
}
