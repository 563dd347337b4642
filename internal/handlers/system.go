package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

const (
	apiName    = "Nebula Relics Tracker API"
	apiVersion = "1.0.0"

	statusHealthy = "healthy"
)

// @Summary      API root
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.APIInfo
// @Router       /api [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIInfo{Message: apiName, Version: apiVersion})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.Health
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, models.Health{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC(),
	})
}
