package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Spawn prediction
// @Description  Current and upcoming relic spawns. Values are placeholders; clients compute the live schedule.
// @Tags         spawns
// @Produce      json
// @Success      200  {object}  models.SpawnPrediction
// @Router       /api/spawn-prediction [get]
func (h *Handler) getSpawnPrediction(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.PredictSpawns(c.Request.Context()))
}
