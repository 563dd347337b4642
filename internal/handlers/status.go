package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strixcodecipher/relicsneb/internal/models"
	"github.com/strixcodecipher/relicsneb/internal/service"
)

const (
	errCreateStatusCheck = "failed to create status check"
	errListStatusChecks  = "failed to load status checks"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Create status check
// @Tags         status
// @Accept       json
// @Produce      json
// @Param        body  body      models.StatusCheckCreate  true  "Client name"
// @Success      200   {object}  models.StatusCheck
// @Failure      422   {object}  validationResponse
// @Failure      500   {object}  map[string]string
// @Router       /api/status [post]
func (h *Handler) createStatusCheck(c *gin.Context) {
	var input models.StatusCheckCreate
	if ok := h.bindJSONOrValidationError(c, &input); !ok {
		return
	}

	sc, err := h.services.CreateStatusCheck(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrClientNameRequired) {
			c.JSON(http.StatusUnprocessableEntity, newValidationResponse(
				fieldError{Field: "client_name", Reason: "required"},
			))
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateStatusCheck, "status_check_create_failed", err)
		return
	}

	c.JSON(http.StatusOK, sc)
}

// @Summary      List status checks
// @Description  Returns at most 1000 records in store order; no chronological guarantee.
// @Tags         status
// @Produce      json
// @Success      200  {array}   models.StatusCheck
// @Failure      500  {object}  map[string]string
// @Router       /api/status [get]
func (h *Handler) listStatusChecks(c *gin.Context) {
	list, err := h.services.ListStatusChecks(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListStatusChecks, "status_check_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
