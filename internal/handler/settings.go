package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
	"github.com/ssmith129/Medico-2.0-sub000/internal/service"
	"go.uber.org/zap"
)

// SettingsHandler exposes the engine settings.
type SettingsHandler struct {
	svc    *service.TriageService
	logger *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *service.TriageService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		svc:    svc,
		logger: logger.Named("settings_handler"),
	}
}

// HandleGet processes GET /api/v1/settings requests.
func (h *SettingsHandler) HandleGet(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Settings())
}

// HandleUpdate processes PATCH /api/v1/settings requests. The body is a
// typed partial update: absent fields keep their current values and
// category weights merge per key.
func (h *SettingsHandler) HandleUpdate(c *gin.Context) {
	var patch domain.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	updated, err := h.svc.UpdateSettings(patch)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidSettings) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.logger.Info("settings updated via API")
	c.JSON(http.StatusOK, updated)
}
