package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
	"github.com/ssmith129/Medico-2.0-sub000/internal/service"
	"go.uber.org/zap"
)

// ActionHandler records user responses to notifications.
type ActionHandler struct {
	svc    *service.TriageService
	logger *zap.Logger
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(svc *service.TriageService, logger *zap.Logger) *ActionHandler {
	return &ActionHandler{
		svc:    svc,
		logger: logger.Named("action_handler"),
	}
}

// actionRequest is the POST body for recording an action.
type actionRequest struct {
	Action         domain.ActionType `json:"action" binding:"required"`
	ResponseTimeMs int64             `json:"response_time_ms"`
}

// HandleRecord processes POST /api/v1/notifications/:id/action requests.
func (h *ActionHandler) HandleRecord(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	err := h.svc.RecordAction(c.Request.Context(), domain.UserAction{
		NotificationID: c.Param("id"),
		Action:         req.Action,
		ResponseTimeMs: req.ResponseTimeMs,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidAction) || errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// HistoryHandler exposes the audit trail.
type HistoryHandler struct {
	svc    *service.TriageService
	logger *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.TriageService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		svc:    svc,
		logger: logger.Named("history_handler"),
	}
}

// HandleList processes GET /api/v1/history requests.
func (h *HistoryHandler) HandleList(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, domain.ErrAuditDisabled) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   domain.ErrAuditDisabled.Error(),
			})
			return
		}
		h.logger.Error("history query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal error reading history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"records": records,
	})
}
