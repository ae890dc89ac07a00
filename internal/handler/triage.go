// Package handler contains HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
	"github.com/ssmith129/Medico-2.0-sub000/internal/service"
	"go.uber.org/zap"
)

// TriageHandler handles notification triage requests.
type TriageHandler struct {
	svc    *service.TriageService
	logger *zap.Logger
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(svc *service.TriageService, logger *zap.Logger) *TriageHandler {
	return &TriageHandler{
		svc:    svc,
		logger: logger.Named("triage_handler"),
	}
}

// HandleOne processes POST /api/v1/notifications/triage requests.
func (h *TriageHandler) HandleOne(c *gin.Context) {
	var in domain.NotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, domain.TriageResponse{
			Success:     false,
			Error:       "Invalid request body: " + err.Error(),
			ProcessedAt: time.Now(),
		})
		return
	}

	result, err := h.svc.TriageOne(c.Request.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, domain.TriageResponse{
			Success:     false,
			Error:       err.Error(),
			ProcessedAt: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.TriageResponse{
		Success:     true,
		Result:      result,
		ProcessedAt: time.Now(),
	})
}

// batchRequest is the POST body for batch triage.
type batchRequest struct {
	Notifications []domain.NotificationInput `json:"notifications" binding:"required"`
}

// HandleBatch processes POST /api/v1/notifications/triage-batch requests.
func (h *TriageHandler) HandleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.BatchResponse{
			Success:     false,
			Error:       "Invalid request body: " + err.Error(),
			ProcessedAt: time.Now(),
		})
		return
	}

	resp, err := h.svc.TriageBatch(c.Request.Context(), req.Notifications)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyBatch) {
			status = http.StatusBadRequest
		}
		h.logger.Warn("batch triage failed", zap.Error(err))
		c.JSON(status, domain.BatchResponse{
			Success:     false,
			Error:       err.Error(),
			ProcessedAt: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger.Named("health_handler"),
	}
}

// Handle processes GET /health requests.
func (h *HealthHandler) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready processes GET /ready requests. The engine is in-process and
// always ready once constructed.
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
