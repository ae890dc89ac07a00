// Package service contains the business logic layer.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
	"github.com/ssmith129/Medico-2.0-sub000/internal/store"
	"github.com/ssmith129/Medico-2.0-sub000/internal/triage"
	"github.com/ssmith129/Medico-2.0-sub000/pkg/redact"
	"go.uber.org/zap"
)

// TriageService orchestrates the triage pipeline:
// 1. Validate input at the boundary
// 2. Run the engine
// 3. Append the outcome to the audit trail (best effort)
//
// The audit store is optional; a nil store disables the trail.
type TriageService struct {
	engine       *triage.Engine
	auditStore   store.Store
	redactor     *redact.Redactor
	validate     *validator.Validate
	historyLimit int
	logger       *zap.Logger
}

// Option configures a TriageService.
type Option func(*TriageService)

// WithAuditStore attaches an audit trail.
func WithAuditStore(s store.Store) Option {
	return func(t *TriageService) { t.auditStore = s }
}

// WithHistoryLimit caps history queries.
func WithHistoryLimit(limit int) Option {
	return func(t *TriageService) { t.historyLimit = limit }
}

// NewTriageService creates a TriageService with all dependencies.
func NewTriageService(engine *triage.Engine, redactor *redact.Redactor, logger *zap.Logger, opts ...Option) *TriageService {
	s := &TriageService{
		engine:       engine,
		redactor:     redactor,
		validate:     validator.New(),
		historyLimit: 100,
		logger:       logger.Named("triage_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TriageOne validates and triages a single notification.
func (s *TriageService) TriageOne(ctx context.Context, in domain.NotificationInput) (*domain.ProcessedNotification, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	start := time.Now()
	out := s.engine.ProcessOne(in)

	s.logger.Info("notification triaged",
		zap.String("notification_id", out.ID),
		zap.String("category", string(out.Category)),
		zap.String("type", string(out.Type)),
		zap.Int("priority", out.AIPriority),
		zap.Float64("confidence", out.AIConfidence),
		zap.String("title", s.redactor.Summary(out.NotificationInput.Title, 80)),
		zap.Duration("duration", time.Since(start)),
	)

	s.appendTriageAudit(ctx, []domain.ProcessedNotification{out})
	return &out, nil
}

// TriageBatch validates each item, skips invalid ones with per-item
// errors, and triages the rest as one batch (grouping and sorting
// included). One malformed item never aborts the whole batch.
func (s *TriageService) TriageBatch(ctx context.Context, ins []domain.NotificationInput) (*domain.BatchResponse, error) {
	if len(ins) == 0 {
		return nil, domain.WrapError("triage.batch", domain.ErrEmptyBatch)
	}

	start := time.Now()
	valid := make([]domain.NotificationInput, 0, len(ins))
	var skipped []domain.BatchItemError

	for i, in := range ins {
		if err := s.validateInput(&in); err != nil {
			s.logger.Warn("skipping invalid batch item",
				zap.Int("index", i),
				zap.String("notification_id", in.ID),
				zap.Error(err),
			)
			skipped = append(skipped, domain.BatchItemError{
				Index: i,
				ID:    in.ID,
				Error: err.Error(),
			})
			continue
		}
		valid = append(valid, in)
	}

	results := s.engine.ProcessBatch(valid)

	s.logger.Info("batch triaged",
		zap.Int("submitted", len(ins)),
		zap.Int("processed", len(valid)),
		zap.Int("skipped", len(skipped)),
		zap.Int("returned", len(results)),
		zap.Duration("duration", time.Since(start)),
	)

	s.appendTriageAudit(ctx, results)

	return &domain.BatchResponse{
		Success:     true,
		Results:     results,
		Skipped:     skipped,
		ProcessedAt: time.Now(),
	}, nil
}

// RecordAction accepts a user's response to a notification and appends
// it to the audit trail. The engine observes it but never learns from
// it in this design.
func (s *TriageService) RecordAction(ctx context.Context, action domain.UserAction) error {
	if action.NotificationID == "" {
		return domain.WrapError("triage.action", fmt.Errorf("%w: notification id required", domain.ErrInvalidInput))
	}
	if !action.Action.IsValid() {
		return domain.WrapError("triage.action", fmt.Errorf("%w: %q", domain.ErrInvalidAction, action.Action))
	}

	s.engine.RecordUserAction(action.NotificationID, action.Action,
		time.Duration(action.ResponseTimeMs)*time.Millisecond)

	if s.auditStore != nil {
		err := s.auditStore.SaveAction(ctx, store.ActionRecord{
			NotificationID: action.NotificationID,
			Action:         string(action.Action),
			ResponseTimeMs: action.ResponseTimeMs,
		})
		if err != nil {
			s.logger.Error("failed to persist user action", zap.Error(err))
		}
	}
	return nil
}

// Settings returns the current engine settings snapshot.
func (s *TriageService) Settings() domain.AISettings {
	return s.engine.Settings()
}

// UpdateSettings applies a typed partial update to the engine settings.
func (s *TriageService) UpdateSettings(patch domain.SettingsPatch) (domain.AISettings, error) {
	updated, err := s.engine.UpdateSettings(patch)
	if err != nil {
		return domain.AISettings{}, domain.WrapError("triage.settings", err)
	}
	return updated, nil
}

// History lists recent audit records, newest first.
func (s *TriageService) History(ctx context.Context, limit int) ([]store.TriageRecord, error) {
	if s.auditStore == nil {
		return nil, domain.WrapError("triage.history", domain.ErrAuditDisabled)
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return s.auditStore.ListRecent(ctx, limit)
}

// validateInput rejects malformed notifications before they reach the
// engine. The engine itself assumes well-formed input.
func (s *TriageService) validateInput(in *domain.NotificationInput) error {
	if err := s.validate.Struct(in); err != nil {
		return domain.WrapError("triage.validate", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}
	return nil
}

// appendTriageAudit persists outcomes without ever failing the triage
// call: audit problems are logged and swallowed.
func (s *TriageService) appendTriageAudit(ctx context.Context, results []domain.ProcessedNotification) {
	if s.auditStore == nil || len(results) == 0 {
		return
	}

	records := make([]store.TriageRecord, 0, len(results))
	for _, r := range results {
		records = append(records, store.TriageRecord{
			NotificationID: r.ID,
			Category:       string(r.Category),
			Type:           string(r.Type),
			Priority:       r.AIPriority,
			Confidence:     r.AIConfidence,
			Insight:        r.AIInsight,
			GroupID:        r.GroupID,
			IsGrouped:      r.IsGrouped,
			GroupCount:     r.GroupCount,
			ProcessedAt:    time.Now().UTC(),
		})
	}

	if err := s.auditStore.SaveTriage(ctx, records); err != nil {
		s.logger.Error("failed to persist triage records", zap.Error(err))
	}
}
