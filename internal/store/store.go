// Package store persists triage outcomes and user actions as an audit
// trail. The engine never reads it back: scoring stays a pure function
// of input and settings, and the trail exists for operators and for a
// future learning pass.
package store

import (
	"context"
	"time"
)

// TriageRecord is one persisted triage outcome.
type TriageRecord struct {
	ID             string    `json:"id"`
	NotificationID string    `json:"notification_id"`
	Category       string    `json:"category"`
	Type           string    `json:"type"`
	Priority       int       `json:"priority"`
	Confidence     float64   `json:"confidence"`
	Insight        string    `json:"insight,omitempty"`
	GroupID        string    `json:"group_id,omitempty"`
	IsGrouped      bool      `json:"is_grouped,omitempty"`
	GroupCount     int       `json:"group_count,omitempty"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// ActionRecord is one persisted user action.
type ActionRecord struct {
	ID             string    `json:"id"`
	NotificationID string    `json:"notification_id"`
	Action         string    `json:"action"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// CategoryStat summarizes the trail for one category.
type CategoryStat struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	AvgPriority float64 `json:"avg_priority"`
}

// Store is the audit trail contract.
type Store interface {
	// SaveTriage appends triage outcomes. Best effort from the caller's
	// point of view; a failed append must not fail the triage call.
	SaveTriage(ctx context.Context, records []TriageRecord) error

	// SaveAction appends one user action.
	SaveAction(ctx context.Context, record ActionRecord) error

	// ListRecent returns up to limit triage records, newest first.
	ListRecent(ctx context.Context, limit int) ([]TriageRecord, error)

	// Stats aggregates the trail per category.
	Stats(ctx context.Context) ([]CategoryStat, error)

	// Close releases the underlying database.
	Close() error
}
