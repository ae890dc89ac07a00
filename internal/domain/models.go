// Package domain contains the core domain models and types.
// These models represent the business logic contracts and are independent
// of any infrastructure concerns.
package domain

import "time"

// NotificationType represents the urgency tier of a notification.
type NotificationType string

const (
	TypeCritical NotificationType = "critical"
	TypeUrgent   NotificationType = "urgent"
	TypeRoutine  NotificationType = "routine"
	TypeSystem   NotificationType = "system"
)

// IsValid checks if the type value is one of the allowed values.
func (t NotificationType) IsValid() bool {
	switch t {
	case TypeCritical, TypeUrgent, TypeRoutine, TypeSystem:
		return true
	default:
		return false
	}
}

// Category represents the domain bucket a notification belongs to.
type Category string

const (
	CategoryEmergency      Category = "emergency"
	CategoryMedical        Category = "medical"
	CategoryAppointment    Category = "appointment"
	CategoryAdministrative Category = "administrative"
	CategoryReminder       Category = "reminder"
)

// IsValid checks if the category value is one of the allowed values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEmergency, CategoryMedical, CategoryAppointment,
		CategoryAdministrative, CategoryReminder:
		return true
	default:
		return false
	}
}

// ActionType represents the action suggested for a notification.
type ActionType string

const (
	ActionAccept      ActionType = "accept"
	ActionReview      ActionType = "review"
	ActionRespond     ActionType = "respond"
	ActionAcknowledge ActionType = "acknowledge"
)

// IsValid checks if the action value is one of the allowed values.
func (a ActionType) IsValid() bool {
	switch a {
	case ActionAccept, ActionReview, ActionRespond, ActionAcknowledge:
		return true
	default:
		return false
	}
}

// Metadata carries the optional structured fields attached to a
// notification. Unknown keys in the incoming payload are dropped on
// decode; the engine ignores them anyway.
type Metadata struct {
	PatientID       string   `json:"patient_id,omitempty"`
	DoctorID        string   `json:"doctor_id,omitempty"`
	AppointmentID   string   `json:"appointment_id,omitempty"`
	LabResultID     string   `json:"lab_result_id,omitempty"`
	UrgencyKeywords []string `json:"urgency_keywords,omitempty"`
	MedicalTerms    []string `json:"medical_terms,omitempty"`
}

// NotificationInput is the caller-supplied raw notification. It is never
// mutated by the engine.
type NotificationInput struct {
	// ID is an opaque unique identifier for the notification.
	ID string `json:"id" binding:"required" validate:"required"`

	// Title and Description are free text. All keyword matching runs
	// against their lower-cased concatenation.
	Title       string `json:"title"`
	Description string `json:"description"`

	// Sender is the display name; SenderRole is a free-text role label
	// such as "doctor", "nurse", "emergency" or "system".
	Sender     string `json:"sender"`
	SenderRole string `json:"sender_role"`

	// Timestamp is the UTC instant the notification was generated.
	Timestamp time.Time `json:"timestamp" binding:"required" validate:"required"`

	// Metadata holds optional structured hints. Nil is valid.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Signals are the three independent scores derived from a notification.
// Each is bounded by a single clamp applied at the end of its own
// accumulation: urgency in [0,50], medical relevance in [0,30], time
// relevance in [0,20].
type Signals struct {
	Urgency          float64 `json:"urgency"`
	MedicalRelevance float64 `json:"medical_relevance"`
	TimeRelevance    float64 `json:"time_relevance"`
}

// ProcessedNotification is the classified, prioritized output derived
// from a NotificationInput. The caller owns the returned value
// exclusively.
type ProcessedNotification struct {
	NotificationInput

	Type     NotificationType `json:"type"`
	Category Category         `json:"category"`

	// AIPriority is an integer in [1,5]; AIConfidence a float in [0,1].
	AIPriority   int     `json:"ai_priority"`
	AIConfidence float64 `json:"ai_confidence"`

	// AIInsight is a human-readable summary of the triage decision.
	// May be empty.
	AIInsight string `json:"ai_insight,omitempty"`

	UrgencyScore          float64 `json:"urgency_score"`
	MedicalRelevanceScore float64 `json:"medical_relevance_score"`
	TimeRelevanceScore    float64 `json:"time_relevance_score"`

	// IsGroupable reports whether this notification may be collapsed
	// with similar ones. Emergency and medical notifications never are.
	IsGroupable bool `json:"is_groupable"`

	// GroupID is set only when IsGroupable and smart grouping is
	// enabled. Format: "{category}-{processing date, ISO}".
	GroupID string `json:"group_id,omitempty"`

	// SuggestedRoles lists the staff roles this notification should be
	// routed to, in preference order.
	SuggestedRoles []string `json:"suggested_roles,omitempty"`

	ActionSuggested bool       `json:"action_suggested"`
	ActionType      ActionType `json:"action_type,omitempty"`

	// IsGrouped and GroupCount are set on a representative notification
	// that summarizes a collapsed group.
	IsGrouped  bool `json:"is_grouped,omitempty"`
	GroupCount int  `json:"group_count,omitempty"`
}

// TriageResponse wraps a single triage result with metadata.
type TriageResponse struct {
	// Success indicates whether triage completed successfully.
	Success bool `json:"success"`

	// Result contains the processed notification if successful.
	Result *ProcessedNotification `json:"result,omitempty"`

	// Error contains error details if triage failed.
	Error string `json:"error,omitempty"`

	// ProcessedAt is the timestamp when triage completed.
	ProcessedAt time.Time `json:"processed_at"`
}

// BatchItemError describes a batch member rejected before processing.
type BatchItemError struct {
	// Index is the position of the item in the submitted batch.
	Index int `json:"index"`

	// ID echoes the item's id when one was supplied.
	ID string `json:"id,omitempty"`

	// Error is the validation failure.
	Error string `json:"error"`
}

// BatchResponse wraps a batch triage result. Invalid items are skipped
// and reported in Skipped; the rest of the batch is processed normally.
type BatchResponse struct {
	Success     bool                    `json:"success"`
	Results     []ProcessedNotification `json:"results"`
	Skipped     []BatchItemError        `json:"skipped,omitempty"`
	Error       string                  `json:"error,omitempty"`
	ProcessedAt time.Time               `json:"processed_at"`
}

// UserAction records a user's response to a notification. It is
// observed and persisted but never feeds back into the scoring tables.
type UserAction struct {
	NotificationID string     `json:"notification_id"`
	Action         ActionType `json:"action" binding:"required"`
	ResponseTimeMs int64      `json:"response_time_ms"`
}
