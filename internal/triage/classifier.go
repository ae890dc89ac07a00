package triage

import (
	"strings"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

// Classifier maps signal scores to a discrete category and type using
// ordered rule chains. The first matching rule wins; there is no
// fallthrough re-evaluation.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Categorize assigns the domain bucket. Rules are evaluated in priority
// order: emergency, medical, appointment, reminder, administrative.
func (c *Classifier) Categorize(in *domain.NotificationInput, sig domain.Signals) domain.Category {
	text := matchText(in)
	m := in.Metadata

	switch {
	case sig.Urgency > 25 ||
		strings.Contains(text, "emergency") ||
		strings.Contains(text, "critical"):
		return domain.CategoryEmergency

	case sig.MedicalRelevance > 15 ||
		(m != nil && (m.PatientID != "" || m.LabResultID != "")) ||
		strings.Contains(text, "patient") ||
		strings.Contains(text, "medical"):
		return domain.CategoryMedical

	case strings.Contains(text, "appointment") ||
		strings.Contains(text, "schedule") ||
		strings.Contains(text, "booking") ||
		(m != nil && m.AppointmentID != ""):
		return domain.CategoryAppointment

	case strings.Contains(text, "reminder") ||
		strings.Contains(text, "due") ||
		strings.Contains(text, "upcoming"):
		return domain.CategoryReminder

	default:
		return domain.CategoryAdministrative
	}
}

// TypeOf assigns the urgency tier for an already-categorized
// notification.
func (c *Classifier) TypeOf(sig domain.Signals, cat domain.Category) domain.NotificationType {
	switch {
	case cat == domain.CategoryEmergency || sig.Urgency > 30:
		return domain.TypeCritical

	case sig.Urgency > 20 ||
		sig.MedicalRelevance > 20 ||
		(cat == domain.CategoryMedical && sig.Urgency > 15):
		return domain.TypeUrgent

	case cat == domain.CategoryAdministrative && sig.Urgency < 5:
		return domain.TypeSystem

	default:
		return domain.TypeRoutine
	}
}
