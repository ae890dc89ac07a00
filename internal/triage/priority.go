package triage

import (
	"math"
	"strings"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

// Synthesizer blends the signal scores into a 1-5 priority, confidence
// value, insight text, suggested action and suggested roles.
type Synthesizer struct {
	tables *Tables
}

// NewSynthesizer creates a Synthesizer over the given tables.
func NewSynthesizer(tables *Tables) *Synthesizer {
	return &Synthesizer{tables: tables}
}

// Priority computes the final 1-5 priority.
//
// raw = 0.5*urgency + 0.3*medicalRelevance + 0.2*timeRelevance, scaled
// by the category weight (missing weight reads as 100, a no-op) and,
// when learning mode adapts to behavior, by the engagement factor
// 0.7 + 0.3*engagement. The result is blended toward the neutral
// baseline 2.5 by PriorityWeight and divided by 10 before rounding; the
// divisor is what maps the 0-50-ish blended range onto 1-5.
//
// Critical notifications are floored afterwards (4, or 5 when urgency
// exceeds 35) so that a code-blue page can never land mid-scale.
func (s *Synthesizer) Priority(sig domain.Signals, cat domain.Category, typ domain.NotificationType, settings *domain.AISettings) int {
	raw := 0.5*sig.Urgency + 0.3*sig.MedicalRelevance + 0.2*sig.TimeRelevance

	weight := 100
	if w, ok := settings.CategoryWeights[cat]; ok {
		weight = w
	}
	raw *= float64(weight) / 100

	if settings.LearningMode.Enabled && settings.LearningMode.AdaptToBehavior {
		engagement, ok := s.tables.Engagement[cat]
		if !ok {
			engagement = 0.5
		}
		raw *= 0.7 + 0.3*engagement
	}

	pw := float64(settings.PriorityWeight) / 100
	blended := raw*pw + 2.5*(1-pw)

	priority := int(math.Round(blended / 10))
	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}

	if typ == domain.TypeCritical {
		floor := 4
		if sig.Urgency > 35 {
			floor = 5
		}
		if priority < floor {
			priority = floor
		}
	}

	return priority
}

// Confidence derives the [0,1] confidence from urgency plus medical
// relevance. Thresholds are exclusive lower bounds, highest first.
func (s *Synthesizer) Confidence(sig domain.Signals) float64 {
	total := sig.Urgency + sig.MedicalRelevance
	switch {
	case total > 40:
		return 0.95
	case total > 30:
		return 0.85
	case total > 20:
		return 0.75
	case total > 10:
		return 0.65
	default:
		return 0.5
	}
}

// Insight assembles the human-readable triage summary from fixed phrase
// templates, joined with ". ".
func (s *Synthesizer) Insight(sig domain.Signals, cat domain.Category, typ domain.NotificationType, settings *domain.AISettings) string {
	var parts []string

	switch {
	case typ == domain.TypeCritical:
		msg := "Critical: Requires immediate medical intervention"
		if sig.Urgency > 35 {
			msg += ", within 10 minutes"
		} else {
			msg += ", within 30 minutes"
		}
		parts = append(parts, msg)
	case typ == domain.TypeUrgent && cat == domain.CategoryMedical:
		parts = append(parts, "Medical attention needed: Contact patient within 2 hours")
	case typ == domain.TypeUrgent && cat == domain.CategoryAppointment:
		parts = append(parts, "High impact: Affects multiple patients and schedules")
	case typ == domain.TypeRoutine && cat == domain.CategoryAppointment:
		parts = append(parts, "Routine booking cluster - can be processed in batch")
	default:
		parts = append(parts, "Standard priority - process when convenient")
	}

	if settings.LearningMode.Enabled {
		if avg, ok := s.tables.AvgResponseMinutes[cat]; ok && avg < 30 {
			parts = append(parts, "You typically respond to these quickly")
		}
	}

	return strings.Join(parts, ". ")
}

// SuggestAction scans the notification text against the ordered action
// keyword table; the first match wins. With no match, critical
// notifications ask for a response, appointments for acceptance, and
// urgent medical ones for review. Anything else gets no action.
func (s *Synthesizer) SuggestAction(in *domain.NotificationInput, cat domain.Category, typ domain.NotificationType) (domain.ActionType, bool) {
	text := matchText(in)

	for _, ak := range s.tables.ActionKeywords {
		if strings.Contains(text, ak.Keyword) {
			return ak.Action, true
		}
	}

	switch {
	case typ == domain.TypeCritical:
		return domain.ActionRespond, true
	case cat == domain.CategoryAppointment:
		return domain.ActionAccept, true
	case cat == domain.CategoryMedical && typ == domain.TypeUrgent:
		return domain.ActionReview, true
	default:
		return "", false
	}
}

// SuggestRoles returns the staff roles for the category, filtered to
// the user's roles when role-based filtering is on. The catch-all "all"
// role always survives filtering.
func (s *Synthesizer) SuggestRoles(cat domain.Category, settings *domain.AISettings) []string {
	roles := append([]string(nil), s.tables.RolesByCategory[cat]...)
	if !settings.RoleFiltering.Enabled {
		return roles
	}

	allowed := make(map[string]bool, len(settings.RoleFiltering.UserRoles))
	for _, r := range settings.RoleFiltering.UserRoles {
		allowed[r] = true
	}

	filtered := roles[:0]
	for _, r := range roles {
		if r == "all" || allowed[r] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
