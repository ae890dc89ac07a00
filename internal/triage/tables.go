// Package triage implements the notification triage engine: weighted
// keyword scoring, ordered classification rules, priority synthesis and
// batch grouping. Everything is deterministic; the "AI" here is rule
// scoring, not a model.
package triage

import "github.com/ssmith129/Medico-2.0-sub000/internal/domain"

// WeightedKeyword maps a keyword to its score contribution. Keywords
// match as substrings of the lower-cased notification text.
type WeightedKeyword struct {
	Keyword string
	Weight  float64
}

// ActionKeyword maps a keyword to the action it suggests. Order matters:
// the first matching entry wins.
type ActionKeyword struct {
	Keyword string
	Action  domain.ActionType
}

// Tables holds the read-only reference data the engine scores against.
// Tables are injected at construction so they can be tuned and tested
// without code changes; the engine never mutates them.
type Tables struct {
	// UrgencyKeywords and MedicalUrgencyKeywords both feed the urgency
	// score; a notification matching entries from both accumulates both.
	UrgencyKeywords        []WeightedKeyword
	MedicalUrgencyKeywords []WeightedKeyword

	// MedicalTerms each contribute 2 points of medical relevance.
	MedicalTerms []string

	// DepartmentKeywords each contribute 3 points of medical relevance.
	DepartmentKeywords []string

	// PreferredHours are the local hours-of-day that earn a time
	// relevance bonus.
	PreferredHours map[int]bool

	// Engagement is the static per-category engagement profile used
	// when learning mode adapts to behavior. Missing categories read
	// as 0.5.
	Engagement map[domain.Category]float64

	// AvgResponseMinutes is the static per-category historical response
	// time, in minutes.
	AvgResponseMinutes map[domain.Category]float64

	// RolesByCategory suggests staff roles per category, in order.
	RolesByCategory map[domain.Category][]string

	// ActionKeywords is scanned in order; first match wins.
	ActionKeywords []ActionKeyword

	// GroupableCategories may be collapsed by the batch grouper.
	// Emergency and medical are deliberately absent.
	GroupableCategories map[domain.Category]bool
}

// DefaultTables returns the built-in reference data.
func DefaultTables() *Tables {
	return &Tables{
		UrgencyKeywords: []WeightedKeyword{
			{"asap", 9},
			{"immediately", 9},
			{"now", 8},
			{"urgent", 8},
			{"priority", 7},
			{"important", 6},
			{"attention", 5},
			{"please", 4},
			{"when possible", 2},
			{"convenient", 1},
		},
		MedicalUrgencyKeywords: []WeightedKeyword{
			{"emergency", 10},
			{"critical", 10},
			{"urgent", 9},
			{"stat", 9},
			{"immediate", 9},
			{"cardiac", 8},
			{"stroke", 8},
			{"bleeding", 8},
			{"unconscious", 8},
			{"respiratory", 7},
			{"pain", 6},
			{"abnormal", 6},
			{"elevated", 5},
			{"concern", 4},
			{"follow-up", 3},
			{"routine", 2},
			{"scheduled", 2},
			{"reminder", 1},
		},
		MedicalTerms: []string{
			"patient", "diagnosis", "treatment", "medication", "prescription",
			"lab", "test", "result", "vital", "surgery", "procedure",
			"consultation", "examination", "symptom", "condition", "blood",
			"pressure", "heart", "lung", "brain", "kidney",
		},
		DepartmentKeywords: []string{
			"cardiology", "emergency", "icu", "surgery", "pediatrics",
		},
		PreferredHours: map[int]bool{
			8: true, 9: true, 10: true, 11: true,
			14: true, 15: true, 16: true,
		},
		Engagement: map[domain.Category]float64{
			domain.CategoryEmergency:      0.95,
			domain.CategoryMedical:        0.85,
			domain.CategoryAppointment:    0.75,
			domain.CategoryAdministrative: 0.45,
			domain.CategoryReminder:       0.30,
		},
		AvgResponseMinutes: map[domain.Category]float64{
			domain.CategoryEmergency:      2,
			domain.CategoryMedical:        15,
			domain.CategoryAppointment:    60,
			domain.CategoryAdministrative: 240,
			domain.CategoryReminder:       1440,
		},
		RolesByCategory: map[domain.Category][]string{
			domain.CategoryEmergency:      {"doctor", "nurse", "emergency-staff"},
			domain.CategoryMedical:        {"doctor", "nurse"},
			domain.CategoryAppointment:    {"admin", "receptionist", "doctor"},
			domain.CategoryAdministrative: {"admin", "manager"},
			domain.CategoryReminder:       {"all"},
		},
		ActionKeywords: []ActionKeyword{
			{"book", domain.ActionAccept},
			{"schedule", domain.ActionAccept},
			{"confirm", domain.ActionAccept},
			{"approve", domain.ActionAccept},
			{"review", domain.ActionReview},
			{"check", domain.ActionReview},
			{"examine", domain.ActionReview},
			{"contact", domain.ActionRespond},
			{"call", domain.ActionRespond},
			{"notify", domain.ActionRespond},
			{"acknowledge", domain.ActionAcknowledge},
			{"received", domain.ActionAcknowledge},
		},
		GroupableCategories: map[domain.Category]bool{
			domain.CategoryAppointment:    true,
			domain.CategoryReminder:       true,
			domain.CategoryAdministrative: true,
		},
	}
}
