package triage

import (
	"strings"
	"time"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

// Extractor derives the three independent signal scores from a
// notification. Pure and total: it never fails, and missing optional
// fields contribute nothing.
type Extractor struct {
	tables *Tables
}

// NewExtractor creates an Extractor scoring against the given tables.
func NewExtractor(tables *Tables) *Extractor {
	return &Extractor{tables: tables}
}

// Score computes urgency, medical relevance and time relevance for the
// notification as of now. The three accumulations are independent; each
// is clamped once, at the end of its own accumulation.
func (e *Extractor) Score(in *domain.NotificationInput, now time.Time) domain.Signals {
	text := matchText(in)
	age := now.Sub(in.Timestamp)
	if age < 0 {
		age = 0
	}

	return domain.Signals{
		Urgency:          e.urgencyScore(in, text, age),
		MedicalRelevance: e.medicalRelevanceScore(in, text),
		TimeRelevance:    e.timeRelevanceScore(text, age, now),
	}
}

// matchText is the lower-cased "title description" concatenation all
// keyword matching runs against.
func matchText(in *domain.NotificationInput) string {
	return strings.ToLower(in.Title + " " + in.Description)
}

func (e *Extractor) urgencyScore(in *domain.NotificationInput, text string, age time.Duration) float64 {
	var score float64

	for _, kw := range e.tables.UrgencyKeywords {
		if strings.Contains(text, kw.Keyword) {
			score += kw.Weight
		}
	}
	for _, kw := range e.tables.MedicalUrgencyKeywords {
		if strings.Contains(text, kw.Keyword) {
			score += kw.Weight
		}
	}

	switch {
	case age < 30*time.Minute:
		score += 3
	case age < 2*time.Hour:
		score += 2
	case age > 24*time.Hour:
		score -= 2
	}

	// Exact role match, not substring: "head nurse" earns nothing.
	switch strings.ToLower(strings.TrimSpace(in.SenderRole)) {
	case "emergency":
		score += 5
	case "doctor", "physician":
		score += 3
	case "nurse":
		score += 2
	}

	if in.Metadata != nil {
		score += 2 * float64(len(in.Metadata.UrgencyKeywords))
	}

	return clamp(score, 0, 50)
}

func (e *Extractor) medicalRelevanceScore(in *domain.NotificationInput, text string) float64 {
	var score float64

	for _, term := range e.tables.MedicalTerms {
		if strings.Contains(text, term) {
			score += 2
		}
	}

	if m := in.Metadata; m != nil {
		if m.PatientID != "" {
			score += 5
		}
		if m.DoctorID != "" {
			score += 3
		}
		if m.LabResultID != "" {
			score += 4
		}
		score += 1.5 * float64(len(m.MedicalTerms))
	}

	for _, dept := range e.tables.DepartmentKeywords {
		if strings.Contains(text, dept) {
			score += 3
		}
	}

	return clamp(score, 0, 30)
}

func (e *Extractor) timeRelevanceScore(text string, age time.Duration, now time.Time) float64 {
	score := 10.0

	hour := now.Hour()
	if e.tables.PreferredHours[hour] {
		score += 5
	}
	if (hour < 6 || hour > 22) &&
		!strings.Contains(text, "emergency") && !strings.Contains(text, "critical") {
		score -= 8
	}

	// Mutually exclusive recency tiers, most specific first.
	switch {
	case age < 5*time.Minute:
		score += 5
	case age < 30*time.Minute:
		score += 3
	case age < 2*time.Hour:
		score += 1
	case age > 24*time.Hour:
		score -= 5
	}

	return clamp(score, 0, 20)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
