// Package redact masks personally identifiable information in
// notification text before it reaches logs or the audit trail.
package redact

import (
	"regexp"
	"strings"
)

// mask is what matched spans are replaced with.
const mask = "[REDACTED]"

// Redactor masks PII in free text.
type Redactor struct {
	patterns []*regexp.Regexp
}

// Pattern definitions for healthcare PII that must not leak into logs.
var defaultPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),

	// Phone numbers (international and US formats)
	regexp.MustCompile(`(\+?\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),

	// US social security numbers
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),

	// Medical record / patient identifiers referenced inline
	regexp.MustCompile(`(?i)\b(mrn|medical record (number|no\.?)|patient[-_ ]?id)\s*[:#]?\s*[a-zA-Z0-9-]{4,}`),

	// Insurance member and policy numbers
	regexp.MustCompile(`(?i)\b(policy|member)\s*(number|no\.?|#)\s*[:#]?\s*[a-zA-Z0-9-]{5,}`),

	// Dates of birth spelled out next to a DOB marker
	regexp.MustCompile(`(?i)\b(dob|date of birth)\s*[:#]?\s*\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`),
}

// Stats reports what a redaction pass did.
type Stats struct {
	// OriginalLength is the text length before redaction.
	OriginalLength int

	// Matches is the number of spans masked.
	Matches int
}

// New creates a Redactor with the default patterns.
func New() *Redactor {
	return &Redactor{patterns: defaultPatterns}
}

// NewWithPatterns creates a Redactor with custom patterns.
func NewWithPatterns(patterns []*regexp.Regexp) *Redactor {
	return &Redactor{patterns: patterns}
}

// Redact masks all PII spans in the text.
func (r *Redactor) Redact(text string) string {
	out, _ := r.RedactWithStats(text)
	return out
}

// RedactWithStats masks all PII spans and reports how many were found.
func (r *Redactor) RedactWithStats(text string) (string, Stats) {
	stats := Stats{OriginalLength: len(text)}

	for _, pattern := range r.patterns {
		text = pattern.ReplaceAllStringFunc(text, func(string) string {
			stats.Matches++
			return mask
		})
	}

	return text, stats
}

// Clean reports whether the text contains no maskable spans.
func (r *Redactor) Clean(text string) bool {
	for _, pattern := range r.patterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return true
}

// Summary returns a short log-safe excerpt of the text: redacted and
// truncated to max runes.
func (r *Redactor) Summary(text string, max int) string {
	text = r.Redact(strings.TrimSpace(text))
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
