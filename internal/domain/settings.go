// Package domain contains the core domain models and types.
package domain

import "fmt"

// RoleFiltering narrows suggested roles to the ones the current user
// actually holds. The catch-all "all" role is never filtered out.
type RoleFiltering struct {
	Enabled          bool     `json:"enabled"`
	UserRoles        []string `json:"user_roles"`
	DepartmentFilter []string `json:"department_filter"`
}

// LearningMode gates whether the static user-behavior profile modulates
// priority and insight text. No online learning happens: the profile is
// a read-only reference table.
type LearningMode struct {
	Enabled         bool `json:"enabled"`
	AdaptToBehavior bool `json:"adapt_to_behavior"`
}

// AISettings is the engine configuration. It is held by the engine and
// may be updated between calls; every triage call reads the settings
// snapshot current at call time.
type AISettings struct {
	// Enabled short-circuits the engine to a fixed neutral output when
	// false (routine/administrative, priority 3, confidence 0.5).
	Enabled bool `json:"enabled"`

	// PriorityWeight (0-100) blends the computed priority against the
	// neutral baseline of 2.5. 100 means fully computed, 0 fully neutral.
	PriorityWeight int `json:"priority_weight"`

	// CategoryWeights (0-100 each) scale the raw signal blend per
	// category. A missing category is treated as 100 (no-op).
	CategoryWeights map[Category]int `json:"category_weights"`

	// SmartGrouping enables collapsing similar notifications.
	SmartGrouping bool `json:"smart_grouping"`

	// GroupSimilarThreshold (0-100) is advisory only: grouping is exact
	// category+day and does not consume it. Kept for behavioral fidelity
	// with the settings surface it came from.
	GroupSimilarThreshold int `json:"group_similar_threshold"`

	RoleFiltering RoleFiltering `json:"role_filtering"`
	LearningMode  LearningMode  `json:"learning_mode"`
}

// DefaultAISettings returns the settings the engine ships with.
func DefaultAISettings() AISettings {
	return AISettings{
		Enabled:        true,
		PriorityWeight: 70,
		CategoryWeights: map[Category]int{
			CategoryEmergency:      100,
			CategoryMedical:        85,
			CategoryAppointment:    70,
			CategoryAdministrative: 50,
			CategoryReminder:       40,
		},
		SmartGrouping:         true,
		GroupSimilarThreshold: 75,
		RoleFiltering: RoleFiltering{
			Enabled: false,
		},
		LearningMode: LearningMode{
			Enabled:         true,
			AdaptToBehavior: true,
		},
	}
}

// Clone returns a deep copy. Settings snapshots handed to callers must
// not alias the engine's held maps and slices.
func (s AISettings) Clone() AISettings {
	out := s
	if s.CategoryWeights != nil {
		out.CategoryWeights = make(map[Category]int, len(s.CategoryWeights))
		for k, v := range s.CategoryWeights {
			out.CategoryWeights[k] = v
		}
	}
	out.RoleFiltering.UserRoles = append([]string(nil), s.RoleFiltering.UserRoles...)
	out.RoleFiltering.DepartmentFilter = append([]string(nil), s.RoleFiltering.DepartmentFilter...)
	return out
}

// Validate checks the settings ranges.
func (s *AISettings) Validate() error {
	if s.PriorityWeight < 0 || s.PriorityWeight > 100 {
		return fmt.Errorf("%w: priority_weight must be between 0 and 100", ErrInvalidSettings)
	}
	if s.GroupSimilarThreshold < 0 || s.GroupSimilarThreshold > 100 {
		return fmt.Errorf("%w: group_similar_threshold must be between 0 and 100", ErrInvalidSettings)
	}
	for cat, w := range s.CategoryWeights {
		if !cat.IsValid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidSettings, cat)
		}
		if w < 0 || w > 100 {
			return fmt.Errorf("%w: weight for %q must be between 0 and 100", ErrInvalidSettings, cat)
		}
	}
	return nil
}

// RoleFilteringPatch is a partial update for RoleFiltering.
type RoleFilteringPatch struct {
	Enabled          *bool     `json:"enabled,omitempty"`
	UserRoles        *[]string `json:"user_roles,omitempty"`
	DepartmentFilter *[]string `json:"department_filter,omitempty"`
}

// LearningModePatch is a partial update for LearningMode.
type LearningModePatch struct {
	Enabled         *bool `json:"enabled,omitempty"`
	AdaptToBehavior *bool `json:"adapt_to_behavior,omitempty"`
}

// SettingsPatch is a typed partial update for AISettings. Nil fields
// leave the current value untouched; CategoryWeights merges per key.
// This replaces the dotted-path partial-merge object the settings UI
// used, so updates stay statically typed.
type SettingsPatch struct {
	Enabled               *bool               `json:"enabled,omitempty"`
	PriorityWeight        *int                `json:"priority_weight,omitempty"`
	CategoryWeights       map[Category]int    `json:"category_weights,omitempty"`
	SmartGrouping         *bool               `json:"smart_grouping,omitempty"`
	GroupSimilarThreshold *int                `json:"group_similar_threshold,omitempty"`
	RoleFiltering         *RoleFilteringPatch `json:"role_filtering,omitempty"`
	LearningMode          *LearningModePatch  `json:"learning_mode,omitempty"`
}

// Apply merges the patch into the given settings.
func (p *SettingsPatch) Apply(s *AISettings) {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.PriorityWeight != nil {
		s.PriorityWeight = *p.PriorityWeight
	}
	if len(p.CategoryWeights) > 0 {
		if s.CategoryWeights == nil {
			s.CategoryWeights = make(map[Category]int, len(p.CategoryWeights))
		}
		for cat, w := range p.CategoryWeights {
			s.CategoryWeights[cat] = w
		}
	}
	if p.SmartGrouping != nil {
		s.SmartGrouping = *p.SmartGrouping
	}
	if p.GroupSimilarThreshold != nil {
		s.GroupSimilarThreshold = *p.GroupSimilarThreshold
	}
	if p.RoleFiltering != nil {
		if p.RoleFiltering.Enabled != nil {
			s.RoleFiltering.Enabled = *p.RoleFiltering.Enabled
		}
		if p.RoleFiltering.UserRoles != nil {
			s.RoleFiltering.UserRoles = append([]string(nil), (*p.RoleFiltering.UserRoles)...)
		}
		if p.RoleFiltering.DepartmentFilter != nil {
			s.RoleFiltering.DepartmentFilter = append([]string(nil), (*p.RoleFiltering.DepartmentFilter)...)
		}
	}
	if p.LearningMode != nil {
		if p.LearningMode.Enabled != nil {
			s.LearningMode.Enabled = *p.LearningMode.Enabled
		}
		if p.LearningMode.AdaptToBehavior != nil {
			s.LearningMode.AdaptToBehavior = *p.LearningMode.AdaptToBehavior
		}
	}
}
