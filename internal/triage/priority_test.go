package triage

import (
	"testing"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

func TestSynthesizer_Priority(t *testing.T) {
	s := NewSynthesizer(DefaultTables())

	flat := domain.DefaultAISettings()
	flat.PriorityWeight = 100
	flat.CategoryWeights = nil
	flat.LearningMode = domain.LearningMode{}

	tests := []struct {
		name     string
		sig      domain.Signals
		cat      domain.Category
		typ      domain.NotificationType
		settings domain.AISettings
		want     int
	}{
		{
			name: "plain blend rounds the raw score",
			// raw = 0.5*20 + 0.3*10 + 0.2*10 = 15 -> 1.5 -> 2
			sig:      domain.Signals{Urgency: 20, MedicalRelevance: 10, TimeRelevance: 10},
			cat:      domain.CategoryAppointment,
			typ:      domain.TypeRoutine,
			settings: flat,
			want:     2,
		},
		{
			name: "missing category weight is a no-op multiplier",
			// same as above with a weights map that lacks the category
			sig: domain.Signals{Urgency: 20, MedicalRelevance: 10, TimeRelevance: 10},
			cat: domain.CategoryAppointment,
			typ: domain.TypeRoutine,
			settings: func() domain.AISettings {
				c := flat.Clone()
				c.CategoryWeights = map[domain.Category]int{domain.CategoryMedical: 10}
				return c
			}(),
			want: 2,
		},
		{
			name: "category weight scales the blend",
			// raw 15 * 40/100 = 6 -> 0.6 -> 1
			sig: domain.Signals{Urgency: 20, MedicalRelevance: 10, TimeRelevance: 10},
			cat: domain.CategoryAppointment,
			typ: domain.TypeRoutine,
			settings: func() domain.AISettings {
				c := flat.Clone()
				c.CategoryWeights = map[domain.Category]int{domain.CategoryAppointment: 40}
				return c
			}(),
			want: 1,
		},
		{
			name: "zero priority weight is all baseline",
			// blended = 2.5 -> 0.25 -> 0 -> clamped to 1
			sig: domain.Signals{Urgency: 50, MedicalRelevance: 30, TimeRelevance: 20},
			cat: domain.CategoryAppointment,
			typ: domain.TypeRoutine,
			settings: func() domain.AISettings {
				c := flat.Clone()
				c.PriorityWeight = 0
				return c
			}(),
			want: 1,
		},
		{
			name: "maximal signals reach four",
			// raw = 25 + 9 + 4 = 38 -> 3.8 -> 4
			sig:      domain.Signals{Urgency: 50, MedicalRelevance: 30, TimeRelevance: 20},
			cat:      domain.CategoryMedical,
			typ:      domain.TypeUrgent,
			settings: flat,
			want:     4,
		},
		{
			name:     "critical floor at four",
			sig:      domain.Signals{Urgency: 30},
			cat:      domain.CategoryEmergency,
			typ:      domain.TypeCritical,
			settings: domain.DefaultAISettings(),
			want:     4,
		},
		{
			name:     "critical floor rises to five past urgency 35",
			sig:      domain.Signals{Urgency: 36},
			cat:      domain.CategoryEmergency,
			typ:      domain.TypeCritical,
			settings: domain.DefaultAISettings(),
			want:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Priority(tt.sig, tt.cat, tt.typ, &tt.settings); got != tt.want {
				t.Errorf("Priority() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSynthesizer_Confidence(t *testing.T) {
	s := NewSynthesizer(DefaultTables())

	tests := []struct {
		urgency float64
		medical float64
		want    float64
	}{
		{40, 5, 0.95},  // total 45
		{40, 0, 0.85},  // total 40 is not > 40
		{25, 10, 0.85}, // total 35
		{30, 0, 0.75},  // boundary 30
		{15, 10, 0.75}, // total 25
		{20, 0, 0.65},  // boundary 20
		{10, 5, 0.65},  // total 15
		{10, 0, 0.5},   // boundary 10
		{0, 0, 0.5},
	}

	for _, tt := range tests {
		got := s.Confidence(domain.Signals{Urgency: tt.urgency, MedicalRelevance: tt.medical})
		if got != tt.want {
			t.Errorf("Confidence(u=%v, m=%v) = %v, want %v", tt.urgency, tt.medical, got, tt.want)
		}
	}
}

func TestSynthesizer_Insight(t *testing.T) {
	s := NewSynthesizer(DefaultTables())
	settings := domain.DefaultAISettings()
	noLearning := domain.DefaultAISettings()
	noLearning.LearningMode = domain.LearningMode{}

	tests := []struct {
		name     string
		sig      domain.Signals
		cat      domain.Category
		typ      domain.NotificationType
		settings domain.AISettings
		want     string
	}{
		{
			name:     "critical with very high urgency",
			sig:      domain.Signals{Urgency: 40},
			cat:      domain.CategoryEmergency,
			typ:      domain.TypeCritical,
			settings: settings,
			want: "Critical: Requires immediate medical intervention, within 10 minutes. " +
				"You typically respond to these quickly",
		},
		{
			name:     "critical below the ten minute cut",
			sig:      domain.Signals{Urgency: 30},
			cat:      domain.CategoryEmergency,
			typ:      domain.TypeCritical,
			settings: noLearning,
			want:     "Critical: Requires immediate medical intervention, within 30 minutes",
		},
		{
			name:     "urgent medical with fast responder suffix",
			sig:      domain.Signals{},
			cat:      domain.CategoryMedical,
			typ:      domain.TypeUrgent,
			settings: settings,
			want: "Medical attention needed: Contact patient within 2 hours. " +
				"You typically respond to these quickly",
		},
		{
			name:     "urgent appointment",
			sig:      domain.Signals{},
			cat:      domain.CategoryAppointment,
			typ:      domain.TypeUrgent,
			settings: settings,
			want:     "High impact: Affects multiple patients and schedules",
		},
		{
			name:     "routine appointment",
			sig:      domain.Signals{},
			cat:      domain.CategoryAppointment,
			typ:      domain.TypeRoutine,
			settings: settings,
			want:     "Routine booking cluster - can be processed in batch",
		},
		{
			name:     "default phrasing",
			sig:      domain.Signals{},
			cat:      domain.CategoryAdministrative,
			typ:      domain.TypeSystem,
			settings: settings,
			want:     "Standard priority - process when convenient",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Insight(tt.sig, tt.cat, tt.typ, &tt.settings); got != tt.want {
				t.Errorf("Insight() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizer_SuggestAction(t *testing.T) {
	s := NewSynthesizer(DefaultTables())

	tests := []struct {
		name       string
		input      domain.NotificationInput
		cat        domain.Category
		typ        domain.NotificationType
		wantAction domain.ActionType
		wantOK     bool
	}{
		{
			name:       "review keyword",
			input:      domain.NotificationInput{Title: "Please review the chart"},
			cat:        domain.CategoryMedical,
			typ:        domain.TypeRoutine,
			wantAction: domain.ActionReview,
			wantOK:     true,
		},
		{
			name:       "table order decides between competing keywords",
			input:      domain.NotificationInput{Title: "call to schedule a follow-up"},
			cat:        domain.CategoryAppointment,
			typ:        domain.TypeRoutine,
			wantAction: domain.ActionAccept,
			wantOK:     true,
		},
		{
			name:       "acknowledge keyword",
			input:      domain.NotificationInput{Description: "message received, thanks"},
			cat:        domain.CategoryAdministrative,
			typ:        domain.TypeSystem,
			wantAction: domain.ActionAcknowledge,
			wantOK:     true,
		},
		{
			name:       "critical fallback wants a response",
			input:      domain.NotificationInput{Title: "code blue ward 3"},
			cat:        domain.CategoryEmergency,
			typ:        domain.TypeCritical,
			wantAction: domain.ActionRespond,
			wantOK:     true,
		},
		{
			name:       "appointment fallback accepts",
			input:      domain.NotificationInput{Title: "slot opened"},
			cat:        domain.CategoryAppointment,
			typ:        domain.TypeRoutine,
			wantAction: domain.ActionAccept,
			wantOK:     true,
		},
		{
			name:       "urgent medical fallback reviews",
			input:      domain.NotificationInput{Title: "abnormal troponin"},
			cat:        domain.CategoryMedical,
			typ:        domain.TypeUrgent,
			wantAction: domain.ActionReview,
			wantOK:     true,
		},
		{
			name:   "no action for quiet admin items",
			input:  domain.NotificationInput{Title: "parking permit renewal"},
			cat:    domain.CategoryAdministrative,
			typ:    domain.TypeSystem,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.SuggestAction(&tt.input, tt.cat, tt.typ)
			if ok != tt.wantOK {
				t.Fatalf("SuggestAction() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantAction {
				t.Errorf("SuggestAction() = %v, want %v", got, tt.wantAction)
			}
		})
	}
}

func TestSynthesizer_SuggestRoles(t *testing.T) {
	s := NewSynthesizer(DefaultTables())

	unfiltered := domain.DefaultAISettings()
	got := s.SuggestRoles(domain.CategoryEmergency, &unfiltered)
	want := []string{"doctor", "nurse", "emergency-staff"}
	if len(got) != len(want) {
		t.Fatalf("SuggestRoles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SuggestRoles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	filtered := domain.DefaultAISettings()
	filtered.RoleFiltering = domain.RoleFiltering{
		Enabled:   true,
		UserRoles: []string{"nurse"},
	}
	got = s.SuggestRoles(domain.CategoryEmergency, &filtered)
	if len(got) != 1 || got[0] != "nurse" {
		t.Errorf("filtered SuggestRoles() = %v, want [nurse]", got)
	}

	// "all" survives filtering even when the user holds no listed role.
	got = s.SuggestRoles(domain.CategoryReminder, &filtered)
	if len(got) != 1 || got[0] != "all" {
		t.Errorf("reminder SuggestRoles() = %v, want [all]", got)
	}
}
