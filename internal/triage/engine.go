package triage

import (
	"sync"
	"time"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
	"go.uber.org/zap"
)

// Engine is the notification triage engine. It holds the current
// settings and the immutable reference tables; every triage call is a
// pure function of its input plus the settings snapshot at call time.
//
// Safe for concurrent use: settings reads and writes go through an
// RWMutex, and no call retains or mutates shared state.
type Engine struct {
	mu       sync.RWMutex
	settings domain.AISettings

	tables      *Tables
	extractor   *Extractor
	classifier  *Classifier
	synthesizer *Synthesizer
	logger      *zap.Logger

	// now is the engine clock, overridable in tests.
	now func() time.Time
}

// NewEngine creates an engine over the given tables and initial
// settings. Nil tables are a programmer error.
func NewEngine(tables *Tables, settings domain.AISettings, logger *zap.Logger) *Engine {
	if tables == nil {
		panic("triage: NewEngine called with nil tables")
	}
	return &Engine{
		settings:    settings.Clone(),
		tables:      tables,
		extractor:   NewExtractor(tables),
		classifier:  NewClassifier(),
		synthesizer: NewSynthesizer(tables),
		logger:      logger.Named("triage_engine"),
		now:         time.Now,
	}
}

// Settings returns a snapshot of the current settings.
func (e *Engine) Settings() domain.AISettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings.Clone()
}

// UpdateSettings merges the patch into the held settings. Returns the
// settings error when the merged result is out of range, in which case
// the held settings are unchanged.
func (e *Engine) UpdateSettings(patch domain.SettingsPatch) (domain.AISettings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	merged := e.settings.Clone()
	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return domain.AISettings{}, err
	}

	e.settings = merged
	e.logger.Info("settings updated",
		zap.Bool("enabled", merged.Enabled),
		zap.Int("priority_weight", merged.PriorityWeight),
		zap.Bool("smart_grouping", merged.SmartGrouping),
		zap.Bool("learning_mode", merged.LearningMode.Enabled),
	)
	return merged.Clone(), nil
}

// ProcessOne triages a single notification against the current
// settings.
func (e *Engine) ProcessOne(in domain.NotificationInput) domain.ProcessedNotification {
	settings := e.Settings()
	now := e.now()
	return e.process(in, &settings, now, isoDate(now))
}

// ProcessBatch triages each notification independently, then collapses
// groupable ones by category and processing day (when smart grouping is
// on) and returns the list sorted by descending priority. Ties keep
// their input order.
func (e *Engine) ProcessBatch(ins []domain.NotificationInput) []domain.ProcessedNotification {
	settings := e.Settings()
	now := e.now()
	today := isoDate(now)

	out := make([]domain.ProcessedNotification, 0, len(ins))
	for _, in := range ins {
		out = append(out, e.process(in, &settings, now, today))
	}

	if !settings.Enabled || !settings.SmartGrouping {
		sortByPriority(out)
		return out
	}
	return groupBatch(out)
}

// RecordUserAction accepts a user's response to a notification. Per
// current behavior it is only observed when learning mode is on; it
// never mutates the static behavior profile.
func (e *Engine) RecordUserAction(notificationID string, action domain.ActionType, responseTime time.Duration) {
	settings := e.Settings()
	if !settings.LearningMode.Enabled {
		return
	}
	e.logger.Info("user action observed",
		zap.String("notification_id", notificationID),
		zap.String("action", string(action)),
		zap.Duration("response_time", responseTime),
	)
}

// process runs stages 1-3 for one notification.
func (e *Engine) process(in domain.NotificationInput, settings *domain.AISettings, now time.Time, today string) domain.ProcessedNotification {
	if !settings.Enabled {
		return neutralResult(in)
	}

	sig := e.extractor.Score(&in, now)
	cat := e.classifier.Categorize(&in, sig)
	typ := e.classifier.TypeOf(sig, cat)

	out := domain.ProcessedNotification{
		NotificationInput:     in,
		Type:                  typ,
		Category:              cat,
		AIPriority:            e.synthesizer.Priority(sig, cat, typ, settings),
		AIConfidence:          e.synthesizer.Confidence(sig),
		AIInsight:             e.synthesizer.Insight(sig, cat, typ, settings),
		UrgencyScore:          sig.Urgency,
		MedicalRelevanceScore: sig.MedicalRelevance,
		TimeRelevanceScore:    sig.TimeRelevance,
		SuggestedRoles:        e.synthesizer.SuggestRoles(cat, settings),
	}

	if action, ok := e.synthesizer.SuggestAction(&in, cat, typ); ok {
		out.ActionSuggested = true
		out.ActionType = action
	}

	if settings.SmartGrouping && e.tables.GroupableCategories[cat] {
		out.IsGroupable = true
		out.GroupID = string(cat) + "-" + today
	}

	return out
}

// neutralResult is the fixed output of the disabled-engine fast path.
func neutralResult(in domain.NotificationInput) domain.ProcessedNotification {
	return domain.ProcessedNotification{
		NotificationInput: in,
		Type:              domain.TypeRoutine,
		Category:          domain.CategoryAdministrative,
		AIPriority:        3,
		AIConfidence:      0.5,
	}
}

// isoDate is the processing date used in group ids. UTC, so a batch
// spanning a local midnight still groups consistently.
func isoDate(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}
