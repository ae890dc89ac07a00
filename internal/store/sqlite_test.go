package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SaveAndListRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	records := []TriageRecord{
		{
			NotificationID: "n-1",
			Category:       "emergency",
			Type:           "critical",
			Priority:       5,
			Confidence:     0.95,
			Insight:        "Critical: Requires immediate medical intervention, within 10 minutes",
			ProcessedAt:    base,
		},
		{
			NotificationID: "n-2",
			Category:       "appointment",
			Type:           "routine",
			Priority:       2,
			Confidence:     0.5,
			GroupID:        "appointment-2025-03-10",
			IsGrouped:      true,
			GroupCount:     3,
			ProcessedAt:    base.Add(time.Minute),
		},
	}

	if err := s.SaveTriage(ctx, records); err != nil {
		t.Fatalf("SaveTriage() error = %v", err)
	}

	got, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	// Newest first.
	if got[0].NotificationID != "n-2" {
		t.Errorf("first record = %q, want n-2", got[0].NotificationID)
	}
	if !got[0].IsGrouped || got[0].GroupCount != 3 {
		t.Errorf("group state lost: %+v", got[0])
	}
	if got[0].GroupID != "appointment-2025-03-10" {
		t.Errorf("group id = %q", got[0].GroupID)
	}
	if got[1].Priority != 5 || got[1].Confidence != 0.95 {
		t.Errorf("record fields lost: %+v", got[1])
	}
	if got[0].ID == "" {
		t.Error("store must assign an id when none is supplied")
	}
	if !got[1].ProcessedAt.Equal(base) {
		t.Errorf("processed_at = %v, want %v", got[1].ProcessedAt, base)
	}
}

func TestSQLiteStore_ListRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	var records []TriageRecord
	for i := 0; i < 5; i++ {
		records = append(records, TriageRecord{
			NotificationID: "n",
			Category:       "reminder",
			Type:           "routine",
			Priority:       1,
			Confidence:     0.5,
			ProcessedAt:    base.Add(time.Duration(i) * time.Second),
		})
	}
	if err := s.SaveTriage(ctx, records); err != nil {
		t.Fatalf("SaveTriage() error = %v", err)
	}

	got, err := s.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestSQLiteStore_SaveAction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SaveAction(ctx, ActionRecord{
		NotificationID: "n-1",
		Action:         "respond",
		ResponseTimeMs: 90000,
	})
	if err != nil {
		t.Fatalf("SaveAction() error = %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_actions`).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSQLiteStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	err := s.SaveTriage(ctx, []TriageRecord{
		{NotificationID: "a", Category: "medical", Type: "urgent", Priority: 4, Confidence: 0.85, ProcessedAt: base},
		{NotificationID: "b", Category: "medical", Type: "routine", Priority: 2, Confidence: 0.5, ProcessedAt: base},
		{NotificationID: "c", Category: "reminder", Type: "routine", Priority: 1, Confidence: 0.5, ProcessedAt: base},
	})
	if err != nil {
		t.Fatalf("SaveTriage() error = %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].Category != "medical" || stats[0].Count != 2 {
		t.Errorf("stats[0] = %+v, want medical count 2", stats[0])
	}
	if stats[0].AvgPriority != 3 {
		t.Errorf("avg priority = %v, want 3", stats[0].AvgPriority)
	}
}

func TestSQLiteStore_EmptySaveIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveTriage(context.Background(), nil); err != nil {
		t.Fatalf("SaveTriage(nil) error = %v", err)
	}
}
