package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS triage_records (
		id              TEXT PRIMARY KEY,
		notification_id TEXT NOT NULL,
		category        TEXT NOT NULL,
		type            TEXT NOT NULL,
		priority        INTEGER NOT NULL,
		confidence      REAL NOT NULL,
		insight         TEXT,
		group_id        TEXT,
		is_grouped      INTEGER NOT NULL DEFAULT 0,
		group_count     INTEGER NOT NULL DEFAULT 0,
		processed_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_triage_processed ON triage_records(processed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_triage_category ON triage_records(category);
	CREATE INDEX IF NOT EXISTS idx_triage_notification ON triage_records(notification_id);

	CREATE TABLE IF NOT EXISTS user_actions (
		id               TEXT PRIMARY KEY,
		notification_id  TEXT NOT NULL,
		action           TEXT NOT NULL,
		response_time_ms INTEGER NOT NULL,
		recorded_at      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_actions_notification ON user_actions(notification_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveTriage appends triage outcomes in one transaction.
func (s *SQLiteStore) SaveTriage(ctx context.Context, records []TriageRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO triage_records
		(id, notification_id, category, type, priority, confidence, insight,
		 group_id, is_grouped, group_count, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		processedAt := r.ProcessedAt
		if processedAt.IsZero() {
			processedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			id, r.NotificationID, r.Category, r.Type, r.Priority, r.Confidence,
			r.Insight, r.GroupID, boolToInt(r.IsGrouped), r.GroupCount,
			processedAt.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert triage record: %w", err)
		}
	}

	return tx.Commit()
}

// SaveAction appends one user action.
func (s *SQLiteStore) SaveAction(ctx context.Context, record ActionRecord) error {
	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_actions (id, notification_id, action, response_time_ms, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, record.NotificationID, record.Action, record.ResponseTimeMs,
		recordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert user action: %w", err)
	}
	return nil
}

// ListRecent returns up to limit triage records, newest first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]TriageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, notification_id, category, type, priority, confidence,
		       insight, group_id, is_grouped, group_count, processed_at
		FROM triage_records
		ORDER BY processed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []TriageRecord
	for rows.Next() {
		var (
			r           TriageRecord
			insight     sql.NullString
			groupID     sql.NullString
			isGrouped   int
			processedAt string
		)
		if err := rows.Scan(&r.ID, &r.NotificationID, &r.Category, &r.Type,
			&r.Priority, &r.Confidence, &insight, &groupID, &isGrouped,
			&r.GroupCount, &processedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		r.Insight = insight.String
		r.GroupID = groupID.String
		r.IsGrouped = isGrouped != 0
		if ts, err := time.Parse(time.RFC3339Nano, processedAt); err == nil {
			r.ProcessedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats aggregates the trail per category.
func (s *SQLiteStore) Stats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*), AVG(priority)
		FROM triage_records
		GROUP BY category
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []CategoryStat
	for rows.Next() {
		var stat CategoryStat
		if err := rows.Scan(&stat.Category, &stat.Count, &stat.AvgPriority); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, stat)
	}
	return out, rows.Err()
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
