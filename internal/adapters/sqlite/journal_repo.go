// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/aerobridge/internal/ports/secondary"
)

// JournalRepository implements secondary.JournalRepository with SQLite.
type JournalRepository struct {
	db *sql.DB
}

var _ secondary.JournalRepository = (*JournalRepository)(nil)

// NewJournalRepository creates a new SQLite journal repository.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// CreateSession persists a new session.
func (r *JournalRepository) CreateSession(ctx context.Context, session *secondary.SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO journal_sessions (id, operator, mission_source, started_at) VALUES (?, ?, ?, ?)",
		session.ID, nullString(session.Operator), nullString(session.MissionSource), session.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// CloseSession stamps the session's closed_at.
func (r *JournalRepository) CloseSession(ctx context.Context, sessionID string, closedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE journal_sessions SET closed_at = ? WHERE id = ?",
		closedAt.UTC().Format(time.RFC3339Nano), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

const sessionColumns = `s.id, s.operator, s.mission_source, s.started_at, s.closed_at,
	(SELECT COUNT(*) FROM journal_entries e WHERE e.session_id = s.id)`

// GetSession retrieves a session by ID.
func (r *JournalRepository) GetSession(ctx context.Context, sessionID string) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM journal_sessions s WHERE s.id = ?",
		sessionID,
	)
	record, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return record, nil
}

// ListSessions retrieves sessions, most recent first. A non-positive limit
// returns every session.
func (r *JournalRepository) ListSessions(ctx context.Context, limit int) ([]*secondary.SessionRecord, error) {
	query := "SELECT " + sessionColumns + " FROM journal_sessions s ORDER BY s.started_at DESC, s.id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

// Append persists one journal entry and sets its ID.
func (r *JournalRepository) Append(ctx context.Context, entry *secondary.JournalRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries (session_id, kind, from_stage, to_stage, coa, run_id, detail, operator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.Kind,
		nullString(entry.FromStage), nullString(entry.ToStage), nullString(entry.COA),
		nullString(entry.RunID), nullString(entry.Detail), nullString(entry.Operator),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListEntries retrieves a session's entries in insertion order.
func (r *JournalRepository) ListEntries(ctx context.Context, sessionID string) ([]*secondary.JournalRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, kind, from_stage, to_stage, coa, run_id, detail, operator, created_at
		 FROM journal_entries WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.JournalRecord
	for rows.Next() {
		var (
			fromStage sql.NullString
			toStage   sql.NullString
			coa       sql.NullString
			runID     sql.NullString
			detail    sql.NullString
			operator  sql.NullString
		)
		record := &secondary.JournalRecord{}
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Kind, &fromStage, &toStage, &coa, &runID, &detail, &operator, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		record.FromStage = fromStage.String
		record.ToStage = toStage.String
		record.COA = coa.String
		record.RunID = runID.String
		record.Detail = detail.String
		record.Operator = operator.String
		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*secondary.SessionRecord, error) {
	var (
		operator      sql.NullString
		missionSource sql.NullString
		closedAt      sql.NullString
	)
	record := &secondary.SessionRecord{}
	if err := row.Scan(&record.ID, &operator, &missionSource, &record.StartedAt, &closedAt, &record.EntryCount); err != nil {
		return nil, err
	}
	record.Operator = operator.String
	record.MissionSource = missionSource.String
	record.ClosedAt = closedAt.String
	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
