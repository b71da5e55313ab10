package secondary

import (
	"context"
	"time"
)

// JournalRepository defines the secondary port for session journal persistence.
type JournalRepository interface {
	// CreateSession persists a new session.
	CreateSession(ctx context.Context, session *SessionRecord) error

	// CloseSession stamps the session's closed_at.
	CloseSession(ctx context.Context, sessionID string, closedAt time.Time) error

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, sessionID string) (*SessionRecord, error)

	// ListSessions retrieves sessions, most recent first.
	ListSessions(ctx context.Context, limit int) ([]*SessionRecord, error)

	// Append persists one journal entry.
	Append(ctx context.Context, entry *JournalRecord) error

	// ListEntries retrieves a session's entries in insertion order.
	ListEntries(ctx context.Context, sessionID string) ([]*JournalRecord, error)
}

// SessionRecord represents a session as stored in persistence.
type SessionRecord struct {
	ID            string
	Operator      string
	MissionSource string
	StartedAt     string
	ClosedAt      string // empty while open
	EntryCount    int    // populated by ListSessions/GetSession
}

// JournalRecord represents a journal entry as stored in persistence.
type JournalRecord struct {
	ID        int64
	SessionID string
	Kind      string
	FromStage string
	ToStage   string
	COA       string
	RunID     string
	Detail    string
	Operator  string
	CreatedAt string
}
