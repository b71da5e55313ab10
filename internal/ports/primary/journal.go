package primary

import "context"

// JournalService defines the primary port for reading the session journal.
type JournalService interface {
	// ListSessions returns the most recent sessions first.
	ListSessions(ctx context.Context, limit int) ([]*Session, error)

	// Replay returns a session and its entries in the order they were recorded.
	Replay(ctx context.Context, sessionID string) (*Session, []*JournalEntry, error)
}

// Session is a journaled operator session at the port boundary.
type Session struct {
	ID            string
	Operator      string
	MissionSource string
	StartedAt     string
	ClosedAt      string
	Entries       int
}

// JournalEntry is one journaled workflow fact at the port boundary.
type JournalEntry struct {
	ID        int64
	SessionID string
	Kind      string // 'transition', 'validation', 'authorization'
	FromStage string
	ToStage   string
	COA       string
	RunID     string
	Detail    string
	Operator  string
	CreatedAt string
}
