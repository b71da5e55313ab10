package app

import (
	"context"
	"fmt"

	"github.com/example/aerobridge/internal/ports/primary"
	"github.com/example/aerobridge/internal/ports/secondary"
)

// JournalServiceImpl implements the JournalService interface.
type JournalServiceImpl struct {
	journalRepo secondary.JournalRepository
}

// NewJournalService creates a new JournalService with injected dependencies.
func NewJournalService(journalRepo secondary.JournalRepository) *JournalServiceImpl {
	return &JournalServiceImpl{journalRepo: journalRepo}
}

// ListSessions returns the most recent sessions first.
func (s *JournalServiceImpl) ListSessions(ctx context.Context, limit int) ([]*primary.Session, error) {
	records, err := s.journalRepo.ListSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]*primary.Session, len(records))
	for i, r := range records {
		sessions[i] = s.recordToSession(r)
	}
	return sessions, nil
}

// Replay returns a session and its entries in recording order.
func (s *JournalServiceImpl) Replay(ctx context.Context, sessionID string) (*primary.Session, []*primary.JournalEntry, error) {
	record, err := s.journalRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	records, err := s.journalRepo.ListEntries(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]*primary.JournalEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.JournalEntry{
			ID:        r.ID,
			SessionID: r.SessionID,
			Kind:      r.Kind,
			FromStage: r.FromStage,
			ToStage:   r.ToStage,
			COA:       r.COA,
			RunID:     r.RunID,
			Detail:    r.Detail,
			Operator:  r.Operator,
			CreatedAt: r.CreatedAt,
		}
	}
	return s.recordToSession(record), entries, nil
}

func (s *JournalServiceImpl) recordToSession(r *secondary.SessionRecord) *primary.Session {
	return &primary.Session{
		ID:            r.ID,
		Operator:      r.Operator,
		MissionSource: r.MissionSource,
		StartedAt:     r.StartedAt,
		ClosedAt:      r.ClosedAt,
		Entries:       r.EntryCount,
	}
}
