package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/ports/secondary"
)

// Ensure mockJournalRepository implements the interface
var _ secondary.JournalRepository = (*mockJournalRepository)(nil)

// mockJournalRepository implements secondary.JournalRepository for testing.
type mockJournalRepository struct {
	mu        sync.Mutex
	sessions  map[string]*secondary.SessionRecord
	entries   []*secondary.JournalRecord
	createErr error
	appendErr error
	closeErr  error
	getErr    error
	listErr   error
}

func newMockJournalRepository() *mockJournalRepository {
	return &mockJournalRepository{
		sessions: make(map[string]*secondary.SessionRecord),
	}
}

func (m *mockJournalRepository) CreateSession(ctx context.Context, session *secondary.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockJournalRepository) CloseSession(ctx context.Context, sessionID string, closedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closeErr != nil {
		return m.closeErr
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	s.ClosedAt = closedAt.Format(time.RFC3339Nano)
	return nil
}

func (m *mockJournalRepository) GetSession(ctx context.Context, sessionID string) (*secondary.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func (m *mockJournalRepository) ListSessions(ctx context.Context, limit int) ([]*secondary.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.SessionRecord, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockJournalRepository) Append(ctx context.Context, entry *secondary.JournalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockJournalRepository) ListEntries(ctx context.Context, sessionID string) ([]*secondary.JournalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.JournalRecord
	for _, e := range m.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockJournalRepository) snapshot() []*secondary.JournalRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*secondary.JournalRecord, len(m.entries))
	copy(out, m.entries)
	return out
}

// testMission is the three-COA Timika mission reduced to what the workflow reads.
func testMission() *recommendation.MissionContext {
	return &recommendation.MissionContext{
		MissionBrief: recommendation.MissionBrief{
			Origin:       "Timika (WAYY)",
			TargetPoints: []string{"Ilaga", "Sinak"},
			FleetAvailable: []recommendation.FleetItem{
				{AircraftType: "H225M Caracal", Category: "rotary", Quantity: 2},
				{AircraftType: "C-295", Category: "fixed_wing", Quantity: 1},
			},
		},
		Recommendations: []recommendation.Recommendation{
			{
				Name:           "COA-1 Payload Dominant",
				SummaryGlobal:  recommendation.SummaryGlobal{TotalPayloadDeliveredKg: 1420, TotalFuelBurnKg: 980, TotalMissionTimeMin: 185},
				ScoreBreakdown: recommendation.ScoreBreakdown{FinalScore: 0.79},
			},
			{
				Name:           "COA-2 Safety-Buffered Rotary",
				SummaryGlobal:  recommendation.SummaryGlobal{TotalPayloadDeliveredKg: 1500, TotalFuelBurnKg: 1040, TotalMissionTimeMin: 210},
				ScoreBreakdown: recommendation.ScoreBreakdown{FinalScore: 0.81},
			},
			{
				Name:           "COA-3 Staged Buffer Strategy",
				SummaryGlobal:  recommendation.SummaryGlobal{TotalPayloadDeliveredKg: 1200, TotalFuelBurnKg: 860, TotalMissionTimeMin: 240},
				ScoreBreakdown: recommendation.ScoreBreakdown{FinalScore: 0.70},
			},
		},
	}
}
