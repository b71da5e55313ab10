package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/aerobridge/internal/ports/primary"
)

// JournalAdapter renders journal sessions and their replay.
type JournalAdapter struct {
	service primary.JournalService
	out     io.Writer
}

// NewJournalAdapter creates a new JournalAdapter with the given service.
func NewJournalAdapter(service primary.JournalService, out io.Writer) *JournalAdapter {
	return &JournalAdapter{
		service: service,
		out:     out,
	}
}

// List prints the most recent sessions.
func (a *JournalAdapter) List(ctx context.Context, limit int) error {
	sessions, err := a.service.ListSessions(ctx, limit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No journal sessions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-36s  %-16s %-7s %-25s %s\n", "SESSION", "OPERATOR", "ENTRIES", "STARTED", "MISSION")
	fmt.Fprintln(a.out, rule)
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%-36s  %-16s %-7d %-25s %s\n", s.ID, dash(s.Operator), s.Entries, s.StartedAt, s.MissionSource)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Replay prints one session's entries in the order they were recorded.
func (a *JournalAdapter) Replay(ctx context.Context, sessionID string) error {
	session, entries, err := a.service.Replay(ctx, sessionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSession:  %s\n", session.ID)
	fmt.Fprintf(a.out, "Operator: %s\n", dash(session.Operator))
	fmt.Fprintf(a.out, "Mission:  %s\n", session.MissionSource)
	fmt.Fprintf(a.out, "Started:  %s\n", session.StartedAt)
	if session.ClosedAt != "" {
		fmt.Fprintf(a.out, "Closed:   %s\n", session.ClosedAt)
	} else {
		fmt.Fprintf(a.out, "Closed:   %s\n", color.New(color.FgYellow).Sprint("(open)"))
	}
	fmt.Fprintln(a.out, rule)

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %s  %s\n", e.CreatedAt, kindLabel(e.Kind), describeEntry(e))
	}
	fmt.Fprintln(a.out)
	return nil
}

func kindLabel(kind string) string {
	text := fmt.Sprintf("%-13s", kind)
	switch kind {
	case "authorization":
		return color.New(color.FgGreen, color.Bold).Sprint(text)
	case "transition":
		return color.New(color.FgCyan).Sprint(text)
	default:
		return text
	}
}

func describeEntry(e *primary.JournalEntry) string {
	switch e.Kind {
	case "transition":
		return fmt.Sprintf("%s -> %s %s (%s)", e.FromStage, e.ToStage, e.COA, e.Detail)
	default:
		return fmt.Sprintf("%s %s", e.COA, e.Detail)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
