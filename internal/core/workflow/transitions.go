package workflow

import "github.com/example/aerobridge/internal/core/effects"

// TransitionResult is the next state plus the effects the shell must run.
type TransitionResult struct {
	Next    State
	Effects []effects.Effect
}

// Apply evaluates one event against the transition table:
//
//	Selecting      + select(coa) -> Reviewing(coa)   guard: coa is a member
//	Reviewing(coa) + back()      -> Selecting
//	Reviewing(coa) + validate()  -> Validating(coa)  effect: start validation
//	Validating(coa)+ reset()     -> Selecting        effect: cancel validation
//
// isMember reports membership in the active recommendation set. On error the
// caller keeps its current state.
func Apply(current State, ev Event, isMember func(name string) bool) (TransitionResult, error) {
	switch s := current.(type) {
	case Selecting:
		if sel, ok := ev.(Select); ok {
			member := isMember != nil && isMember(sel.Name)
			if result := CanSelect(SelectContext{Name: sel.Name, IsMember: member}); !result.Allowed {
				return TransitionResult{}, &SelectionError{Name: sel.Name}
			}
			next := Reviewing{Name: sel.Name}
			return TransitionResult{
				Next:    next,
				Effects: []effects.Effect{journal(s, next, ev)},
			}, nil
		}

	case Reviewing:
		switch ev.(type) {
		case Back:
			next := Selecting{}
			return TransitionResult{
				Next:    next,
				Effects: []effects.Effect{journal(s, next, ev)},
			}, nil
		case Validate:
			next := Validating{Name: s.Name}
			return TransitionResult{
				Next: next,
				Effects: []effects.Effect{
					journal(s, next, ev),
					effects.StartValidationEffect{COA: s.Name},
				},
			}, nil
		}

	case Validating:
		if _, ok := ev.(Reset); ok {
			next := Selecting{}
			return TransitionResult{
				Next: next,
				Effects: []effects.Effect{
					effects.CancelValidationEffect{Reason: "reset"},
					journal(s, next, ev),
				},
			}, nil
		}
	}

	return TransitionResult{}, &TransitionError{From: current.Stage(), Event: ev.EventName()}
}

func journal(from, to State, ev Event) effects.JournalEffect {
	coa := from.COA()
	if coa == "" {
		coa = to.COA()
	}
	return effects.JournalEffect{
		Kind:   "transition",
		From:   string(from.Stage()),
		To:     string(to.Stage()),
		COA:    coa,
		Detail: ev.EventName(),
	}
}
