package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// ErrShapeRejected is returned when a recognized shape cannot be applied,
// e.g. a second final circle drawn inside a state that is already final.
var ErrShapeRejected = errors.New("shape rejected")

// AddState appends an unnamed state and returns its ID.
func AddState(doc *domain.Document, ids ports.IDGenerator) string {
	id := ids.GenerateID()
	doc.States = append(doc.States, domain.StateRecord{ID: id})
	return id
}

// RenameState sets the name of a state.
func RenameState(doc *domain.Document, stateID, name string) error {
	st, ok := doc.State(stateID)
	if !ok {
		return fmt.Errorf("rename %s: %w", stateID, domain.ErrStateNotFound)
	}
	st.Name = NormalizeName(name)
	return nil
}

// ToggleFinal flips whether a state is final.
func ToggleFinal(doc *domain.Document, stateID string) error {
	st, ok := doc.State(stateID)
	if !ok {
		return fmt.Errorf("toggle final %s: %w", stateID, domain.ErrStateNotFound)
	}
	final := isFinal(doc, st)
	st.Final = !final
	doc.FinalStateIDs = slices.DeleteFunc(doc.FinalStateIDs, func(id string) bool { return id == stateID })
	return nil
}

// SetInitial pins the initial state explicitly.
func SetInitial(doc *domain.Document, stateID string) error {
	if _, ok := doc.State(stateID); !ok {
		return fmt.Errorf("set initial %s: %w", stateID, domain.ErrStateNotFound)
	}
	doc.InitialStateID = stateID
	return nil
}

// DeleteState removes a state. Transitions that pointed at it are kept and become
// dangling; Compile ignores them until they are reattached or deleted.
func DeleteState(doc *domain.Document, stateID string) error {
	idx := slices.IndexFunc(doc.States, func(s domain.StateRecord) bool { return s.ID == stateID })
	if idx < 0 {
		return fmt.Errorf("delete state %s: %w", stateID, domain.ErrStateNotFound)
	}
	doc.States = slices.Delete(doc.States, idx, idx+1)
	doc.FinalStateIDs = slices.DeleteFunc(doc.FinalStateIDs, func(id string) bool { return id == stateID })
	if doc.InitialStateID == stateID {
		doc.InitialStateID = ""
	}
	return nil
}

// AddTransition appends an arrow between two states and returns its ID.
// Either endpoint may be nil for an arrow that is not attached yet.
func AddTransition(doc *domain.Document, ids ports.IDGenerator, fromStateID, toStateID *string) string {
	id := ids.GenerateID()
	doc.Transitions = append(doc.Transitions, domain.TransitionRecord{
		ID:          id,
		FromStateID: cloneRef(fromStateID),
		ToStateID:   cloneRef(toStateID),
	})
	return id
}

// SetPendingSymbol records the symbol currently typed on a transition.
func SetPendingSymbol(doc *domain.Document, transitionID, symbol string) error {
	tr, ok := doc.Transition(transitionID)
	if !ok {
		return fmt.Errorf("set symbol %s: %w", transitionID, domain.ErrTransitionNotFound)
	}
	tr.PendingSymbol = NormalizeSymbol(symbol)
	return nil
}

// CommitPendingSymbol moves the pending symbol into the transition's symbol set.
func CommitPendingSymbol(doc *domain.Document, transitionID string) error {
	tr, ok := doc.Transition(transitionID)
	if !ok {
		return fmt.Errorf("commit symbol %s: %w", transitionID, domain.ErrTransitionNotFound)
	}
	if sym := NormalizeSymbol(tr.PendingSymbol); sym != "" && !slices.Contains(tr.Symbols, sym) {
		tr.Symbols = append(tr.Symbols, sym)
	}
	tr.PendingSymbol = ""
	return nil
}

// RemoveSymbol removes a symbol from a transition.
func RemoveSymbol(doc *domain.Document, transitionID, symbol string) error {
	tr, ok := doc.Transition(transitionID)
	if !ok {
		return fmt.Errorf("remove symbol %s: %w", transitionID, domain.ErrTransitionNotFound)
	}
	sym := NormalizeSymbol(symbol)
	tr.Symbols = slices.DeleteFunc(tr.Symbols, func(s string) bool { return NormalizeSymbol(s) == sym })
	return nil
}

// ToggleEpsilon flips whether a transition may be taken without input.
func ToggleEpsilon(doc *domain.Document, transitionID string) error {
	tr, ok := doc.Transition(transitionID)
	if !ok {
		return fmt.Errorf("toggle epsilon %s: %w", transitionID, domain.ErrTransitionNotFound)
	}
	tr.IncludesEpsilon = !tr.IncludesEpsilon
	return nil
}

// DeleteTransition removes a transition.
func DeleteTransition(doc *domain.Document, transitionID string) error {
	idx := slices.IndexFunc(doc.Transitions, func(t domain.TransitionRecord) bool { return t.ID == transitionID })
	if idx < 0 {
		return fmt.Errorf("delete transition %s: %w", transitionID, domain.ErrTransitionNotFound)
	}
	doc.Transitions = slices.Delete(doc.Transitions, idx, idx+1)
	return nil
}

// Clear removes every state and transition, keeping the document identity.
func Clear(doc *domain.Document) {
	doc.States = nil
	doc.Transitions = nil
	doc.InitialStateID = ""
	doc.FinalStateIDs = nil
}

// ApplyShape applies a recognized shape and returns the ID of the state or
// transition it created or changed.
func ApplyShape(doc *domain.Document, shape domain.Shape, ids ports.IDGenerator) (string, error) {
	switch shape.Kind {
	case domain.ShapeState:
		if shape.EnclosingStateID == "" {
			return AddState(doc, ids), nil
		}
		st, ok := doc.State(shape.EnclosingStateID)
		if !ok {
			return "", fmt.Errorf("final circle: %w", domain.ErrStateNotFound)
		}
		if isFinal(doc, st) {
			return "", fmt.Errorf("state %s is already final: %w", st.ID, ErrShapeRejected)
		}
		st.Final = true
		return st.ID, nil

	case domain.ShapeTransition:
		for _, ref := range []*string{shape.FromStateID, shape.ToStateID} {
			if ref == nil {
				continue
			}
			if _, ok := doc.State(*ref); !ok {
				return "", fmt.Errorf("arrow endpoint %s: %w", *ref, domain.ErrStateNotFound)
			}
		}
		return AddTransition(doc, ids, shape.FromStateID, shape.ToStateID), nil

	case domain.ShapeCycle:
		ref := shape.FromStateID
		if ref == nil {
			ref = shape.ToStateID
		}
		if ref == nil {
			return "", fmt.Errorf("cycle without a state: %w", ErrShapeRejected)
		}
		if _, ok := doc.State(*ref); !ok {
			return "", fmt.Errorf("cycle on %s: %w", *ref, domain.ErrStateNotFound)
		}
		return AddTransition(doc, ids, ref, ref), nil
	}
	return "", fmt.Errorf("unknown shape %q: %w", shape.Kind, ErrShapeRejected)
}

// ApplyStroke classifies stroke with rec and applies the resulting shape.
func ApplyStroke(ctx context.Context, doc *domain.Document, rec ports.ShapeRecognizer, stroke domain.Stroke, ids ports.IDGenerator) (string, error) {
	shape, err := rec.Recognize(ctx, stroke)
	if err != nil {
		return "", fmt.Errorf("recognize stroke: %w", err)
	}
	return ApplyShape(doc, shape, ids)
}

func isFinal(doc *domain.Document, st *domain.StateRecord) bool {
	return st.Final || slices.Contains(doc.FinalStateIDs, st.ID)
}

func cloneRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	return domain.Ref(*ref)
}
