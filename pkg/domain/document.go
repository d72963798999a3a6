package domain

// StateRecord is a state as the editor keeps it.
// ID is the editor key, Name is the identity used for simulation.
type StateRecord struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Final bool   `json:"final,omitempty" yaml:"final,omitempty" mapstructure:"final"`
}

// TransitionRecord is a drawn arrow. Either endpoint may be missing while the
// arrow is not yet attached to a state, or after its state was deleted.
type TransitionRecord struct {
	ID          string  `json:"id" yaml:"id" mapstructure:"id"`
	FromStateID *string `json:"from_state_id,omitempty" yaml:"from_state_id,omitempty" mapstructure:"from_state_id"`
	ToStateID   *string `json:"to_state_id,omitempty" yaml:"to_state_id,omitempty" mapstructure:"to_state_id"`

	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty" mapstructure:"symbols"`

	// PendingSymbol is the symbol currently being written on the arrow.
	PendingSymbol string `json:"pending_symbol,omitempty" yaml:"pending_symbol,omitempty" mapstructure:"pending_symbol"`

	IncludesEpsilon bool `json:"includes_epsilon,omitempty" yaml:"includes_epsilon,omitempty" mapstructure:"includes_epsilon"`
}

// Document is the persisted form of one drawn automaton.
type Document struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`

	// Description is free text shown next to the drawing.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	States      []StateRecord      `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []TransitionRecord `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// InitialStateID pins the initial state explicitly. When empty, the editor
	// convention applies: arrows without a source point at the initial state.
	InitialStateID string `json:"initial_state_id,omitempty" yaml:"initial_state_id,omitempty" mapstructure:"initial_state_id"`

	// FinalStateIDs is merged with StateRecord.Final.
	FinalStateIDs []string `json:"final_state_ids,omitempty" yaml:"final_state_ids,omitempty" mapstructure:"final_state_ids"`
}

// State returns the state record with the given ID.
func (d *Document) State(id string) (*StateRecord, bool) {
	for i := range d.States {
		if d.States[i].ID == id {
			return &d.States[i], true
		}
	}
	return nil, false
}

// Transition returns the transition record with the given ID.
func (d *Document) Transition(id string) (*TransitionRecord, bool) {
	for i := range d.Transitions {
		if d.Transitions[i].ID == id {
			return &d.Transitions[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so stores can hand out documents without sharing slices.
func (d Document) Clone() Document {
	out := d
	out.States = append([]StateRecord(nil), d.States...)
	out.FinalStateIDs = append([]string(nil), d.FinalStateIDs...)
	out.Transitions = make([]TransitionRecord, len(d.Transitions))
	for i, t := range d.Transitions {
		t.Symbols = append([]string(nil), t.Symbols...)
		if t.FromStateID != nil {
			t.FromStateID = Ref(*t.FromStateID)
		}
		if t.ToStateID != nil {
			t.ToStateID = Ref(*t.ToStateID)
		}
		out.Transitions[i] = t
	}
	return out
}

// Ref returns a pointer to a copy of id. Handy for transition endpoints.
func Ref(id string) *string {
	return &id
}
