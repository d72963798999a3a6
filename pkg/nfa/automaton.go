package nfa

import (
	"iter"
	"slices"
)

// RawTransition is a transition as the caller supplies it.
// An empty From or To stands for a missing endpoint.
type RawTransition struct {
	From    string   `json:"from,omitempty" yaml:"from,omitempty"`
	To      string   `json:"to,omitempty" yaml:"to,omitempty"`
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Epsilon bool     `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
}

// Definition is the unvalidated description of an automaton.
type Definition struct {
	States []string `json:"states" yaml:"states"`

	// Alphabet is only a hint from upstream filtering. The simulated alphabet is always
	// derived from the retained transitions.
	Alphabet []string `json:"alphabet,omitempty" yaml:"alphabet,omitempty"`

	// Initial lists the candidate initial states. Exactly one distinct declared
	// candidate must remain.
	Initial []string `json:"initial" yaml:"initial"`

	Finals      []string        `json:"finals,omitempty" yaml:"finals,omitempty"`
	Transitions []RawTransition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Edge is an outgoing transition seen from its source state.
type Edge struct {
	Symbols SymbolSet
	Epsilon bool
	To      string
}

// Transition is a retained, fully resolved transition.
type Transition struct {
	From string
	Edge
}

// Automaton is a validated, immutable NFA.
type Automaton struct {
	order       []string
	states      StateSet
	alphabet    []string
	initial     string
	finals      StateSet
	transitions []Transition
	outgoing    map[string][]int
}

// Build validates def and returns the simulatable automaton.
// Transitions with an endpoint that is not a declared state are dropped.
func Build(def Definition) (*Automaton, error) {
	a := &Automaton{
		states:   make(StateSet, len(def.States)),
		finals:   make(StateSet),
		outgoing: make(map[string][]int),
	}

	var unnamed int
	var duplicates []string
	for _, s := range def.States {
		if s == "" {
			unnamed++
			continue
		}
		if a.states.Has(s) {
			if !slices.Contains(duplicates, s) {
				duplicates = append(duplicates, s)
			}
			continue
		}
		a.states.Add(s)
		a.order = append(a.order, s)
	}
	if unnamed > 0 {
		return nil, &ValidationError{Kind: KindUnnamedState}
	}
	if len(duplicates) > 0 {
		return nil, &ValidationError{Kind: KindDuplicateState, States: duplicates}
	}

	var initials []string
	for _, s := range def.Initial {
		if a.states.Has(s) && !slices.Contains(initials, s) {
			initials = append(initials, s)
		}
	}
	switch len(initials) {
	case 0:
		return nil, &ValidationError{Kind: KindNoInitialState}
	case 1:
		a.initial = initials[0]
	default:
		return nil, &ValidationError{Kind: KindMultipleInitialStates, States: initials}
	}

	for _, s := range def.Finals {
		if a.states.Has(s) {
			a.finals.Add(s)
		}
	}

	alphabet := make(SymbolSet)
	for _, rt := range def.Transitions {
		if !a.states.Has(rt.From) || !a.states.Has(rt.To) {
			continue
		}
		t := Transition{
			From: rt.From,
			Edge: Edge{
				Symbols: newSymbolSet(rt.Symbols),
				Epsilon: rt.Epsilon,
				To:      rt.To,
			},
		}
		for sym := range t.Symbols {
			alphabet[sym] = struct{}{}
		}
		a.outgoing[t.From] = append(a.outgoing[t.From], len(a.transitions))
		a.transitions = append(a.transitions, t)
	}
	a.alphabet = alphabet.Sorted()

	return a, nil
}

// TransitionsFrom yields every outgoing edge of state in insertion order.
// The sequence can be ranged over any number of times.
func (a *Automaton) TransitionsFrom(state string) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, idx := range a.outgoing[state] {
			if !yield(a.transitions[idx].Edge) {
				return
			}
		}
	}
}

// Transitions returns the retained transitions in insertion order.
func (a *Automaton) Transitions() []Transition {
	return slices.Clone(a.transitions)
}

// States returns the declared states in declaration order.
func (a *Automaton) States() []string { return slices.Clone(a.order) }

// Alphabet returns the derived alphabet, sorted.
func (a *Automaton) Alphabet() []string { return slices.Clone(a.alphabet) }

// HasSymbol reports whether any retained transition carries symbol.
func (a *Automaton) HasSymbol(symbol string) bool {
	_, found := slices.BinarySearch(a.alphabet, symbol)
	return found
}

func (a *Automaton) Initial() string { return a.initial }
func (a *Automaton) Finals() StateSet { return a.finals.Clone() }
func (a *Automaton) IsFinal(state string) bool { return a.finals.Has(state) }
