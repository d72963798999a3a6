package nfa

import (
	"maps"
	"slices"
	"strings"
)

// StateSet is a set of state names.
type StateSet map[string]struct{}

// NewStateSet builds a set holding the given states.
func NewStateSet(states ...string) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

func (s StateSet) Has(state string) bool {
	_, ok := s[state]
	return ok
}

func (s StateSet) Add(state string) { s[state] = struct{}{} }
func (s StateSet) Len() int { return len(s) }
func (s StateSet) Empty() bool { return len(s) == 0 }

// Sorted returns the members in lexical order. The result is never nil.
func (s StateSet) Sorted() []string {
	out := slices.AppendSeq(make([]string, 0, len(s)), maps.Keys(s))
	slices.Sort(out)
	return out
}

// Intersects reports whether s and other share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if large.Has(k) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same states.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s StateSet) Clone() StateSet {
	return maps.Clone(s)
}

func (s StateSet) String() string {
	return "{" + strings.Join(s.Sorted(), ",") + "}"
}

// SymbolSet is the set of symbols a single transition accepts.
type SymbolSet map[string]struct{}

func newSymbolSet(symbols []string) SymbolSet {
	s := make(SymbolSet, len(symbols))
	for _, sym := range symbols {
		if sym == "" {
			continue
		}
		s[sym] = struct{}{}
	}
	return s
}

func (s SymbolSet) Has(symbol string) bool {
	_, ok := s[symbol]
	return ok
}

// Sorted returns the symbols in lexical order.
func (s SymbolSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
