package editor

import (
	"slices"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/nfa"
)

// Report describes what Compile normalized away.
type Report struct {
	// Dropped lists transitions left out because an endpoint does not resolve.
	Dropped []string `json:"dropped,omitempty"`
	// InitialFrom tells where the initial candidates came from: "explicit" or "arrows".
	InitialFrom string `json:"initial_from"`
}

const (
	InitialExplicit = "explicit"
	InitialArrows   = "arrows"
)

// Compile turns an editor document into an nfa.Definition.
//
// States are identified by name. Transitions whose endpoints do not resolve to a
// state in the document are dropped and listed in the report. Symbols, including
// a pending one still being typed, are normalized.
func Compile(doc domain.Document) (nfa.Definition, Report) {
	names := make(map[string]string, len(doc.States))
	def := nfa.Definition{
		States: make([]string, 0, len(doc.States)),
	}
	for _, st := range doc.States {
		name := NormalizeName(st.Name)
		names[st.ID] = name
		def.States = append(def.States, name)
		if st.Final {
			def.Finals = append(def.Finals, name)
		}
	}
	for _, id := range doc.FinalStateIDs {
		if name, ok := names[id]; ok && !slices.Contains(def.Finals, name) {
			def.Finals = append(def.Finals, name)
		}
	}

	resolve := func(id *string) (string, bool) {
		if id == nil {
			return "", false
		}
		name, ok := names[*id]
		return name, ok
	}

	var rep Report
	alphabet := make(map[string]struct{})
	for _, tr := range doc.Transitions {
		symbols := TransitionSymbols(tr)
		for _, sym := range symbols {
			alphabet[sym] = struct{}{}
		}

		from, okFrom := resolve(tr.FromStateID)
		to, okTo := resolve(tr.ToStateID)
		if !okFrom || !okTo {
			rep.Dropped = append(rep.Dropped, tr.ID)
			continue
		}
		def.Transitions = append(def.Transitions, nfa.RawTransition{
			From:    from,
			To:      to,
			Symbols: symbols,
			Epsilon: tr.IncludesEpsilon,
		})
	}
	for sym := range alphabet {
		def.Alphabet = append(def.Alphabet, sym)
	}
	slices.Sort(def.Alphabet)

	def.Initial, rep.InitialFrom = initialCandidates(doc, names)
	return def, rep
}

// Build compiles doc and builds the automaton.
func Build(doc domain.Document) (*nfa.Automaton, Report, error) {
	def, rep := Compile(doc)
	a, err := nfa.Build(def)
	return a, rep, err
}

// TransitionSymbols returns the normalized symbols of tr, including its pending
// symbol, without duplicates.
func TransitionSymbols(tr domain.TransitionRecord) []string {
	out := make([]string, 0, len(tr.Symbols)+1)
	add := func(raw string) {
		sym := NormalizeSymbol(raw)
		if sym != "" && !slices.Contains(out, sym) {
			out = append(out, sym)
		}
	}
	for _, s := range tr.Symbols {
		add(s)
	}
	add(tr.PendingSymbol)
	return out
}

// initialCandidates returns the explicit initial state when one is pinned,
// otherwise the targets of every arrow that has no source.
func initialCandidates(doc domain.Document, names map[string]string) ([]string, string) {
	if doc.InitialStateID != "" {
		if name, ok := names[doc.InitialStateID]; ok {
			return []string{name}, InitialExplicit
		}
		return nil, InitialExplicit
	}

	var candidates []string
	for _, tr := range doc.Transitions {
		if tr.FromStateID != nil || tr.ToStateID == nil {
			continue
		}
		name, ok := names[*tr.ToStateID]
		if ok && !slices.Contains(candidates, name) {
			candidates = append(candidates, name)
		}
	}
	return candidates, InitialArrows
}
