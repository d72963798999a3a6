package nfa

// EpsilonClosure returns seed plus every state reachable from it through
// epsilon-flagged transitions only. The seed is not modified.
func EpsilonClosure(a *Automaton, seed StateSet) StateSet {
	closure := make(StateSet, len(seed))
	worklist := make([]string, 0, len(seed))
	for s := range seed {
		if !a.states.Has(s) {
			continue
		}
		closure.Add(s)
		worklist = append(worklist, s)
	}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for edge := range a.TransitionsFrom(current) {
			if !edge.Epsilon || closure.Has(edge.To) {
				continue
			}
			closure.Add(edge.To)
			worklist = append(worklist, edge.To)
		}
	}
	return closure
}

// Step consumes one symbol: it follows every transition labelled with symbol out of
// config and closes the result under epsilon moves.
func Step(a *Automaton, config StateSet, symbol string) StateSet {
	next := make(StateSet)
	for s := range config {
		for edge := range a.TransitionsFrom(s) {
			if edge.Symbols.Has(symbol) {
				next.Add(edge.To)
			}
		}
	}
	if next.Empty() {
		return next
	}
	return EpsilonClosure(a, next)
}
