/*
Package nfa implements the nondeterministic finite automaton model and its simulator.

An Automaton is built once from a Definition, validated, and then treated as an immutable
snapshot. Simulation runs the classic subset simulation: the configuration is the set of states
reachable so far, each input symbol maps it through the transition relation, and the
epsilon-closure is recomputed after every step.

	a, err := nfa.Build(nfa.Definition{
		States:  []string{"S", "F"},
		Initial: []string{"S"},
		Finals:  []string{"F"},
		Transitions: []nfa.RawTransition{
			{From: "S", To: "F", Symbols: []string{"A"}},
		},
	})
	if err != nil {
		// errors.Is(err, nfa.ErrNoInitialState), ...
	}

	res := nfa.Simulate(a, []string{"A"})
	// res.Verdict == nfa.Accepted, res.Configuration == {F}

Simulation never fails for a built automaton. Symbols outside the alphabet simply match no
transition and lead to rejection.
*/
package nfa
