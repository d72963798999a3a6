package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/nfa"
)

// Kind names a lint finding.
type Kind string

const (
	// Unreachable states cannot be entered from the initial state.
	Unreachable Kind = "unreachable"
	// Dead states cannot reach any final state.
	Dead Kind = "dead"
	// NoFinals means the automaton accepts nothing.
	NoFinals Kind = "no_final_states"
)

// Finding is a structural smell. None of them stop the automaton from running.
type Finding struct {
	Kind   Kind     `json:"kind"`
	States []string `json:"states,omitempty"`
}

func (f Finding) String() string {
	switch f.Kind {
	case Unreachable:
		return fmt.Sprintf("unreachable from the initial state: %s", strings.Join(f.States, ", "))
	case Dead:
		return fmt.Sprintf("cannot reach a final state: %s", strings.Join(f.States, ", "))
	case NoFinals:
		return "no final states, every word is rejected"
	}
	return string(f.Kind)
}

// Lint checks a for unreachable and dead states, crawling every edge
// (symbol or epsilon) forward from the initial state and backward from the finals.
func Lint(a *nfa.Automaton) []Finding {
	var findings []Finding

	forward := make(map[string][]string)
	backward := make(map[string][]string)
	for _, t := range a.Transitions() {
		forward[t.From] = append(forward[t.From], t.To)
		backward[t.To] = append(backward[t.To], t.From)
	}

	reached := crawl([]string{a.Initial()}, forward)
	if missing := missingFrom(a.States(), reached); len(missing) > 0 {
		findings = append(findings, Finding{Kind: Unreachable, States: missing})
	}

	finals := a.Finals().Sorted()
	if len(finals) == 0 {
		return append(findings, Finding{Kind: NoFinals})
	}

	live := crawl(finals, backward)
	if missing := missingFrom(a.States(), live); len(missing) > 0 {
		findings = append(findings, Finding{Kind: Dead, States: missing})
	}
	return findings
}

func crawl(start []string, edges map[string][]string) map[string]bool {
	visited := make(map[string]bool)
	queue := slices.Clone(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}

func missingFrom(states []string, visited map[string]bool) []string {
	var out []string
	for _, s := range states {
		if !visited[s] {
			out = append(out, s)
		}
	}
	return out
}
