package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/nfa"
)

// Epsilon is the label drawn for epsilon moves.
const Epsilon = "ε"

// GraphOverlay contains run data to visualize on the diagram.
type GraphOverlay struct {
	// Visited are states that were live at any point of the run.
	Visited []string
	// Current is the configuration the run ended in.
	Current []string
}

// OverlayFromTrace builds an overlay from a run trace, one configuration per step.
func OverlayFromTrace(trace [][]string) *GraphOverlay {
	if len(trace) == 0 {
		return &GraphOverlay{}
	}
	var visited []string
	for _, cfg := range trace {
		visited = append(visited, cfg...)
	}
	return &GraphOverlay{Visited: visited, Current: trace[len(trace)-1]}
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 for the automaton.
// The initial state is entered from [*] and final states exit to [*].
// Parallel transitions between the same pair of states are drawn as one
// edge listing all their labels.
func GenerateMermaid(a *nfa.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    direction LR\n")

	// State names are free text, so diagram IDs are positional.
	ids := make(map[string]string)
	for i, name := range a.States() {
		id := "s" + strconv.Itoa(i)
		ids[name] = id
		sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", escapeLabel(name), id))
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", ids[a.Initial()]))

	type pair struct{ from, to string }
	var order []pair
	labels := make(map[pair][]string)
	for _, tr := range a.Transitions() {
		p := pair{tr.From, tr.To}
		if _, seen := labels[p]; !seen {
			order = append(order, p)
			labels[p] = nil
		}
		for _, sym := range tr.Symbols.Sorted() {
			labels[p] = appendUnique(labels[p], escapeLabel(sym))
		}
		if tr.Epsilon {
			labels[p] = appendUnique(labels[p], Epsilon)
		}
	}
	for _, p := range order {
		line := fmt.Sprintf("    %s --> %s", ids[p.from], ids[p.to])
		if l := labels[p]; len(l) > 0 {
			line += " : " + strings.Join(l, ", ")
		}
		sb.WriteString(line + "\n")
	}

	for _, name := range a.States() {
		if a.IsFinal(name) {
			sb.WriteString(fmt.Sprintf("    %s --> [*]\n", ids[name]))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on the light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		current := make(map[string]bool, len(overlay.Current))
		for _, name := range overlay.Current {
			current[name] = true
		}

		styled := make(map[string]bool)
		for _, name := range overlay.Visited {
			id, ok := ids[name]
			if !ok || styled[id] || current[name] {
				continue
			}
			styled[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited\n", id))
		}
		for _, name := range overlay.Current {
			if id, ok := ids[name]; ok {
				sb.WriteString(fmt.Sprintf("    class %s current\n", id))
			}
		}
	}

	return sb.String()
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, ":", "#colon;")
	return strings.ReplaceAll(s, "\n", " ")
}
