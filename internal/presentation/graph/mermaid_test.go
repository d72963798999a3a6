package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T) *nfa.Automaton {
	t.Helper()
	a, err := nfa.Build(nfa.Definition{
		States:  []string{"S", "M", "F"},
		Initial: []string{"S"},
		Finals:  []string{"F"},
		Transitions: []nfa.RawTransition{
			{From: "S", To: "M", Symbols: []string{"A"}},
			{From: "S", To: "M", Symbols: []string{"B"}},
			{From: "M", To: "F", Epsilon: true},
			{From: "F", To: "F", Symbols: []string{"A"}, Epsilon: true},
		},
	})
	require.NoError(t, err)
	return a
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(build(t), nil)

	tests := []struct {
		name     string
		contains string
	}{
		{"header", "stateDiagram-v2\n"},
		{"state labels", `state "M" as s1`},
		{"initial entry", "[*] --> s0"},
		{"parallel edges merged", "s0 --> s1 : A, B"},
		{"epsilon label", "s1 --> s2 : ε"},
		{"symbol and epsilon", "s2 --> s2 : A, ε"},
		{"final exit", "s2 --> [*]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, out, tt.contains)
		})
	}

	assert.NotContains(t, out, "classDef", "no overlay styles without an overlay")
	assert.Equal(t, 1, strings.Count(out, "--> [*]"), "only final states exit")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	overlay := graph.OverlayFromTrace([][]string{{"S"}, {"F", "M"}})
	out := graph.GenerateMermaid(build(t), overlay)

	assert.Contains(t, out, "classDef visited")
	assert.Contains(t, out, "class s0 visited")
	assert.Contains(t, out, "class s1 current")
	assert.Contains(t, out, "class s2 current")
	assert.NotContains(t, out, "class s1 visited", "current states are not also marked visited")
}

func TestGenerateMermaid_EscapesNames(t *testing.T) {
	a, err := nfa.Build(nfa.Definition{
		States:  []string{`say "hi": now`},
		Initial: []string{`say "hi": now`},
	})
	require.NoError(t, err)

	out := graph.GenerateMermaid(a, nil)
	assert.Contains(t, out, `state "say 'hi'#colon; now" as s0`)
}

func TestOverlayFromTrace_Empty(t *testing.T) {
	o := graph.OverlayFromTrace(nil)
	assert.Empty(t, o.Current)
	assert.Empty(t, o.Visited)
}
