package editor_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawn builds the document the editor produces for a two-state automaton with
// an entry arrow into s1 and a transition s1 -A-> s2.
func drawn() domain.Document {
	return domain.Document{
		ID: "doc",
		States: []domain.StateRecord{
			{ID: "s1", Name: " S "},
			{ID: "s2", Name: "F", Final: true},
		},
		Transitions: []domain.TransitionRecord{
			{ID: "entry", ToStateID: domain.Ref("s1")},
			{ID: "t1", FromStateID: domain.Ref("s1"), ToStateID: domain.Ref("s2"), Symbols: []string{"a"}},
		},
	}
}

func TestCompile_ResolvesNamesAndFinals(t *testing.T) {
	def, rep := editor.Compile(drawn())

	assert.Equal(t, []string{"S", "F"}, def.States)
	assert.Equal(t, []string{"F"}, def.Finals)
	assert.Equal(t, []string{"S"}, def.Initial)
	assert.Equal(t, editor.InitialArrows, rep.InitialFrom)
	require.Len(t, def.Transitions, 1)
	assert.Equal(t, nfa.RawTransition{From: "S", To: "F", Symbols: []string{"A"}}, def.Transitions[0])
	assert.Equal(t, []string{"entry"}, rep.Dropped)
}

func TestCompile_FinalStateIDsAreMerged(t *testing.T) {
	doc := drawn()
	doc.States[1].Final = false
	doc.FinalStateIDs = []string{"s2", "s2", "missing"}

	def, _ := editor.Compile(doc)
	assert.Equal(t, []string{"F"}, def.Finals)
}

func TestCompile_PendingSymbolCounts(t *testing.T) {
	doc := drawn()
	doc.Transitions[1].PendingSymbol = " b"

	def, _ := editor.Compile(doc)
	assert.Equal(t, []string{"A", "B"}, def.Transitions[0].Symbols)
	assert.Equal(t, []string{"A", "B"}, def.Alphabet)
}

func TestCompile_ExplicitInitialWins(t *testing.T) {
	doc := drawn()
	doc.InitialStateID = "s2"

	def, rep := editor.Compile(doc)
	assert.Equal(t, []string{"F"}, def.Initial)
	assert.Equal(t, editor.InitialExplicit, rep.InitialFrom)

	doc.InitialStateID = "deleted"
	def, _ = editor.Compile(doc)
	assert.Empty(t, def.Initial)
}

func TestBuild_EditorErrors(t *testing.T) {
	t.Run("No Entry Arrow", func(t *testing.T) {
		doc := drawn()
		doc.Transitions = doc.Transitions[1:]
		_, _, err := editor.Build(doc)
		assert.ErrorIs(t, err, nfa.ErrNoInitialState)
	})

	t.Run("Two Entry Arrows", func(t *testing.T) {
		doc := drawn()
		doc.Transitions = append(doc.Transitions, domain.TransitionRecord{ID: "entry2", ToStateID: domain.Ref("s2")})
		_, _, err := editor.Build(doc)
		assert.ErrorIs(t, err, nfa.ErrMultipleInitialStates)
	})

	t.Run("Two Entry Arrows Into Same State", func(t *testing.T) {
		doc := drawn()
		doc.Transitions = append(doc.Transitions, domain.TransitionRecord{ID: "entry2", ToStateID: domain.Ref("s1")})
		_, _, err := editor.Build(doc)
		assert.NoError(t, err)
	})

	t.Run("Unnamed State", func(t *testing.T) {
		doc := drawn()
		doc.States = append(doc.States, domain.StateRecord{ID: "s3", Name: "  "})
		_, _, err := editor.Build(doc)
		assert.ErrorIs(t, err, nfa.ErrUnnamedState)
	})

	t.Run("Same Name Twice", func(t *testing.T) {
		doc := drawn()
		doc.States[1].Name = "S"
		_, _, err := editor.Build(doc)
		assert.ErrorIs(t, err, nfa.ErrDuplicateState)
	})

	t.Run("Empty Document", func(t *testing.T) {
		_, _, err := editor.Build(domain.Document{})
		assert.ErrorIs(t, err, nfa.ErrNoInitialState)
	})
}

func TestBuild_DeletedStateLeavesTransitionsInert(t *testing.T) {
	doc := drawn()
	doc.States = append(doc.States, domain.StateRecord{ID: "s3", Name: "X"})
	doc.Transitions = append(doc.Transitions, domain.TransitionRecord{
		ID: "t2", FromStateID: domain.Ref("s1"), ToStateID: domain.Ref("s3"), Symbols: []string{"B"},
	})
	require.NoError(t, editor.DeleteState(&doc, "s3"))

	a, rep, err := editor.Build(doc)
	require.NoError(t, err)
	assert.Contains(t, rep.Dropped, "t2")
	assert.Equal(t, []string{"A"}, a.Alphabet())

	res := nfa.Simulate(a, []string{"A"})
	assert.True(t, res.Accepted())
}
