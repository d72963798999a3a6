package dsl_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endsWithA() *dsl.Builder {
	b := dsl.New("ends-with-a").Name("Words ending in a")

	b.State("q0").Initial().
		On("q0", "a", "b").
		On("q1", "a")

	b.State("q1").Final()
	return b
}

func TestBuilder_SimpleFlow(t *testing.T) {
	doc := endsWithA().Build()

	assert.Equal(t, "ends-with-a", doc.ID)
	assert.Equal(t, "Words ending in a", doc.Name)
	assert.Equal(t, "q0", doc.InitialStateID)
	require.Len(t, doc.States, 2)
	assert.Equal(t, domain.StateRecord{ID: "q0", Name: "q0"}, doc.States[0])
	assert.True(t, doc.States[1].Final)

	require.Len(t, doc.Transitions, 2)
	assert.Equal(t, "t0", doc.Transitions[0].ID)
	assert.Equal(t, []string{"a", "b"}, doc.Transitions[0].Symbols)
	assert.Equal(t, "q1", *doc.Transitions[1].ToStateID)

	a, rep, err := editor.Build(doc)
	require.NoError(t, err)
	assert.Empty(t, rep.Dropped)

	assert.True(t, nfa.Simulate(a, []string{"B", "A"}).Accepted())
	assert.False(t, nfa.Simulate(a, []string{"A", "B"}).Accepted())
}

func TestBuilder_EpsilonAndImplicitStates(t *testing.T) {
	b := dsl.New("eps")
	b.State("s").Initial().Then("m")
	b.Arrow("m", "f", "x")
	b.State("f").Final()

	doc := b.Build()
	require.Len(t, doc.States, 3)
	assert.Equal(t, "m", doc.States[1].ID)
	assert.True(t, doc.Transitions[0].IncludesEpsilon)
	assert.Empty(t, doc.Transitions[0].Symbols)

	a, _, err := editor.Build(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"m", "s"}, nfa.InitialConfiguration(a).Sorted())
	assert.True(t, nfa.Simulate(a, []string{"X"}).Accepted())
}

func TestBuilder_RenameKeepsKey(t *testing.T) {
	b := dsl.New("rename")
	b.State("q0").Rename("start").Initial().On("q1", "a")
	b.State("q1").Rename("end").Final()

	doc := b.Build()
	assert.Equal(t, "start", doc.States[0].Name)
	assert.Equal(t, "q0", *doc.Transitions[0].FromStateID)

	a, _, err := editor.Build(doc)
	require.NoError(t, err)
	assert.Equal(t, "start", a.Initial())
}

func TestBuilder_BuildReturnsCopies(t *testing.T) {
	b := endsWithA()
	first := b.Build()
	first.Transitions[0].Symbols[0] = "z"
	first.States[0].Name = "changed"

	second := b.Build()
	assert.Equal(t, "a", second.Transitions[0].Symbols[0])
	assert.Equal(t, "q0", second.States[0].Name)
}

func TestBuilder_Store(t *testing.T) {
	store := endsWithA().Store()

	doc, err := store.Load(context.Background(), "ends-with-a")
	require.NoError(t, err)
	assert.Len(t, doc.States, 2)
}

func TestBuilder_NoInitial(t *testing.T) {
	b := dsl.New("broken")
	b.State("q0").Final()

	_, _, err := editor.Build(b.Build())
	assert.ErrorIs(t, err, nfa.ErrNoInitialState)
}
