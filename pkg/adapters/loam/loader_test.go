package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docA := core.Document{
		ID:      "ends-with-a.md",
		Content: testutils.EndsWithA,
	}

	docB := core.Document{
		ID: "single.md",
		Content: `---
id: single
states: [Q]
initial: Q
finals: [Q]
---
Accepts only the empty word.`,
	}

	require.NoError(t, repo.Save(ctx, docA))
	require.NoError(t, repo.Save(ctx, docB))

	loader := New(loam.NewTypedRepository[DocumentMetadata](repo))

	tests.DocumentLoaderContractTest(t, loader, map[string][]string{
		"ends-with-a": {"S", "F"},
		"single":      {"Q"},
	})
}

func TestLoader_BuildsRunnableAutomaton(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{"ends-with-a.md": testutils.EndsWithA})

	loader := New(loam.NewTypedRepository[DocumentMetadata](repo))
	doc, err := loader.Load(context.Background(), "ends-with-a")
	require.NoError(t, err)

	assert.Equal(t, "ends with a", doc.Name)
	assert.Equal(t, "Accepts every word over {A, B} whose last symbol is A.", doc.Description)
	require.Len(t, doc.Transitions, 3)
	assert.Nil(t, doc.Transitions[0].FromStateID, "an arrow without 'from' is an entry arrow")

	a, report, err := editor.Build(*doc)
	require.NoError(t, err)
	assert.Equal(t, editor.InitialArrows, report.InitialFrom)

	assert.Equal(t, nfa.Accepted, nfa.Simulate(a, []string{"B", "A"}).Verdict)
	assert.Equal(t, nfa.Rejected, nfa.Simulate(a, []string{"A", "B"}).Verdict)
}

func TestLoader_UndeclaredTargetIsDropped(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{"dangling.md": `---
states: [S]
initial: S
finals: [S]
transitions:
  - from: S
    to: GHOST
    symbols: [A]
---`})

	loader := New(loam.NewTypedRepository[DocumentMetadata](repo))
	doc, err := loader.Load(context.Background(), "dangling")
	require.NoError(t, err)
	assert.Equal(t, "dangling", doc.ID, "ID is implied from the file name")

	a, report, err := editor.Build(*doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"t0"}, report.Dropped)
	assert.Empty(t, a.Alphabet())
}

func TestLoader_List_NormalizesIDs(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{
		"first.md":  "---\nid: first.md\nstates: [S]\n---\n",
		"second.md": "---\nstates: [S]\n---\n",
	})

	loader := New(loam.NewTypedRepository[DocumentMetadata](repo))
	ids, err := loader.List(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"first", "second"}, ids)
}

func TestLoader_List_DetectsCollisions(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{
		"foo.md":   "---\nid: foo\nstates: [S]\n---\n",
		"other.md": "---\nid: foo\nstates: [T]\n---\n",
	})

	loader := New(loam.NewTypedRepository[DocumentMetadata](repo))
	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestToDocument_EmptyFrontmatter(t *testing.T) {
	doc := toDocument("x", DocumentMetadata{}, "  \n")
	assert.Equal(t, "x", doc.ID)
	assert.Empty(t, doc.Description)
	assert.Empty(t, doc.States)

	_, _, err := editor.Build(*doc)
	assert.ErrorIs(t, err, nfa.ErrNoInitialState)
}
