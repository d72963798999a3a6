package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore implementation
// adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := &domain.Document{
			ID:   docID,
			Name: "ends with a",
			States: []domain.StateRecord{
				{ID: "s1", Name: "S"},
				{ID: "s2", Name: "F", Final: true},
			},
			Transitions: []domain.TransitionRecord{
				{ID: "t0", ToStateID: domain.Ref("s1")},
				{ID: "t1", FromStateID: domain.Ref("s1"), ToStateID: domain.Ref("s2"), Symbols: []string{"A"}},
				{ID: "t2", FromStateID: domain.Ref("s2"), ToStateID: domain.Ref("s1"), IncludesEpsilon: true},
			},
		}

		err := store.Save(ctx, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc.Name, loaded.Name)
		assert.Equal(t, doc.States, loaded.States)
		require.Len(t, loaded.Transitions, 3)
		assert.Nil(t, loaded.Transitions[0].FromStateID, "missing endpoints must survive a round trip")
		require.NotNil(t, loaded.Transitions[1].ToStateID)
		assert.Equal(t, "s2", *loaded.Transitions[1].ToStateID)
		assert.Equal(t, []string{"A"}, loaded.Transitions[1].Symbols)
		assert.True(t, loaded.Transitions[2].IncludesEpsilon)
	})

	t.Run("Load Is Isolated From Caller", func(t *testing.T) {
		doc := &domain.Document{ID: docID + "-iso", States: []domain.StateRecord{{ID: "s1", Name: "S"}}}
		require.NoError(t, store.Save(ctx, doc))
		defer func() { _ = store.Delete(ctx, doc.ID) }()

		doc.States[0].Name = "MUTATED"
		loaded, err := store.Load(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "S", loaded.States[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, &domain.Document{ID: docID})
		require.NoError(t, err)

		err = store.Delete(ctx, docID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, docID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, &domain.Document{ID: id1})
		_ = store.Save(ctx, &domain.Document{ID: id2})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
