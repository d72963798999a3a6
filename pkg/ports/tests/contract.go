package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DocumentLoaderContractTest is a reusable test suite that verifies if a read-only adapter
// complies with ports.DocumentLoader. want maps each seeded document ID to its expected state names.
func DocumentLoaderContractTest(t *testing.T, loader ports.DocumentLoader, want map[string][]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for id, names := range want {
			doc, err := loader.Load(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading document %s: %v", id, err)
			}
			if doc.ID != id {
				t.Errorf("document ID mismatch: got %q, want %q", doc.ID, id)
			}
			if len(doc.States) != len(names) {
				t.Fatalf("document %s: got %d states, want %d", id, len(doc.States), len(names))
			}
			for i, st := range doc.States {
				if st.Name != names[i] {
					t.Errorf("document %s state %d: got %q, want %q", id, i, st.Name, names[i])
				}
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-document")
		if !errors.Is(err, domain.ErrDocumentNotFound) {
			t.Errorf("expected ErrDocumentNotFound for non-existent document, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing documents: %v", err)
		}
		found := make(map[string]bool, len(ids))
		for _, id := range ids {
			found[id] = true
		}
		for id := range want {
			if !found[id] {
				t.Errorf("expected document %s in list, got %v", id, ids)
			}
		}
	})
}
