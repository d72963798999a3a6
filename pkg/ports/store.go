package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// DocumentLoader provides read access to automaton documents.
type DocumentLoader interface {
	// Load retrieves the document with the given ID.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) (*domain.Document, error)

	// List returns the IDs of all stored documents.
	List(ctx context.Context) ([]string, error)
}

// DocumentStore defines the interface for persisting automaton documents.
// The records are opaque to the store; only the engine interprets them.
type DocumentStore interface {
	DocumentLoader

	// Save persists the document under doc.ID, replacing any previous version.
	Save(ctx context.Context, doc *domain.Document) error

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error
}
