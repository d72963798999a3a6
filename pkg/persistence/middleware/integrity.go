package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

type integrityMiddleware struct {
	next ports.DocumentStore
}

// NewIntegrityMiddleware creates a middleware that refuses to save documents
// whose editor keys are missing or collide. Dangling arrows are fine: they are
// part of a drawing in progress.
func NewIntegrityMiddleware() Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &integrityMiddleware{next: next}
	}
}

func (m *integrityMiddleware) Save(ctx context.Context, doc *domain.Document) error {
	if err := CheckIntegrity(doc); err != nil {
		return err
	}
	return m.next.Save(ctx, doc)
}

func (m *integrityMiddleware) Load(ctx context.Context, id string) (*domain.Document, error) {
	return m.next.Load(ctx, id)
}

func (m *integrityMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *integrityMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// CheckIntegrity reports the first inconsistency in doc, wrapped in
// domain.ErrInvalidDocument.
func CheckIntegrity(doc *domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: empty document id", domain.ErrInvalidDocument)
	}

	states := make(map[string]struct{}, len(doc.States))
	for _, st := range doc.States {
		if st.ID == "" {
			return fmt.Errorf("%w: state with empty id", domain.ErrInvalidDocument)
		}
		if _, dup := states[st.ID]; dup {
			return fmt.Errorf("%w: duplicate state id %q", domain.ErrInvalidDocument, st.ID)
		}
		states[st.ID] = struct{}{}
	}

	transitions := make(map[string]struct{}, len(doc.Transitions))
	for _, tr := range doc.Transitions {
		if tr.ID == "" {
			return fmt.Errorf("%w: transition with empty id", domain.ErrInvalidDocument)
		}
		if _, dup := transitions[tr.ID]; dup {
			return fmt.Errorf("%w: duplicate transition id %q", domain.ErrInvalidDocument, tr.ID)
		}
		transitions[tr.ID] = struct{}{}
	}

	if doc.InitialStateID != "" {
		if _, ok := states[doc.InitialStateID]; !ok {
			return fmt.Errorf("%w: initial state %q does not exist", domain.ErrInvalidDocument, doc.InitialStateID)
		}
	}
	return nil
}
