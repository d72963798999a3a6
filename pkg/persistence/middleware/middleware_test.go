package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() *domain.Document {
	return &domain.Document{
		ID:     "doc",
		States: []domain.StateRecord{{ID: "s1", Name: "S"}, {ID: "s2", Name: "F", Final: true}},
		Transitions: []domain.TransitionRecord{
			{ID: "entry", ToStateID: domain.Ref("s1")},
			{ID: "t1", FromStateID: domain.Ref("s1"), ToStateID: domain.Ref("s2"), Symbols: []string{"A"}},
			{ID: "loose", FromStateID: domain.Ref("s2")},
		},
	}
}

func TestIntegrityMiddleware_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, middleware.Chain(memory.NewStore(), middleware.NewIntegrityMiddleware()))
}

func TestIntegrityMiddleware_RejectsCollisions(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	store := middleware.Chain(inner, middleware.NewIntegrityMiddleware())

	cases := map[string]func(d *domain.Document){
		"empty id":        func(d *domain.Document) { d.ID = "" },
		"duplicate state": func(d *domain.Document) { d.States[1].ID = "s1" },
		"unkeyed state":   func(d *domain.Document) { d.States[0].ID = "" },
		"duplicate arrow": func(d *domain.Document) { d.Transitions[1].ID = "entry" },
		"unkeyed arrow":   func(d *domain.Document) { d.Transitions[2].ID = "" },
		"missing initial": func(d *domain.Document) { d.InitialStateID = "ghost" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			doc := validDoc()
			mutate(doc)
			err := store.Save(ctx, doc)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}

	ids, err := inner.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "rejected documents must not reach the store")

	require.NoError(t, store.Save(ctx, validDoc()), "dangling arrows are allowed")
}

func TestLoggingMiddleware(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewIntegrityMiddleware(),
	)

	require.NoError(t, store.Save(ctx, validDoc()))
	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.ErrorIs(t, store.Save(ctx, &domain.Document{}), domain.ErrInvalidDocument)

	out := buf.String()
	assert.Contains(t, out, "op=save document=doc")
	assert.Contains(t, out, "level=WARN msg=\"store call failed\" op=load")
	assert.Contains(t, out, "invalid document")
}

func TestChain_Order(t *testing.T) {
	var calls []string
	mark := func(name string) middleware.Middleware {
		return func(next ports.DocumentStore) ports.DocumentStore {
			calls = append(calls, name)
			return next
		}
	}

	middleware.Chain(memory.NewStore(), mark("outer"), nil, mark("inner"))
	assert.Equal(t, []string{"inner", "outer"}, calls)
}
