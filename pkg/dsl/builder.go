package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	doc    domain.Document
	states map[string]*StateBuilder
	order  []string
}

// New creates a new document builder.
func New(id string) *Builder {
	return &Builder{
		doc:    domain.Document{ID: id},
		states: make(map[string]*StateBuilder),
	}
}

// Name sets the display name of the document.
func (b *Builder) Name(name string) *Builder {
	b.doc.Name = name
	return b
}

// Describe sets the free text description.
func (b *Builder) Describe(text string) *Builder {
	b.doc.Description = text
	return b
}

// State adds a new state to the document, keyed and named by name.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		record:  domain.StateRecord{ID: name, Name: name},
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Arrow adds a transition labelled with symbols. Endpoints are added as states
// when they were not declared yet.
func (b *Builder) Arrow(from, to string, symbols ...string) *Builder {
	b.State(from)
	b.State(to)
	b.doc.Transitions = append(b.doc.Transitions, domain.TransitionRecord{
		ID:          fmt.Sprintf("t%d", len(b.doc.Transitions)),
		FromStateID: domain.Ref(from),
		ToStateID:   domain.Ref(to),
		Symbols:     append([]string(nil), symbols...),
	})
	return b
}

// Epsilon adds a transition taken without consuming input.
func (b *Builder) Epsilon(from, to string, symbols ...string) *Builder {
	b.Arrow(from, to, symbols...)
	b.doc.Transitions[len(b.doc.Transitions)-1].IncludesEpsilon = true
	return b
}

// Build returns the document. Each call returns an independent copy.
func (b *Builder) Build() domain.Document {
	doc := b.doc
	doc.States = make([]domain.StateRecord, 0, len(b.order))
	for _, name := range b.order {
		doc.States = append(doc.States, b.states[name].record)
	}
	return doc.Clone()
}

// Store compiles the document into a MemoryStore.
func (b *Builder) Store() *memory.Store {
	return memory.NewStore(b.Build())
}
