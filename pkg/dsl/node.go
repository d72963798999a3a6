package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	record  domain.StateRecord
	builder *Builder
}

// Initial marks the state as the initial state of the document.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.doc.InitialStateID = s.record.ID
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.record.Final = true
	return s
}

// Rename changes the simulation name while keeping the builder key.
func (s *StateBuilder) Rename(name string) *StateBuilder {
	s.record.Name = name
	return s
}

// On adds a transition from this state to target, labelled with symbols.
func (s *StateBuilder) On(target string, symbols ...string) *StateBuilder {
	s.builder.Arrow(s.record.ID, target, symbols...)
	return s
}

// Then adds an epsilon transition from this state to target.
func (s *StateBuilder) Then(target string) *StateBuilder {
	s.builder.Epsilon(s.record.ID, target)
	return s
}

// Done returns the document builder, for chaining.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}

// Build returns the underlying domain.StateRecord.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StateBuilder) Build() domain.StateRecord {
	return s.record
}
