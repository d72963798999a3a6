/*
Package automata builds nondeterministic finite automata from hand-drawn diagrams and runs input through them.

A drawing is kept as a domain.Document: states, arrows between them, the symbols written on each arrow and whether an arrow also allows an epsilon move. The engine compiles a document into an nfa.Automaton, validating that exactly one initial state exists and every state is named, and then simulates input with epsilon-closure over every configuration.

# Concept

The library is split the same way a drawing app is: the editor layer (pkg/editor) owns the mutable document and its editing commands, the core (pkg/nfa) owns the immutable automaton and the simulation algorithm, and adapters (memory, file, redis, loam, HTTP, MCP) move documents in and out. Arrows whose endpoints are missing are ignored at compile time rather than failing the build, so a half-finished drawing can still be run.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
		"github.com/aretw0/automata/pkg/domain"
	)

	func main() {
		doc := domain.Document{
			ID: "ends-with-a",
			States: []domain.StateRecord{
				{ID: "s", Name: "S"},
				{ID: "f", Name: "F", Final: true},
			},
			Transitions: []domain.TransitionRecord{
				{ID: "entry", ToStateID: domain.Ref("s")},
				{ID: "loop", FromStateID: domain.Ref("s"), ToStateID: domain.Ref("s"), Symbols: []string{"A", "B"}},
				{ID: "last", FromStateID: domain.Ref("s"), ToStateID: domain.Ref("f"), Symbols: []string{"A"}},
			},
		}

		eng := automata.New()
		report, err := eng.Run(context.Background(), doc, "ABA")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(report.Verdict, report.Configuration) // accepted [F S]
	}
*/
package automata
