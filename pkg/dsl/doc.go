/*
Package dsl provides a fluent builder for automaton documents.

It lets tests and embedding programs declare states and arrows in Go instead of
drawing them or writing JSON by hand.

Example usage:

	b := dsl.New("ends-with-a").Name("Words ending in a")

	b.State("q0").Initial().
		On("q0", "a", "b").
		On("q1", "a")

	b.State("q1").Final()

	doc := b.Build()
	report, err := automata.New().Run(ctx, doc, "aba")
*/
package dsl
