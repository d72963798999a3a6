package loam

// DocumentMetadata is the frontmatter of an automaton authored as Markdown.
// States are referenced by name; the Markdown body becomes the description.
//
//	---
//	name: ends with a
//	initial: S
//	finals: [F]
//	states: [S, F]
//	transitions:
//	  - {from: S, to: F, symbols: [A]}
//	  - {from: F, to: S, epsilon: true}
//	---
type DocumentMetadata struct {
	ID          string             `json:"id" mapstructure:"id"`
	Name        string             `json:"name" mapstructure:"name"`
	States      []string           `json:"states" mapstructure:"states"`
	Initial     string             `json:"initial" mapstructure:"initial"`
	Finals      []string           `json:"finals" mapstructure:"finals"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
}

// LoaderTransition is one arrow in the frontmatter. An empty From marks an
// entry arrow pointing at the initial state.
type LoaderTransition struct {
	From    string   `json:"from" mapstructure:"from"`
	To      string   `json:"to" mapstructure:"to"`
	Symbols []string `json:"symbols" mapstructure:"symbols"`
	Epsilon bool     `json:"epsilon" mapstructure:"epsilon"`
}
