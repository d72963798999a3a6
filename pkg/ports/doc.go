/*
Package ports defines the driven ports (interfaces) around the automata engine.

These interfaces decouple the simulator from the editor's collaborators, allowing the
engine to work with various document backends and identifier schemes.

# Key Interfaces

  - DocumentLoader: read-only access to automaton documents (e.g., a Loam library).
  - DocumentStore: read-write persistence of documents (Memory, File, Redis).
  - IDGenerator: produces unique keys for new states and transitions.
  - ShapeRecognizer: turns pencil strokes into typed shapes for the editor.
*/
package ports
