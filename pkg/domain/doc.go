/*
Package domain contains the records the editor draws and the engine reads.

It is kept pure and free of I/O so every adapter (memory, file, redis, loam,
HTTP and MCP) shares the same types.

# Key Entities

  - Document: one drawn automaton, its states and its arrows.
  - StateRecord: a state circle. Its Name is what simulation sees.
  - TransitionRecord: an arrow. Either endpoint may be missing while it is drawn.
  - Shape: a stroke already recognized by the UI.
  - LifecycleHooks: callbacks fired around runs and failed builds.
*/
package domain
