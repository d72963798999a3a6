/*
Package editor bridges editor documents and the nfa package.

It owns the conventions the drawing editor applies before anything is simulated:
symbols are whitespace-free and uppercase, arrows without a source mark the initial
state, and arrows that are not attached at both ends are ignored. It also provides the
editing commands that keep a domain.Document consistent while the user draws.
*/
package editor
