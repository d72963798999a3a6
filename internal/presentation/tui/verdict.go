package tui

import (
	"os"
	"strings"

	"github.com/aretw0/automata/pkg/nfa"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// FormatVerdict renders a verdict in upper case, green for accepted and red
// for rejected. Colour is dropped when color is false.
func FormatVerdict(v nfa.Verdict, color bool) string {
	label := strings.ToUpper(v.String())
	if !color {
		return label
	}

	p := termenv.ColorProfile()
	hex := "#ef4444"
	if v == nfa.Accepted {
		hex = "#22c55e"
	}
	return termenv.String(label).Foreground(p.Color(hex)).Bold().String()
}
