package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the program name and version, coloured when the
// terminal supports it.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	name := termenv.String("automata").Foreground(p.Color("#818cf8")).Bold()
	ver := termenv.String("v" + strings.TrimSpace(version)).Foreground(p.Color("#c084fc"))
	fmt.Fprintf(w, "%s %s\n", name, ver)
}
