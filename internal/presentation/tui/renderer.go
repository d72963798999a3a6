package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// ReportMarkdown formats a run report as Markdown: a summary line followed
// by one table row per step of the trace.
func ReportMarkdown(r *automata.Report) string {
	var sb strings.Builder

	title := r.DocumentID
	if title == "" {
		title = "automaton"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**%s** `%s` in %s\n\n", strings.ToUpper(r.Verdict.String()), r.Input, r.Duration))

	if len(r.Unknown) > 0 {
		sb.WriteString(fmt.Sprintf("> Not in the alphabet: %s\n\n", codeList(r.Unknown)))
	}
	if len(r.Dropped) > 0 {
		sb.WriteString(fmt.Sprintf("> Ignored transitions without both endpoints: %s\n\n", codeList(r.Dropped)))
	}

	sb.WriteString("| Step | Symbol | Configuration |\n")
	sb.WriteString("|---:|:---|:---|\n")
	for i, cfg := range r.Trace {
		sym := "-"
		if i > 0 {
			sym = "`" + r.Symbols[i-1] + "`"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", i, sym, formatConfiguration(cfg)))
	}

	return sb.String()
}

func formatConfiguration(cfg []string) string {
	if len(cfg) == 0 {
		return "∅"
	}
	return "{" + strings.Join(cfg, ", ") + "}"
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}
