package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
)

// Session commands, typed on a line of their own.
const (
	cmdQuit  = ":q"
	cmdGraph = ":graph"
	cmdHelp  = ":help"
)

// RunSession reads one input per line from in and prints its verdict until
// EOF, ":q" or cancellation. Errors for a single input are printed and the
// session continues.
func RunSession(ctx context.Context, rt *Runtime, doc *domain.Document, in io.Reader, out io.Writer, color bool) error {
	tui.PrintBanner(out, automata.Version)

	if err := rt.Engine.Validate(ctx, *doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "Type a word and press enter. %s shows the diagram, %s quits.\n", cmdGraph, cmdQuit)

	opts := RunOptions{Rich: color}
	var lastTrace [][]string

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case cmdQuit:
			return nil
		case cmdHelp:
			fmt.Fprintf(out, "%s  show the diagram of the last run\n%s  quit\n", cmdGraph, cmdQuit)
			continue
		case cmdGraph:
			if err := PrintGraph(ctx, rt, doc, lastTrace, out); err != nil {
				return err
			}
			continue
		}

		report, err := rt.Engine.Run(ctx, *doc, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		lastTrace = report.Trace
		if err := writeReport(out, report, opts); err != nil {
			return err
		}
		if color {
			fmt.Fprintln(out, tui.FormatVerdict(report.Verdict, true))
		}
	}
}
