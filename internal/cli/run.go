package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	// DocumentPath reads the document from a .json, .yaml or .yml file
	// instead of the configured store.
	DocumentPath string
	DocumentID   string

	Inputs []string

	JSON  bool // one JSON report per line
	Graph bool // append a Mermaid diagram of the last run
	Rich  bool // render Markdown reports with colour
}

// LoadDocument resolves the document named by opts.
func LoadDocument(ctx context.Context, rt *Runtime, opts RunOptions) (*domain.Document, error) {
	if opts.DocumentPath != "" {
		doc, err := file.ReadFile(opts.DocumentPath)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", opts.DocumentPath, err)
		}
		return doc, nil
	}
	if opts.DocumentID == "" {
		return nil, fmt.Errorf("a document ID or --file is required")
	}
	return rt.Engine.Load(ctx, opts.DocumentID)
}

// Execute runs every input of opts against doc and writes one report each.
func Execute(ctx context.Context, rt *Runtime, doc *domain.Document, opts RunOptions, out io.Writer) error {
	var last *automata.Report
	for _, input := range opts.Inputs {
		report, err := rt.Engine.Run(ctx, *doc, input)
		if err != nil {
			return err
		}
		if err := writeReport(out, report, opts); err != nil {
			return err
		}
		last = report
	}

	if opts.Graph {
		var trace [][]string
		if last != nil {
			trace = last.Trace
		}
		return PrintGraph(ctx, rt, doc, trace, out)
	}
	return nil
}

// PrintGraph writes the Mermaid diagram of doc, highlighting trace when set.
func PrintGraph(ctx context.Context, rt *Runtime, doc *domain.Document, trace [][]string, out io.Writer) error {
	a, _, err := rt.Engine.Compile(ctx, *doc)
	if err != nil {
		return err
	}
	var overlay *graph.GraphOverlay
	if trace != nil {
		overlay = graph.OverlayFromTrace(trace)
	}
	_, err = fmt.Fprint(out, graph.GenerateMermaid(a, overlay))
	return err
}

func writeReport(out io.Writer, report *automata.Report, opts RunOptions) error {
	switch {
	case opts.JSON:
		return json.NewEncoder(out).Encode(report)
	case opts.Rich:
		rendered, err := tui.NewRenderer()(tui.ReportMarkdown(report))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	default:
		_, err := fmt.Fprintf(out, "%s\t%q\t{%s}\n",
			tui.FormatVerdict(report.Verdict, false),
			report.Input,
			strings.Join(report.Configuration, ","),
		)
		return err
	}
}
