package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [document-id] [-i input]...",
	Short: "Run input words through an automaton",
	Long: `Runs each --input through the automaton and prints its verdict and final
configuration. Without --input, starts an interactive session that reads one
word per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		opts := documentArgs(cmd, args)
		opts.Inputs, _ = cmd.Flags().GetStringArray("input")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Graph, _ = cmd.Flags().GetBool("graph")
		opts.Rich = !opts.JSON && tui.IsTerminal(os.Stdout)

		doc, err := cli.LoadDocument(ctx, rt, opts)
		if err != nil {
			return err
		}

		if len(opts.Inputs) == 0 && !cmd.Flags().Changed("input") {
			return cli.RunSession(ctx, rt, doc, cmd.InOrStdin(), cmd.OutOrStdout(), opts.Rich)
		}
		return cli.Execute(ctx, rt, doc, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("file", "f", "", "Read the document from a .json, .yaml or .yml file")
	runCmd.Flags().StringArrayP("input", "i", nil, "Input word (repeatable)")
	runCmd.Flags().Bool("json", false, "Print one JSON report per input")
	runCmd.Flags().Bool("graph", false, "Print a Mermaid diagram highlighting the last run")
}
