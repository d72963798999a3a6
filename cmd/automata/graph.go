package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [document-id]",
	Short: "Export the automaton as a Mermaid state diagram",
	Long: `Outputs a Mermaid stateDiagram-v2. With --input, the states visited by that
run are highlighted and its final configuration is marked current.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		doc, err := cli.LoadDocument(ctx, rt, documentArgs(cmd, args))
		if err != nil {
			return err
		}

		var trace [][]string
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			report, err := rt.Engine.Run(ctx, *doc, input)
			if err != nil {
				return err
			}
			trace = report.Trace
		}
		return cli.PrintGraph(ctx, rt, doc, trace, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("file", "f", "", "Read the document from a .json, .yaml or .yml file")
	graphCmd.Flags().String("input", "", "Highlight the run of this input")
}
