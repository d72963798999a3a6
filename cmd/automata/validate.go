package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document-id]",
	Short: "Check that an automaton has one initial state and named states",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		doc, err := cli.LoadDocument(cmd.Context(), rt, documentArgs(cmd, args))
		if err != nil {
			return err
		}

		a, rep, err := rt.Engine.Compile(cmd.Context(), *doc)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Automaton is valid! ✅\n")
		fmt.Fprintf(out, "  states:   %s\n", strings.Join(a.States(), ", "))
		fmt.Fprintf(out, "  alphabet: %s\n", strings.Join(a.Alphabet(), ", "))
		fmt.Fprintf(out, "  initial:  %s (%s)\n", a.Initial(), rep.InitialFrom)
		fmt.Fprintf(out, "  finals:   %s\n", strings.Join(a.Finals().Sorted(), ", "))
		if len(rep.Dropped) > 0 {
			fmt.Fprintf(out, "  ignored transitions without both endpoints: %s\n", strings.Join(rep.Dropped, ", "))
		}
		for _, f := range validator.Lint(a) {
			fmt.Fprintf(out, "  warning: %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "Read the document from a .json, .yaml or .yml file")
}
