package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Build and run nondeterministic finite automata",
	Long: `automata compiles drawn automata (states, arrows, symbols, epsilon moves)
into NFAs and decides whether input words are accepted.

Documents come from the configured store (memory, file, redis or a loam
repository of Markdown files) or from a single file given with --file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "automata.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("store", "", "Document store: memory, file, redis or loam")
	rootCmd.PersistentFlags().String("dir", "", "Document directory for the file and loam stores")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail on input symbols outside the alphabet instead of rejecting")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every run at debug level")
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("store") {
		cfg.Store.Kind, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("dir") {
		cfg.Store.Dir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictAlphabet, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Lookup("listen") != nil && cmd.Flags().Changed("listen") {
		cfg.Listen, _ = cmd.Flags().GetString("listen")
	}
	return cfg, cfg.Validate()
}

// newRuntime builds the engine for a command; callers must Close it.
func newRuntime(cmd *cobra.Command) (*cli.Runtime, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	rt, err := cli.NewRuntime(cfg, debug)
	return rt, cfg, err
}

// documentArgs reads the document selector shared by run, validate and graph.
func documentArgs(cmd *cobra.Command, args []string) cli.RunOptions {
	opts := cli.RunOptions{}
	opts.DocumentPath, _ = cmd.Flags().GetString("file")
	if len(args) > 0 {
		opts.DocumentID = args[0]
	}
	return opts
}
