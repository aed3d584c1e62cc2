package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vexc",
		Short: "vexc - the VEX template compiler",
		Long: `vexc compiles VEX templates into render functions: a program that
builds a virtual DOM tree through runtime helpers, plus the hoisted
static render functions it references.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("project", ".", "Directory holding vexc.json or vexc.yaml")

	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
