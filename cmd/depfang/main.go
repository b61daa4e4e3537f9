// Package main provides the entry point for the depfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depfang/cmd/depfang/commands"
	"github.com/Sumatoshi-tech/depfang/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "depfang",
		Short: "Depfang - Python project dependency analysis",
		Long: `Depfang extracts the modules imported by the Python files of a project,
builds their dependency graph, and renders it through a pluggable outputter.

Commands:
  run       Scan a project directory and render its dependency graph
  analyze   Parse the imports of a single file
  tokens    Dump the token stream of a single file
  config    Configuration helpers`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "depfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
