// Package cmd implements the CLI driver: a thin front end that wires
// the scanner, parser, resolver, and evaluator together for four
// subcommands and prints their results. The interpreter packages under
// internal/ carry none of this wiring.
package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/loxerror"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "A tree-walking interpreter for the Lox language",
	Long: `lox is a tree-walking interpreter for the Lox programming language
described in Robert Nystrom's Crafting Interpreters.

It exposes the interpreter's four pipeline stages — scanner, parser, resolver,
and evaluator — through four subcommands:

  tokenize <file>  scan source into tokens
  parse <file>     parse a single expression and print its AST
  evaluate <file>  parse and evaluate a single expression
  run <file>       run a full program through every stage`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command and returns the process exit code.
// main.go is the only place that calls os.Exit.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			return int(code)
		}
		fmt.Fprintln(os.Stderr, err)
		return loxerror.ExitUsage
	}
	return 0
}

// exitCode is returned by a subcommand's RunE to signal a specific
// exit code (64 for usage, 65 or 70 for a pipeline stage) without
// cobra printing an additional error line for what is already reported
// on stderr.
type exitCode int

func (e exitCode) Error() string { return "" }
