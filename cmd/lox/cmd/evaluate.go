package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/loxerror"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Parse and evaluate a single Lox expression",
	Long: `Scan, parse, and evaluate a file containing a single Lox expression
(a trailing semicolon is permitted), then print the resulting value.
A single expression has no enclosing program scope to resolve, so this
subcommand composes the scanner, parser, and evaluator without the
resolver — every variable it names is a global lookup.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file %s: %v\n", args[0], err)
		return exitCode(loxerror.ExitUsage)
	}

	l := lexer.New(string(source))
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		loxerror.ReportAll(os.Stderr, errs)
		return exitCode(loxerror.ExitDataErr)
	}

	p := parser.New(tokens)
	expr := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		loxerror.ReportAll(os.Stderr, errs)
		return exitCode(loxerror.ExitDataErr)
	}

	interpreter := interp.New(cmd.OutOrStdout())
	value, err := interpreter.EvaluateExpr(expr)
	if err != nil {
		loxerror.Report(os.Stderr, err)
		return exitCode(loxerror.ExitSoftware)
	}

	fmt.Fprintln(cmd.OutOrStdout(), value.String())
	return nil
}
