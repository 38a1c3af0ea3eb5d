package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/loxerror"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a single Lox expression and print its AST",
	Long: `Scan and parse a file containing a single Lox expression (a trailing
semicolon is permitted), then print the fully parenthesized prefix form
of its AST, e.g. "(+ 1.0 (* 2.0 3.0))".`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(cmd.OutOrStdout(), expr.String())
	return nil
}
