package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/loxerror"
	"github.com/cwbudde/go-lox/internal/token"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Scan a Lox source file and print its tokens",
	Long: `Run the scanner over a Lox source file and print one token per
line as "<KIND> <lexeme> <literal>", where <literal> is
"null" for tokens that carry none.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file %s: %v\n", args[0], err)
		return exitCode(loxerror.ExitUsage)
	}

	l := lexer.New(string(source))
	tokens := l.ScanTokens()
	loxerror.ReportAll(os.Stderr, l.Errors())

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		printToken(out, tok)
	}

	if len(l.Errors()) > 0 {
		return exitCode(loxerror.ExitDataErr)
	}
	return nil
}

func printToken(out io.Writer, tok token.Token) {
	literal := "null"
	if tok.HasLiteral() {
		literal = tok.Literal.String()
	}
	fmt.Fprintf(out, "%s %s %s\n", tok.Type, tok.Lexeme, literal)
}
