package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinexus/stylecore"
	"github.com/obinexus/stylecore/internal/printer"
)

// tokensCmd dumps the raw token stream for one file. Mostly a debugging aid
// for inspecting how an input lexes before it reaches the parser.
var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream for a stylesheet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal("Failed to read file", zap.String("file", args[0]), zap.Error(err))
		}

		res := stylecore.Tokenize(string(source))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tKIND\tVALUE")
		for _, tok := range res.Tokens {
			fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Value)
		}
		_ = w.Flush()

		if len(res.Errors) > 0 {
			fmt.Print(printer.FormatDiagnostics(args[0], res.Errors, printer.FromSource(string(source))))
			os.Exit(1)
		}
	},
}
