package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
)

// NewTokensCommand creates the tokens command: dump the raw token stream of
// a Python file. Mostly useful for debugging grammar issues in a source file
// the parser rejects.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a Python file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTokens(cobraCmd.OutOrStdout(), cobraCmd.InOrStdin(), args[0])
		},
	}
}

func runTokens(stdout io.Writer, stdin io.Reader, path string) error {
	src, err := readSource(stdin, path)
	if err != nil {
		return err
	}

	tokens, err := pysrc.Tokenise(src)
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", path, err)
	}

	for index, token := range tokens {
		if _, err := fmt.Fprintf(stdout, "%4d  %-10s %q\n", index, token.Kind, token.Value); err != nil {
			return err
		}
	}

	return nil
}
