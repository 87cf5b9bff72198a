package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/promptly/internal/rewrite"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize a saved model rewrite response",
	Long: `Recover the rewrite JSON from raw model output (fenced, bare, or wrapped
in prose) and print it in canonical form. Reads stdin when no file is given.

Examples:
  promptly normalize response.txt
  pbpaste | promptly normalize --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	RootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	parsed, ok := rewrite.ParseModelJSON(string(raw))
	if !ok {
		return rewrite.ErrInvalidResponse
	}
	normalized := rewrite.Normalize(parsed)
	if normalized == nil {
		return rewrite.ErrInvalidResponse
	}

	// Terminal output is JSON too; the canonical form is the point.
	return writeStructured(normalized)
}
