package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/promptly/internal/diff"
)

var diffHTML bool

var diffCmd = &cobra.Command{
	Use:   "diff <original> <improved>",
	Short: "Show a word-level diff between two prompts",
	Long: `Compare two prompt files word by word, preserving whitespace.

Examples:
  promptly diff prompt.md prompt.fixed.md
  promptly diff --html before.txt after.txt > diff.html`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffHTML, "html", false, "Render the diff as inline HTML")
	RootCmd.AddCommand(diffCmd)
}

// diffOutput is the structured form of a diff
type diffOutput struct {
	Segments []diff.Segment `json:"segments" yaml:"segments"`
	Stats    diff.Stats     `json:"stats" yaml:"stats"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	u := GetUI()

	original, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read original: %w", err)
	}
	improved, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read improved: %w", err)
	}

	segments := diff.Words(string(original), string(improved))

	switch {
	case u.IsStructured():
		return writeStructured(diffOutput{Segments: segments, Stats: diff.Count(segments)})
	case diffHTML:
		fmt.Fprintln(u.Writer, diff.HTML(segments))
	default:
		fmt.Fprintln(u.Writer, diff.Terminal(segments, u.Styles.Diff))
		st := diff.Count(segments)
		fmt.Fprintln(u.Writer, u.Styles.Subheader.Render(
			fmt.Sprintf("%d words added, %d removed, %d unchanged", st.Added, st.Removed, st.Equal),
		))
	}
	return nil
}
