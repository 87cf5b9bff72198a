package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/promptly/internal/fixer"
	"github.com/pthm/promptly/internal/parser"
)

var (
	dryRun    bool
	fixRules  []string
	fixOutput string
	fixIntent string
	fixPrompt string
)

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Apply autofixes to prompts",
	Long: `Apply the autofix for every fixable suggestion and show a word diff.

Fixes are applied in severity order, each one feeding the next. Files are
rewritten in place unless --dry-run or --output is given. Prompts read from
stdin (or --prompt) are printed instead of written.

Examples:
  promptly fix prompt.md
  promptly fix --dry-run prompt.md
  promptly fix --rule R004 --rule R016 prompt.json
  promptly fix --output fixed.md prompt.md`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without applying them")
	fixCmd.Flags().StringSliceVarP(&fixRules, "rule", "r", nil, "Only apply fixes for these rule ids")
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "Write the fixed prompt here instead of in place")
	fixCmd.Flags().StringVarP(&fixIntent, "intent", "i", "", "Prompt intent")
	fixCmd.Flags().StringVarP(&fixPrompt, "prompt", "p", "", "Fix this prompt text instead of files")
	RootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	u := GetUI()

	files, err := loadPrompts(cmd.InOrStdin(), args, fixPrompt)
	if err != nil {
		return err
	}
	if fixOutput != "" && len(files) > 1 {
		return fmt.Errorf("--output can only be used with a single prompt")
	}

	var results []*fixer.Result
	for _, file := range files {
		opts := fixer.Options{DryRun: dryRun, Rules: fixRules, Output: fixOutput}
		if (file.Path == inlinePromptPath || file.Path == parser.StdinPath) && fixOutput == "" {
			opts.DryRun = true
		}

		f := fixer.New(opts, u, logger)
		res, err := f.Fix(file, resolveIntent(fixIntent, file))
		if err != nil {
			return err
		}
		results = append(results, res)

		if !u.IsStructured() && fixOutput != parser.StdinPath {
			f.Print(res)
		}
	}

	if u.IsStructured() {
		return writeStructured(results)
	}
	return nil
}
