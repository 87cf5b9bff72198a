package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/parser"
	"github.com/pthm/promptly/internal/reporter"
)

var (
	reportIntent string
	reportPrompt string
)

var reportCmd = &cobra.Command{
	Use:   "report [files...]",
	Short: "Generate a detailed report for prompts",
	Long: `Generate a report combining the analysis with prompt metrics.

This includes:
  - Score, label and suggestions
  - Character, word, line and estimated token counts
  - Markdown section count
  - Suggestion counts by severity and category

Examples:
  promptly report prompt.md
  promptly report --format json prompts/*.md > report.json`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportIntent, "intent", "i", "", "Prompt intent")
	reportCmd.Flags().StringVarP(&reportPrompt, "prompt", "p", "", "Report on this prompt text instead of files")
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	u := GetUI()

	files, err := loadPrompts(cmd.InOrStdin(), args, reportPrompt)
	if err != nil {
		return err
	}

	reports := make([]reporter.FileReport, 0, len(files))
	for _, file := range files {
		res := analyzer.Analyze(file.Prompt, resolveIntent(reportIntent, file))
		metrics := analyzer.ComputeMetrics(file.Prompt, res)

		report := reporter.FileReport{Path: file.Path, Result: res, Metrics: metrics}
		if file.FileType == parser.FileTypeMarkdown {
			report.Sections = parser.CountSections(file.Sections)
		}
		reports = append(reports, report)
	}

	rep, err := reporter.New(format, u.Writer, verbose)
	if err != nil {
		return err
	}
	return rep.Report(reports)
}
