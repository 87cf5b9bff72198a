package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/parser"
	"github.com/pthm/promptly/internal/reporter"
	"github.com/pthm/promptly/internal/ui"
	"github.com/pthm/promptly/internal/watch"
)

var (
	intentFlag string
	promptFlag string
	minScore   int
	watchFlag  bool
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [files...]",
	Aliases: []string{"lint"},
	Short:   "Score prompts against the rule catalog",
	Long: `Analyze one or more prompts and report a score, label and ranked suggestions.

With no files the prompt is read from stdin.

Examples:
  promptly analyze prompt.md
  promptly analyze --intent code prompts/*.txt
  promptly analyze --prompt "Write a good launch plan for my product."
  promptly analyze --format json prompt.md > report.json
  promptly analyze --watch prompts/*.md`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&intentFlag, "intent", "i", "", "Prompt intent (write, analyze, summarize, code, brainstorm, other)")
	analyzeCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Analyze this prompt text instead of files")
	analyzeCmd.Flags().IntVar(&minScore, "min-score", 0, "Exit non-zero when any prompt scores below this value")
	analyzeCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-analyze files whenever they change")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	u := GetUI()

	progress := u.StartProgress(ui.StageLoadFiles)
	defer progress.Done()

	files, err := loadPrompts(cmd.InOrStdin(), args, promptFlag)
	if err != nil {
		return err
	}

	progress.SetStage(ui.StageAnalyze)
	progress.SetTotal(len(files))
	reports := analyzeFiles(files, progress)
	progress.Done()

	rep, err := reporter.New(format, u.Writer, verbose)
	if err != nil {
		return err
	}
	if err := rep.Report(reports); err != nil {
		return err
	}

	if watchFlag {
		return watchFiles(cmd.Context(), args, rep)
	}
	return checkMinScore(reports)
}

// watchFiles re-analyzes and reports each file as it changes until interrupted
func watchFiles(ctx context.Context, paths []string, rep reporter.Reporter) error {
	if promptFlag != "" || len(paths) == 0 || (len(paths) == 1 && paths[0] == parser.StdinPath) {
		return fmt.Errorf("--watch needs prompt files")
	}

	w, err := watch.New(paths, watch.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintln(GetUI().ErrWriter, GetUI().Styles.Subheader.Render("Watching for changes (Ctrl+C to stop)..."))
	return w.Run(ctx, func(path string) {
		file, err := parser.Parse(path)
		if err != nil {
			logger.Warn("failed to reload prompt", zap.String("path", path), zap.Error(err))
			return
		}
		res := analyzer.Analyze(file.Prompt, resolveIntent(intentFlag, file))
		if err := rep.Report([]reporter.FileReport{{Path: file.Path, Result: res}}); err != nil {
			logger.Warn("failed to report", zap.String("path", path), zap.Error(err))
		}
	})
}

// analyzeFiles scores files concurrently; results keep the input order
func analyzeFiles(files []*parser.PromptFile, progress *ui.Progress) []reporter.FileReport {
	reports := make([]reporter.FileReport, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			progress.FileStart(file.Path)
			intent := resolveIntent(intentFlag, file)
			res := analyzer.Analyze(file.Prompt, intent)
			logger.Debug("analyzed prompt",
				zap.String("path", file.Path),
				zap.String("intent", string(intent)),
				zap.Int("score", res.Score),
				zap.Int("suggestions", len(res.Suggestions)),
			)
			reports[i] = reporter.FileReport{Path: file.Path, Result: res}
			progress.FileDone()
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func checkMinScore(reports []reporter.FileReport) error {
	if minScore <= 0 {
		return nil
	}
	var failing int
	for _, r := range reports {
		if r.Result.Score < minScore {
			failing++
		}
	}
	if failing > 0 {
		return fmt.Errorf("%d prompt(s) scored below %d", failing, minScore)
	}
	return nil
}
