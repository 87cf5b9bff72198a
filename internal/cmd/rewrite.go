package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/diff"
	"github.com/pthm/promptly/internal/rewrite"
	"github.com/pthm/promptly/internal/ui"
)

var (
	rewriteIntent  string
	rewritePrompt  string
	rewriteVariant string
	payloadOnly    bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [file]",
	Short: "Ask a model to critique and rewrite a prompt",
	Long: `Analyze a prompt, send it with its findings to the configured model
provider, and print the chosen rewrite variant with a word diff.

The provider is set in the config file (anthropic, claude-code or gemini).
rules_only: true disables this command.

Examples:
  promptly rewrite prompt.md
  promptly rewrite --variant short prompt.md
  promptly rewrite --payload prompt.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteIntent, "intent", "i", "", "Prompt intent")
	rewriteCmd.Flags().StringVarP(&rewritePrompt, "prompt", "p", "", "Rewrite this prompt text instead of a file")
	rewriteCmd.Flags().StringVar(&rewriteVariant, "variant", rewrite.VariantDefault, "Variant to print (default, short, strict_format)")
	rewriteCmd.Flags().BoolVar(&payloadOnly, "payload", false, "Print the system prompt and user message without calling a provider")
	RootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	u := GetUI()

	files, err := loadPrompts(cmd.InOrStdin(), args, rewritePrompt)
	if err != nil {
		return err
	}
	file := files[0]
	intent := resolveIntent(rewriteIntent, file)

	analysis := analyzer.Analyze(file.Prompt, intent)
	req := rewrite.NewRequest(strings.TrimSpace(file.Prompt), intent, analysis.Suggestions)

	if payloadOnly {
		return printPayload(req)
	}

	svc, err := newRewriteService()
	if err != nil {
		return err
	}

	spinner := u.StartSpinner(ui.StageRewrite, fmt.Sprintf("Rewriting with %s...", cfg.Provider))
	res, err := svc.Rewrite(cmd.Context(), req)
	spinner.Done()
	if err != nil {
		if errors.Is(err, rewrite.ErrInvalidResponse) {
			logger.Warn("provider returned an unusable rewrite", zap.String("provider", cfg.Provider))
		}
		return err
	}

	if u.IsStructured() {
		return writeStructured(res)
	}
	return printRewrite(res, analysis)
}

func newRewriteService() (*rewrite.Service, error) {
	if cfg.RulesOnly {
		return nil, fmt.Errorf("%w: rules_only is enabled", rewrite.ErrRewriteDisabled)
	}

	provider, err := rewrite.NewProvider(rewrite.ProviderConfig{
		Name:        cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey(),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return rewrite.NewService(provider,
		rewrite.WithTimeout(cfg.Timeout),
		rewrite.WithLogger(logger),
	), nil
}

type payloadOutput struct {
	System string `json:"system" yaml:"system"`
	User   string `json:"user" yaml:"user"`
}

func printPayload(req rewrite.Request) error {
	user, err := rewrite.BuildUserMessage(req)
	if err != nil {
		return err
	}
	if GetUI().IsStructured() {
		return writeStructured(payloadOutput{System: rewrite.CombinedSystemPrompt, User: user})
	}
	w := GetUI().Writer
	fmt.Fprintln(w, rewrite.CombinedSystemPrompt)
	fmt.Fprintln(w)
	fmt.Fprintln(w, user)
	return nil
}

func printRewrite(res *rewrite.Result, analysis *analyzer.Result) error {
	u := GetUI()
	w := u.Writer
	s := u.Styles

	text, ok := res.Rewrite.Variant(rewriteVariant)
	if !ok {
		return fmt.Errorf("variant %q not available (have default, short%s)", rewriteVariant, strictHint(res.Rewrite))
	}

	critic := res.Rewrite.Critic
	if critic.Summary != "" {
		fmt.Fprintln(w, s.Header.Render("Critique"))
		fmt.Fprintf(w, "  %s\n", critic.Summary)
	}
	for _, issue := range critic.PriorityIssues {
		style, icon := s.Severity(issue.Severity)
		line := fmt.Sprintf("  %s %s", icon, issue.Title)
		if issue.LinkedRuleID != "" {
			line += s.Rule.Render(" [" + issue.LinkedRuleID + "]")
		}
		fmt.Fprintln(w, style.Render(line))
		if issue.Reason != "" {
			fmt.Fprintf(w, "    %s\n", issue.Reason)
		}
		fmt.Fprintf(w, "    Fix: %s\n", issue.FixHint)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("Rewrite (%s)", rewriteVariant)))
	fmt.Fprintln(w, u.RenderMarkdown(text))

	if len(res.Rewrite.Rewriter.ChangeNotes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render("Changes"))
		for _, note := range res.Rewrite.Rewriter.ChangeNotes {
			fmt.Fprintf(w, "  - %s\n", note)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Header.Render("Diff"))
	fmt.Fprintln(w, diff.Terminal(diff.Words(res.Original, text), s.Diff))

	after := analyzer.Analyze(text, analysis.Meta.Intent)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Subheader.Render(fmt.Sprintf("Score %d -> ", analysis.Score))+
		s.Score(after.Score).Render(fmt.Sprintf("%d (%s)", after.Score, after.Label.Title())))
	return nil
}

func strictHint(n *rewrite.NormalizedRewrite) string {
	if _, ok := n.Variant(rewrite.VariantStrictFormat); ok {
		return ", strict_format"
	}
	return ""
}
