package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pthm/promptly/internal/config"
	"github.com/pthm/promptly/internal/logging"
	"github.com/pthm/promptly/internal/ui"
	"github.com/pthm/promptly/internal/version"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string

	cfg    *config.Config
	logger = zap.NewNop()
	appUI  *ui.UI
)

// RootCmd is the top-level promptly command
var RootCmd = &cobra.Command{
	Use:   "promptly",
	Short: "A linter for LLM prompts",
	Long: `promptly checks prompts against a catalog of deterministic quality rules,
scores them, applies safe autofixes, and can ask a model for a rewrite.

Prompts can be plain text, markdown (with an optional "intent:" in the
frontmatter), or JSON/YAML files with "prompt" and "intent" keys.`,
	Version:      version.Short(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch format {
		case "terminal", "json", "yaml":
		default:
			return fmt.Errorf("unknown format %q (want terminal, json or yaml)", format)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded",
			zap.String("path", cfg.Path),
			zap.String("provider", cfg.Provider),
			zap.Bool("rules_only", cfg.RulesOnly),
		)

		appUI = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json, yaml)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $PROMPTLY_CONFIG or ~/.config/promptly/config.yaml)")
}

// GetUI returns the UI configured for the current command
func GetUI() *ui.UI {
	if appUI == nil {
		appUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return appUI
}

// writeStructured encodes v as JSON or YAML according to --format
func writeStructured(v interface{}) error {
	w := GetUI().Writer
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
