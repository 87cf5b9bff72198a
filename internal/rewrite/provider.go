package rewrite

import (
	"fmt"
	"strings"
)

// Provider names accepted in configuration
const (
	ProviderAnthropic  = "anthropic"
	ProviderClaudeCode = "claude-code"
	ProviderGemini     = "gemini"
)

// ProviderConfig holds the settings shared by all providers
type ProviderConfig struct {
	Name        string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
}

// NewProvider returns the Completer for cfg.Name
func NewProvider(cfg ProviderConfig) (Completer, error) {
	switch strings.ToLower(cfg.Name) {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderClaudeCode:
		return NewClaudeCodeProvider(cfg)
	case ProviderGemini:
		return NewGeminiProvider(cfg)
	case "", "none":
		return nil, ErrRewriteDisabled
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}
