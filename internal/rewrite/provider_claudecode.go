package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"
)

// ClaudeCodeProvider completes through a locally installed Claude Code CLI.
// The CLI takes a single prompt, so the system message is sent ahead of the
// user message.
type ClaudeCodeProvider struct {
	model string
}

// NewClaudeCodeProvider creates a provider using cfg.Model (default "sonnet")
func NewClaudeCodeProvider(cfg ProviderConfig) (*ClaudeCodeProvider, error) {
	model := cfg.Model
	if model == "" {
		model = "sonnet"
	}
	return &ClaudeCodeProvider{model: model}, nil
}

// Complete implements Completer
func (p *ClaudeCodeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	iterator, err := claudecode.Query(ctx, system+"\n\n"+user,
		claudecode.WithModel(p.model),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		if claudecode.IsCLINotFoundError(err) {
			return "", fmt.Errorf("%w: Claude Code CLI not found", ErrRewriteDisabled)
		}
		return "", fmt.Errorf("claude code error: %w", err)
	}
	defer iterator.Close()

	var sb strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return "", fmt.Errorf("error reading claude response: %w", err)
		}

		if assistantMsg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range assistantMsg.Content {
				if textBlock, ok := block.(*claudecode.TextBlock); ok {
					sb.WriteString(textBlock.Text)
				}
			}
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from claude code")
	}
	return sb.String(), nil
}
