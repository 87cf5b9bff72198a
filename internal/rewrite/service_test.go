package rewrite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/promptly/internal/diff"
	"github.com/pthm/promptly/internal/rules"
)

type fakeCompleter struct {
	reply  string
	err    error
	system string
	user   string
	ctx    context.Context
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.ctx, f.system, f.user = ctx, system, user
	return f.reply, f.err
}

func TestService_Rewrite(t *testing.T) {
	fake := &fakeCompleter{reply: "```json\n" + `{
		"critic": {"summary": "Needs format", "priority_issues": []},
		"rewriter": {"improved_prompt": "Write a launch plan.\n\nOutput format: bullets.", "change_notes": ["Added format"]}
	}` + "\n```"}
	svc := NewService(fake, WithTimeout(time.Minute))

	req := NewRequest("Write a launch plan.", rules.IntentWrite, nil)
	res, err := svc.Rewrite(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, CombinedSystemPrompt, fake.system)
	assert.Contains(t, fake.user, `"prompt": "Write a launch plan."`)
	_, hasDeadline := fake.ctx.Deadline()
	assert.True(t, hasDeadline)

	assert.Equal(t, "Write a launch plan.\n\nOutput format: bullets.", res.Rewrite.Rewriter.ImprovedPrompt)
	assert.Equal(t, "Write a launch plan.", diff.Original(res.Diff))
	assert.Equal(t, res.Rewrite.Rewriter.ImprovedPrompt, diff.Improved(res.Diff))
}

func TestService_Errors(t *testing.T) {
	req := NewRequest("Explain DNS.", rules.IntentOther, nil)

	_, err := NewService(nil).Rewrite(context.Background(), req)
	assert.ErrorIs(t, err, ErrRewriteDisabled)

	_, err = NewService(&fakeCompleter{reply: "Sorry, I can't help."}).Rewrite(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = NewService(&fakeCompleter{reply: `{"critic":{"summary":"only critique"}}`}).Rewrite(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	boom := errors.New("boom")
	_, err = NewService(&fakeCompleter{err: boom}).Rewrite(context.Background(), req)
	assert.ErrorIs(t, err, boom)
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(ProviderConfig{})
	assert.ErrorIs(t, err, ErrRewriteDisabled)

	_, err = NewProvider(ProviderConfig{Name: "anthropic"})
	assert.ErrorIs(t, err, ErrRewriteDisabled)

	_, err = NewProvider(ProviderConfig{Name: "gemini"})
	assert.ErrorIs(t, err, ErrRewriteDisabled)

	_, err = NewProvider(ProviderConfig{Name: "openrouter"})
	assert.EqualError(t, err, `unknown provider "openrouter"`)

	p, err := NewProvider(ProviderConfig{Name: "claude-code"})
	require.NoError(t, err)
	assert.Equal(t, "sonnet", p.(*ClaudeCodeProvider).model)

	p, err = NewProvider(ProviderConfig{Name: "anthropic", APIKey: "sk-test", MaxTokens: 1024})
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicModel, p.(*AnthropicProvider).model)
}
