package fixer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/promptly/internal/parser"
	"github.com/pthm/promptly/internal/rules"
	"github.com/pthm/promptly/internal/ui"
)

const launchPrompt = "Write a good launch plan for my product.\n"

func writePrompt(t *testing.T, name, content string) *parser.PromptFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	file, err := parser.Parse(path)
	require.NoError(t, err)
	return file
}

func newFixer(opts Options) (*Fixer, *bytes.Buffer) {
	var out bytes.Buffer
	return New(opts, ui.New(&out, &out, "terminal"), nil), &out
}

func TestFix_WritesInPlace(t *testing.T) {
	file := writePrompt(t, "launch.txt", launchPrompt)
	f, _ := newFixer(Options{})

	res, err := f.Fix(file, rules.IntentWrite)
	require.NoError(t, err)

	assert.Equal(t, []string{"R004"}, res.Applied)
	assert.Equal(t, []string{"R002", "R005", "R009", "R012"}, res.Skipped)
	assert.Equal(t, file.Path, res.Written)
	assert.True(t, strings.HasSuffix(res.Fixed, "Output format: Return the answer as concise bullet points with clear headings."))

	content, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Fixed+"\n", string(content))
}

func TestFix_DryRunLeavesFile(t *testing.T) {
	file := writePrompt(t, "launch.txt", launchPrompt)
	f, out := newFixer(Options{DryRun: true})

	res, err := f.Fix(file, rules.IntentWrite)
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Empty(t, res.Written)

	content, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, launchPrompt, string(content))

	f.Print(res)
	assert.Contains(t, out.String(), "Would fix")
	assert.Contains(t, out.String(), "{+Output+}")
	assert.Contains(t, out.String(), "Hint-only (no autofix): R002, R005, R009, R012")
}

func TestFix_OutputPath(t *testing.T) {
	file := writePrompt(t, "launch.md", "---\nintent: write\n---\n"+launchPrompt)
	target := filepath.Join(t.TempDir(), "fixed.md")
	f, _ := newFixer(Options{Output: target})

	res, err := f.Fix(file, file.Intent)
	require.NoError(t, err)
	assert.Equal(t, target, res.Written)

	original, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "---\nintent: write\n---\n"+launchPrompt, string(original))

	fixed, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(fixed), "---\nintent: write\n---\nWrite a good launch plan"))
	assert.Contains(t, string(fixed), "Output format:")
}

func TestFix_RuleFilter(t *testing.T) {
	file := writePrompt(t, "launch.txt", launchPrompt)
	f, out := newFixer(Options{Rules: []string{"R016"}})

	res, err := f.Fix(file, rules.IntentWrite)
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, []string{}, res.Applied)
	assert.Empty(t, res.Written)

	f.Print(res)
	assert.Contains(t, out.String(), "Nothing to fix")
}

func TestFix_UnknownRule(t *testing.T) {
	file := writePrompt(t, "launch.txt", launchPrompt)
	f, _ := newFixer(Options{Rules: []string{"R999"}})

	_, err := f.Fix(file, rules.IntentWrite)
	assert.ErrorContains(t, err, `unknown rule "R999"`)
}
