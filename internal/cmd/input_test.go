package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/promptly/internal/parser"
)

func TestLoadPrompts_Sources(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		inline   string
		wantPath string
		want     string
	}{
		{"stdin without args", "Summarize this.\n", nil, "", parser.StdinPath, "Summarize this."},
		{"stdin dash", "Draft a reply.", []string{"-"}, "", parser.StdinPath, "Draft a reply."},
		{"inline wins over stdin", "ignored", nil, "Write a poem.", inlinePromptPath, "Write a poem."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := loadPrompts(strings.NewReader(tt.stdin), tt.args, tt.inline)
			require.NoError(t, err)
			require.Len(t, files, 1)
			assert.Equal(t, tt.wantPath, files[0].Path)
			assert.Equal(t, tt.want, strings.TrimSpace(files[0].Prompt))
		})
	}
}

func TestLoadPrompts_StdinFrontmatter(t *testing.T) {
	files, err := loadPrompts(strings.NewReader("---\nintent: summarize\n---\nSummarize the notes.\n"), nil, "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "summarize", string(files[0].Intent))
	assert.Contains(t, files[0].Prompt, "Summarize the notes.")
}
