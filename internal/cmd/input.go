package cmd

import (
	"fmt"
	"io"

	"github.com/pthm/promptly/internal/parser"
	"github.com/pthm/promptly/internal/rules"
)

// inlinePromptPath is the display path for prompts given with --prompt
const inlinePromptPath = "<prompt>"

// loadPrompts resolves the prompt sources for a command: inline text, the
// named files, or stdin when neither is given.
func loadPrompts(stdin io.Reader, args []string, inline string) ([]*parser.PromptFile, error) {
	if inline != "" {
		file, err := (&parser.PlainParser{}).Parse(inlinePromptPath, []byte(inline))
		if err != nil {
			return nil, err
		}
		return []*parser.PromptFile{file}, nil
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == parser.StdinPath) {
		file, err := parser.ParseReader(stdin)
		if err != nil {
			return nil, err
		}
		return []*parser.PromptFile{file}, nil
	}

	files := make([]*parser.PromptFile, 0, len(args))
	for _, path := range args {
		file, err := parser.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompt: %w", err)
		}
		files = append(files, file)
	}
	return files, nil
}

// resolveIntent picks the --intent flag, then the file's declared intent, then
// the configured default.
func resolveIntent(flag string, file *parser.PromptFile) rules.Intent {
	if flag != "" {
		return rules.ParseIntent(flag)
	}
	if file != nil && file.Intent != "" {
		return file.Intent
	}
	return cfg.Intent()
}
