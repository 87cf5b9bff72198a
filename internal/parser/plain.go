package parser

import (
	"strings"
)

// PlainParser parses plain text files with no special structure
type PlainParser struct{}

// CanParse returns true (fallback parser)
func (p *PlainParser) CanParse(path string) bool {
	return true
}

// Parse treats the whole file as the prompt
func (p *PlainParser) Parse(path string, content []byte) (*PromptFile, error) {
	lines := strings.Split(string(content), "\n")

	return &PromptFile{
		Path:     path,
		Content:  content,
		FileType: FileTypePlain,
		Prompt:   string(content),
		Sections: []Section{
			{
				Title:     "Content",
				Level:     1,
				StartLine: 1,
				EndLine:   len(lines),
				Content:   string(content),
			},
		},
	}, nil
}

// Render writes the prompt followed by a single newline
func (p *PlainParser) Render(file *PromptFile, prompt string) ([]byte, error) {
	return []byte(strings.TrimRight(prompt, "\n") + "\n"), nil
}
