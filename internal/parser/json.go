package parser

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNoPrompt is returned when a structured prompt file lacks a "prompt" string
var ErrNoPrompt = errors.New("no prompt field")

// JSONParser parses JSON prompt files of the form {"prompt": "...", "intent": "..."}
type JSONParser struct{}

// CanParse returns true if this parser can handle the file
func (p *JSONParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeJSON
}

// Parse parses a JSON prompt file
func (p *JSONParser) Parse(path string, content []byte) (*PromptFile, error) {
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("invalid JSON")
	}

	prompt := gjson.GetBytes(content, "prompt")
	if prompt.Type != gjson.String {
		return nil, ErrNoPrompt
	}

	var intent interface{}
	if v := gjson.GetBytes(content, "intent"); v.Type == gjson.String {
		intent = v.String()
	}

	return &PromptFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeJSON,
		Prompt:   prompt.String(),
		Intent:   intentFrom(intent),
	}, nil
}

// Render replaces the "prompt" value, leaving the rest of the document intact
func (p *JSONParser) Render(file *PromptFile, prompt string) ([]byte, error) {
	out, err := sjson.SetBytes(file.Content, "prompt", prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}
	return out, nil
}
