package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses YAML prompt files with top-level prompt and intent keys
type YAMLParser struct{}

type yamlPrompt struct {
	Prompt *string `yaml:"prompt"`
	Intent string  `yaml:"intent"`
}

// CanParse returns true if this parser can handle the file
func (p *YAMLParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeYAML
}

// Parse parses a YAML prompt file
func (p *YAMLParser) Parse(path string, content []byte) (*PromptFile, error) {
	var doc yamlPrompt
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	if doc.Prompt == nil {
		return nil, ErrNoPrompt
	}

	return &PromptFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeYAML,
		Prompt:   *doc.Prompt,
		Intent:   intentFrom(doc.Intent),
	}, nil
}

// Render rewrites the prompt node in place so other keys and comments survive
func (p *YAMLParser) Render(file *PromptFile, prompt string) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(file.Content, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNoPrompt
	}

	mapping := root.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != "prompt" {
			continue
		}
		value := mapping.Content[i+1]
		value.Kind = yaml.ScalarNode
		value.Tag = "!!str"
		value.Value = prompt
		value.Style = 0
		if strings.Contains(prompt, "\n") {
			value.Style = yaml.LiteralStyle
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&root); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, ErrNoPrompt
}
