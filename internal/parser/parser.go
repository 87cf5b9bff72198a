package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/promptly/internal/rules"
)

// StdinPath is the display path used for prompts read from standard input
const StdinPath = "-"

// PromptFile represents a prompt loaded from disk or stdin
type PromptFile struct {
	Path        string
	Content     []byte
	FileType    FileType
	Prompt      string
	Intent      rules.Intent // empty when the file does not declare one
	Sections    []Section
	Frontmatter map[string]interface{}

	// prefix holds raw bytes that precede the prompt body (markdown frontmatter)
	prefix []byte
}

// FileType represents the type of prompt file
type FileType int

const (
	FileTypePlain FileType = iota
	FileTypeMarkdown
	FileTypeJSON
	FileTypeYAML
)

func (t FileType) String() string {
	switch t {
	case FileTypeMarkdown:
		return "markdown"
	case FileTypeJSON:
		return "json"
	case FileTypeYAML:
		return "yaml"
	default:
		return "plain"
	}
}

// Section represents a section within a markdown prompt
type Section struct {
	Title       string    `json:"title" yaml:"title"`
	Level       int       `json:"level" yaml:"level"`
	StartLine   int       `json:"start_line" yaml:"start_line"`
	EndLine     int       `json:"end_line" yaml:"end_line"`
	Content     string    `json:"-" yaml:"-"`
	Subsections []Section `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Parser defines the interface for parsing prompt files
type Parser interface {
	Parse(path string, content []byte) (*PromptFile, error)
	CanParse(path string) bool
}

// Renderer writes an updated prompt back into a file's original layout
type Renderer interface {
	Render(file *PromptFile, prompt string) ([]byte, error)
}

// Parse reads and parses a prompt file
func Parse(path string) (*PromptFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(path, content)
}

// ParseReader parses a prompt from r as plain text, or as markdown when it
// starts with frontmatter.
func ParseReader(r io.Reader) (*PromptFile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt: %w", err)
	}
	if strings.HasPrefix(string(content), "---") {
		return (&MarkdownParser{}).Parse(StdinPath, content)
	}
	return (&PlainParser{}).Parse(StdinPath, content)
}

// ParseBytes parses content using the parser selected by path
func ParseBytes(path string, content []byte) (*PromptFile, error) {
	parsed, err := getParser(path).Parse(path, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return parsed, nil
}

// Render returns the file content with its prompt replaced
func Render(file *PromptFile, prompt string) ([]byte, error) {
	var r Renderer
	switch file.FileType {
	case FileTypeMarkdown:
		r = &MarkdownParser{}
	case FileTypeJSON:
		r = &JSONParser{}
	case FileTypeYAML:
		r = &YAMLParser{}
	default:
		r = &PlainParser{}
	}
	return r.Render(file, prompt)
}

// getParser returns the appropriate parser for a file
func getParser(path string) Parser {
	switch GetFileType(path) {
	case FileTypeMarkdown:
		return &MarkdownParser{}
	case FileTypeJSON:
		return &JSONParser{}
	case FileTypeYAML:
		return &YAMLParser{}
	default:
		return &PlainParser{}
	}
}

// GetFileType returns the FileType for a given path
func GetFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown", ".prompt":
		return FileTypeMarkdown
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	default:
		return FileTypePlain
	}
}

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters
// Returns the parsed frontmatter and the remaining content without frontmatter
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	frontmatterStr := strings.TrimSpace(rest[:endIdx])

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatterStr), &frontmatter); err != nil {
		return nil, content
	}

	remaining := rest[endIdx+4:] // +4 for "\n---"
	remaining = strings.TrimPrefix(remaining, "\n")

	return frontmatter, []byte(remaining)
}

// intentFrom reads a declared intent. Unknown values normalize to "other";
// a missing value stays empty so callers can apply their default.
func intentFrom(v interface{}) rules.Intent {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return ""
	}
	return rules.ParseIntent(s)
}
