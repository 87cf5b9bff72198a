package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser parses markdown prompt files. Frontmatter may declare the
// prompt intent; the body is the prompt.
type MarkdownParser struct{}

// CanParse returns true if this parser can handle the file
func (p *MarkdownParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeMarkdown
}

// Parse parses a markdown file into a prompt and its heading sections
func (p *MarkdownParser) Parse(path string, content []byte) (*PromptFile, error) {
	frontmatter, body := ParseFrontmatter(content)

	md := goldmark.New()
	reader := text.NewReader(body)
	doc := md.Parser().Parse(reader)

	return &PromptFile{
		Path:        path,
		Content:     content,
		FileType:    FileTypeMarkdown,
		Prompt:      string(body),
		Intent:      intentFrom(frontmatter["intent"]),
		Sections:    p.extractSections(doc, body),
		Frontmatter: frontmatter,
		prefix:      content[:len(content)-len(body)],
	}, nil
}

// Render keeps the original frontmatter block and replaces the body
func (p *MarkdownParser) Render(file *PromptFile, prompt string) ([]byte, error) {
	out := make([]byte, 0, len(file.prefix)+len(prompt)+1)
	out = append(out, file.prefix...)
	out = append(out, strings.TrimRight(prompt, "\n")...)
	return append(out, '\n'), nil
}

// extractSections walks the AST and extracts sections
func (p *MarkdownParser) extractSections(doc ast.Node, source []byte) []Section {
	var sections []Section
	var sectionStack []*Section

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		line := 1
		if heading.Lines().Len() > 0 {
			seg := heading.Lines().At(0)
			line = bytes.Count(source[:seg.Start], []byte("\n")) + 1
		}

		newSection := Section{
			Title:     string(heading.Text(source)),
			Level:     heading.Level,
			StartLine: line,
		}

		for len(sectionStack) > 0 && sectionStack[len(sectionStack)-1].Level >= heading.Level {
			sectionStack = sectionStack[:len(sectionStack)-1]
		}

		var current *Section
		if len(sectionStack) > 0 {
			parent := sectionStack[len(sectionStack)-1]
			parent.Subsections = append(parent.Subsections, newSection)
			current = &parent.Subsections[len(parent.Subsections)-1]
		} else {
			sections = append(sections, newSection)
			current = &sections[len(sections)-1]
		}
		sectionStack = append(sectionStack, current)

		return ast.WalkContinue, nil
	})

	p.extractSectionContent(sections, source)

	return sections
}

// extractSectionContent fills in end lines and text for each section
func (p *MarkdownParser) extractSectionContent(sections []Section, source []byte) {
	lines := strings.Split(string(source), "\n")

	var extractContent func(sections []Section, limit int)
	extractContent = func(sections []Section, limit int) {
		for i := range sections {
			section := &sections[i]

			endLine := limit
			if i+1 < len(sections) {
				endLine = sections[i+1].StartLine - 1
			}
			section.EndLine = endLine

			if section.StartLine > 0 && section.EndLine >= section.StartLine {
				start := section.StartLine - 1
				end := min(section.EndLine, len(lines))
				section.Content = strings.Join(lines[start:end], "\n")
			}

			if len(section.Subsections) > 0 {
				extractContent(section.Subsections, endLine)
			}
		}
	}

	extractContent(sections, len(lines))
}

// CountSections returns the number of sections including nested ones
func CountSections(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += 1 + CountSections(s.Subsections)
	}
	return n
}
