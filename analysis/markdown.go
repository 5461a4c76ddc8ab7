package analysis

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/thai-lint/thailint-go/models"
)

// MarkdownAnalyzer wraps goldmark, adapted from the teacher's
// analysis/markdown/markdown_ast_extractor.go. Markdown is treated as the
// "host-ish" language for this module (§4.7 Open Question): goldmark is a
// purpose-built Go Markdown parser rather than a tree-sitter grammar.
type MarkdownAnalyzer struct {
	md goldmark.Markdown
}

// NewMarkdownAnalyzer constructs a goldmark instance configured the way
// the teacher's extractor does: default parser plus an attribute/heading
// auto-id extension disabled (we don't rewrite documents, only read them).
func NewMarkdownAnalyzer() *MarkdownAnalyzer {
	return &MarkdownAnalyzer{md: goldmark.New()}
}

func (a *MarkdownAnalyzer) Parse(content string) (models.Tree, error) {
	source := []byte(content)
	reader := text.NewReader(source)
	doc := a.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))
	if doc == nil {
		return nil, fmt.Errorf("goldmark: parse returned nil document")
	}
	return &markdownTree{source: source, root: doc}, nil
}

type markdownTree struct {
	source []byte
	root   gmast.Node
}

func (t *markdownTree) Root() models.Node        { return &markdownNode{source: t.source, node: t.root} }
func (t *markdownTree) Language() models.Language { return models.LanguageMarkdown }

type markdownNode struct {
	source []byte
	node   gmast.Node
}

func (n *markdownNode) Kind() string {
	return n.node.Kind().String()
}

func (n *markdownNode) StartLine() int {
	if lines := n.node.Lines(); lines.Len() > 0 {
		seg := lines.At(0)
		return lineNumberAt(n.source, seg.Start) + 1
	}
	return 0
}

func (n *markdownNode) EndLine() int {
	if lines := n.node.Lines(); lines.Len() > 0 {
		seg := lines.At(lines.Len() - 1)
		return lineNumberAt(n.source, seg.Stop) + 1
	}
	return n.StartLine()
}

func (n *markdownNode) StartColumn() int { return 0 }

func (n *markdownNode) Text() []byte {
	var out []byte
	lines := n.node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(n.source)...)
	}
	return out
}

func (n *markdownNode) Children() []models.Node {
	var out []models.Node
	for c := n.node.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, &markdownNode{source: n.source, node: c})
	}
	return out
}

func lineNumberAt(source []byte, offset int) int {
	line := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}

// FrontmatterFields extracts "Key: value" pairs from a leading YAML
// frontmatter block delimited by "---" fences, used by the file_header
// rule's Markdown dispatch (§4.8).
func FrontmatterFields(content string) map[string]string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil
	}
	fields := map[string]string{}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return fields
		}
		key, value, ok := strings.Cut(lines[i], ":")
		if ok {
			fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return nil // no closing fence: not well-formed frontmatter
}
