// Package analysis implements the Linter's per-language AST abstraction
// (C1, §4.7): a uniform Parse(source) -> models.Tree operation per
// canonical language, backed by a single shared tree-sitter runtime for
// Python/TypeScript/JavaScript/Bash, goldmark for Markdown, and a
// hand-written scanner for CSS. Grounded on the teacher's
// languages/languages.go extension registry, narrowed to the five
// canonical tags of spec.md §3.
package analysis

import (
	"path/filepath"
	"strings"

	"github.com/thai-lint/thailint-go/models"
)

// extensionTable maps a lowercased file extension (with leading dot) to a
// canonical language tag, mirroring the teacher's LanguageConfig.Extensions
// lists for the languages this spec retains.
var extensionTable = map[string]models.Language{
	".py":   models.LanguagePython,
	".pyw":  models.LanguagePython,
	".pyi":  models.LanguagePython,
	".ts":   models.LanguageTypeScript,
	".tsx":  models.LanguageTypeScript,
	".mts":  models.LanguageTypeScript,
	".cts":  models.LanguageTypeScript,
	".js":   models.LanguageJavaScript,
	".jsx":  models.LanguageJavaScript,
	".mjs":  models.LanguageJavaScript,
	".cjs":  models.LanguageJavaScript,
	".sh":   models.LanguageBash,
	".bash": models.LanguageBash,
	".zsh":  models.LanguageBash,
	".md":   models.LanguageMarkdown,
	".mdx":  models.LanguageMarkdown,
	".markdown": models.LanguageMarkdown,
	".css":  models.LanguageCSS,
}

// ClassifyExtension returns the canonical language tag for filePath, or
// LanguageOther when the extension is unrecognized.
func ClassifyExtension(filePath string) models.Language {
	ext := strings.ToLower(filepath.Ext(filePath))
	if lang, ok := extensionTable[ext]; ok {
		return lang
	}
	base := filepath.Base(filePath)
	if ext == "" && strings.HasPrefix(base, "#!") {
		return models.LanguageOther
	}
	return models.LanguageOther
}

// Analyzer parses source text for one canonical language into a
// models.Tree. Registry dispatches to the right Analyzer by language tag.
type Analyzer interface {
	Parse(content string) (models.Tree, error)
}

// Registry holds one Analyzer per canonical language that has one (CSS and
// the catch-all "other" tag have no analyzer; LintContext.Tree() returns
// nil, nil for those, which is fine — text-based rules don't need a tree).
type Registry struct {
	analyzers map[models.Language]Analyzer
}

// NewRegistry builds the default registry: a shared tree-sitter runtime for
// Python/TypeScript/JavaScript/Bash, goldmark for Markdown.
func NewRegistry() *Registry {
	ts := NewTreeSitterRuntime()
	return &Registry{
		analyzers: map[models.Language]Analyzer{
			models.LanguagePython:     ts.For(models.LanguagePython),
			models.LanguageTypeScript: ts.For(models.LanguageTypeScript),
			models.LanguageJavaScript: ts.For(models.LanguageJavaScript),
			models.LanguageBash:       ts.For(models.LanguageBash),
			models.LanguageMarkdown:   NewMarkdownAnalyzer(),
		},
	}
}

// For returns the Analyzer for lang, or nil if the language has none.
func (r *Registry) For(lang models.Language) Analyzer {
	return r.analyzers[lang]
}
