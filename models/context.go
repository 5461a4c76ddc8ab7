package models

// Language is the canonical tag used throughout the Linter. Every analyzer,
// rule, and config section keys off one of these values.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageTypeScript Language = "typescript"
	LanguageJavaScript Language = "javascript"
	LanguageBash       Language = "bash"
	LanguageMarkdown   Language = "markdown"
	LanguageCSS        Language = "css"
	LanguageOther      Language = "other"
)

// Tree is the typed parse tree produced by a language analyzer (C1). It is
// intentionally narrow: rules walk it through the Root node rather than
// through analyzer-specific types, so a rule written against Tree works
// whether the backing parser was tree-sitter or goldmark.
type Tree interface {
	// Root returns the top-level node of the parsed tree.
	Root() Node
	// Language reports which canonical language this tree was parsed as.
	Language() Language
}

// Node is a minimal walkable AST/CST node. Concrete analyzers wrap their
// native node type (tree-sitter's *sitter.Node, goldmark's ast.Node, ...)
// behind this shape.
type Node interface {
	Kind() string
	StartLine() int
	EndLine() int
	StartColumn() int
	Text() []byte
	Children() []Node
}

// LintContext is the per-file working set handed to every Rule.Check call.
// One LintContext is built per file per run and shared read-only across all
// rules that apply to that file's language.
type LintContext struct {
	FilePath    string
	Language    Language
	FileContent string
	// Metadata carries rule_id -> per-rule config, resolved from the loaded
	// Config with language overlays already applied (§4.4).
	Metadata map[string]any

	parseTree  Tree
	parseErr   error
	parsedOnce bool
	parseFn    func() (Tree, error)
}

// NewLintContext builds a context whose AST is parsed lazily on first
// Tree() call via parseFn (nil parseFn means the file has no analyzer, e.g.
// LanguageOther).
func NewLintContext(filePath string, language Language, content string, metadata map[string]any, parseFn func() (Tree, error)) *LintContext {
	return &LintContext{
		FilePath:    filePath,
		Language:    language,
		FileContent: content,
		Metadata:    metadata,
		parseFn:     parseFn,
	}
}

// Tree returns the lazily-parsed AST. A parse error is cached and returned
// on every subsequent call rather than re-attempted (§7: parse errors are
// non-fatal and a file is parsed at most once per run).
func (c *LintContext) Tree() (Tree, error) {
	if c.parsedOnce {
		return c.parseTree, c.parseErr
	}
	c.parsedOnce = true
	if c.parseFn == nil {
		return nil, nil
	}
	c.parseTree, c.parseErr = c.parseFn()
	return c.parseTree, c.parseErr
}

// RuleConfig returns the per-rule metadata map for ruleID, or an empty map
// if the rule has no configured section.
func (c *LintContext) RuleConfig(ruleID string) map[string]any {
	if m, ok := c.Metadata[ruleID].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
