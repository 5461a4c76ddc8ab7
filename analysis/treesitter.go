package analysis

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/thai-lint/thailint-go/models"
)

// TreeSitterRuntime is the single shared tree-sitter runtime backing
// Python, TypeScript, JavaScript and Bash (§4.7, Open Question decision in
// SPEC_FULL.md). A new *sitter.Parser is created per Parse call — the
// underlying C parser is not safe to reuse concurrently, matching the
// per-call-parser pattern used throughout the pack's tree-sitter code.
type TreeSitterRuntime struct{}

// NewTreeSitterRuntime constructs the runtime. It holds no state of its own
// beyond the grammar table; grammars are looked up fresh per analyzer.
func NewTreeSitterRuntime() *TreeSitterRuntime {
	return &TreeSitterRuntime{}
}

// For returns an Analyzer bound to lang's tree-sitter grammar, or nil if
// lang isn't one of the four tree-sitter-backed languages.
func (r *TreeSitterRuntime) For(lang models.Language) Analyzer {
	switch lang {
	case models.LanguagePython:
		return &tsAnalyzer{lang: lang, grammar: python.GetLanguage()}
	case models.LanguageTypeScript:
		return &tsAnalyzer{lang: lang, grammar: tsx.GetLanguage()}
	case models.LanguageJavaScript:
		return &tsAnalyzer{lang: lang, grammar: javascript.GetLanguage()}
	case models.LanguageBash:
		return &tsAnalyzer{lang: lang, grammar: bash.GetLanguage()}
	default:
		return nil
	}
}

type tsAnalyzer struct {
	lang    models.Language
	grammar *sitter.Language
}

func (a *tsAnalyzer) Parse(content string) (models.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(a.grammar)

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse (%s): %w", a.lang, err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter parse (%s): nil root node", a.lang)
	}
	return &tsTree{lang: a.lang, source: []byte(content), root: root, raw: tree}, nil
}

// tsTree adapts a *sitter.Tree to models.Tree. Close is deliberately not
// exposed through the interface: Trees are retained for the life of a
// LintContext and freed with the process, matching the orchestrator's
// single-run-then-exit lifecycle (§5).
type tsTree struct {
	lang   models.Language
	source []byte
	root   *sitter.Node
	raw    *sitter.Tree
}

func (t *tsTree) Root() models.Node        { return &tsNode{source: t.source, node: t.root} }
func (t *tsTree) Language() models.Language { return t.lang }

type tsNode struct {
	source []byte
	node   *sitter.Node
}

func (n *tsNode) Kind() string      { return n.node.Type() }
func (n *tsNode) StartLine() int    { return int(n.node.StartPoint().Row) + 1 }
func (n *tsNode) EndLine() int      { return int(n.node.EndPoint().Row) + 1 }
func (n *tsNode) StartColumn() int  { return int(n.node.StartPoint().Column) }
func (n *tsNode) Text() []byte      { return n.node.Content(n.source) }

func (n *tsNode) Children() []models.Node {
	count := int(n.node.NamedChildCount())
	out := make([]models.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.node.NamedChild(i)
		if child != nil {
			out = append(out, &tsNode{source: n.source, node: child})
		}
	}
	return out
}

// Walk applies fn to node and every descendant, depth-first. Rule packages
// use this instead of reimplementing tree recursion.
func Walk(node models.Node, fn func(models.Node)) {
	fn(node)
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}

// FindAll returns every descendant (including node itself) whose Kind
// matches one of kinds.
func FindAll(node models.Node, kinds ...string) []models.Node {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	var out []models.Node
	Walk(node, func(n models.Node) {
		if set[n.Kind()] {
			out = append(out, n)
		}
	})
	return out
}
