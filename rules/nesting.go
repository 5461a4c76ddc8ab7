package rules

import (
	"fmt"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

// nestingKinds per language, the node types that count toward nesting
// depth per §4.8: if/for/while/try/with/function-def and their language
// equivalents.
var nestingKinds = map[models.Language]map[string]bool{
	models.LanguagePython: set("if_statement", "for_statement", "while_statement",
		"try_statement", "with_statement", "function_definition"),
	models.LanguageTypeScript: set("if_statement", "for_statement", "for_in_statement",
		"while_statement", "try_statement", "function_declaration",
		"method_definition", "arrow_function", "function_expression"),
	models.LanguageJavaScript: set("if_statement", "for_statement", "for_in_statement",
		"while_statement", "try_statement", "function_declaration",
		"method_definition", "arrow_function", "function_expression"),
	models.LanguageBash: set("if_statement", "for_statement", "while_statement", "function_definition"),
}

var functionKinds = map[models.Language]map[string]bool{
	models.LanguagePython:     set("function_definition"),
	models.LanguageTypeScript: set("function_declaration", "method_definition", "arrow_function", "function_expression"),
	models.LanguageJavaScript: set("function_declaration", "method_definition", "arrow_function", "function_expression"),
	models.LanguageBash:       set("function_definition"),
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, i := range items {
		m[i] = true
	}
	return m
}

// NestingRule implements nesting.excessive-depth (§4.8).
type NestingRule struct{}

func NewNestingRule() *NestingRule { return &NestingRule{} }

func (r *NestingRule) RuleID() string      { return "nesting.excessive-depth" }
func (r *NestingRule) RuleName() string    { return "Excessive nesting depth" }
func (r *NestingRule) Description() string { return "Flags functions whose nesting depth exceeds the configured maximum." }
func (r *NestingRule) Languages() []models.Language {
	return models.LanguageSet(models.LanguagePython, models.LanguageTypeScript, models.LanguageJavaScript, models.LanguageBash)
}

func (r *NestingRule) Check(ctx *models.LintContext) []models.Violation {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	section := ctx.RuleConfig("nesting")
	maxDepth := intOr(section, "max_depth", 4)

	kinds := nestingKinds[ctx.Language]
	funcs := functionKinds[ctx.Language]
	if kinds == nil || funcs == nil {
		return nil
	}

	var violations []models.Violation
	analysis.Walk(tree.Root(), func(n models.Node) {
		if !funcs[n.Kind()] {
			return
		}
		depth := maxNestingDepth(n, kinds, 0)
		if depth > maxDepth {
			violations = append(violations, models.Violation{
				RuleID:   r.RuleID(),
				FilePath: ctx.FilePath,
				Line:     n.StartLine(),
				Column:   n.StartColumn(),
				Message:  fmt.Sprintf("nesting depth %d exceeds maximum of %d", depth, maxDepth),
				Severity: models.SeverityWarning,
			})
		}
	})
	return violations
}

// maxNestingDepth computes the deepest chain of nestingKinds nodes inside
// root, not counting root itself (root is the function boundary).
func maxNestingDepth(node models.Node, kinds map[string]bool, depth int) int {
	best := depth
	for _, child := range node.Children() {
		childDepth := depth
		if kinds[child.Kind()] {
			childDepth = depth + 1
		}
		if d := maxNestingDepth(child, kinds, childDepth); d > best {
			best = d
		}
	}
	return best
}

func intOr(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func boolOr(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func strSliceOr(m map[string]any, key string, def []string) []string {
	v, ok := m[key]
	if !ok {
		return def
	}
	if ss, ok := v.([]string); ok {
		return ss
	}
	raw, ok := v.([]any)
	if !ok {
		return def
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
