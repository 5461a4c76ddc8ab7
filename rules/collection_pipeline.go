package rules

import (
	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

// CollectionPipelineRule implements collection-pipeline.embedded-filter
// (§4.8): flags "for" loops whose body is a guard-and-continue, an
// append-if-condition, or a flag-and-break shape that reads as a hand-rolled
// filter/map/any/all/takewhile and would be clearer as a comprehension or
// built-in.
type CollectionPipelineRule struct{}

func NewCollectionPipelineRule() *CollectionPipelineRule { return &CollectionPipelineRule{} }

func (r *CollectionPipelineRule) RuleID() string   { return "collection-pipeline.embedded-filter" }
func (r *CollectionPipelineRule) RuleName() string { return "Embedded filter loop" }
func (r *CollectionPipelineRule) Description() string {
	return "Flags imperative loops that re-implement filter/map/any/all/takewhile."
}
func (r *CollectionPipelineRule) Languages() []models.Language { return astLanguages }

func (r *CollectionPipelineRule) Check(ctx *models.LintContext) []models.Violation {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	forKind, ok := map[models.Language]string{
		models.LanguagePython:     "for_statement",
		models.LanguageTypeScript: "for_in_statement",
		models.LanguageJavaScript: "for_in_statement",
	}[ctx.Language]
	if !ok {
		return nil
	}

	var violations []models.Violation
	analysis.Walk(tree.Root(), func(n models.Node) {
		if n.Kind() != forKind {
			return
		}
		if shape, ok := classifyLoopShape(n); ok {
			violations = append(violations, models.Violation{
				RuleID:   r.RuleID(),
				FilePath: ctx.FilePath,
				Line:     n.StartLine(),
				Column:   n.StartColumn(),
				Message:  "loop re-implements " + shape + "; consider a comprehension or built-in",
				Severity: models.SeverityInfo,
			})
		}
	})
	return violations
}

// classifyLoopShape recognizes three shapes directly in the loop body
// (guard-and-continue → filter, append-on-condition → filter/map,
// flag-then-break → any/all/takewhile), each grounded on the common
// hand-rolled patterns original_source's collection-pipeline checker
// targets.
func classifyLoopShape(forNode models.Node) (string, bool) {
	var body models.Node
	for _, child := range forNode.Children() {
		if child.Kind() == "block" {
			body = child
		}
	}
	if body == nil {
		return "", false
	}
	stmts := body.Children()

	if len(stmts) >= 1 && stmts[0].Kind() == "if_statement" && bodyIsBareContinue(stmts[0]) {
		return "a filter", true
	}

	for _, s := range stmts {
		if s.Kind() != "if_statement" {
			continue
		}
		if ifBodyContainsBreak(s) {
			return "an any/all/takewhile", true
		}
		if ifBodyContainsAppend(s) {
			return "a filter-map", true
		}
	}
	return "", false
}

func bodyIsBareContinue(ifNode models.Node) bool {
	for _, child := range ifNode.Children() {
		if child.Kind() == "block" {
			stmts := child.Children()
			return len(stmts) == 1 && stmts[0].Kind() == "continue_statement"
		}
	}
	return false
}

func ifBodyContainsBreak(ifNode models.Node) bool {
	found := false
	analysis.Walk(ifNode, func(n models.Node) {
		if n.Kind() == "break_statement" {
			found = true
		}
	})
	return found
}

func ifBodyContainsAppend(ifNode models.Node) bool {
	found := false
	analysis.Walk(ifNode, func(n models.Node) {
		if n.Kind() == "call" {
			children := n.Children()
			if len(children) > 0 {
				callee := string(children[0].Text())
				if hasSuffix(callee, ".append") || hasSuffix(callee, ".push") {
					found = true
				}
			}
		}
	})
	return found
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
