package rules

import (
	"strings"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

// MethodPropertyRule implements method-property.should-be-property (§4.8):
// a zero-argument method whose entire body is "return self.<attr>" reads
// like a property and should be decorated as one.
type MethodPropertyRule struct{}

func NewMethodPropertyRule() *MethodPropertyRule { return &MethodPropertyRule{} }

func (r *MethodPropertyRule) RuleID() string      { return "method-property.should-be-property" }
func (r *MethodPropertyRule) RuleName() string    { return "Method should be a property" }
func (r *MethodPropertyRule) Description() string { return "Flags zero-argument methods that just return an attribute." }
func (r *MethodPropertyRule) Languages() []models.Language {
	return models.LanguageSet(models.LanguagePython)
}

func (r *MethodPropertyRule) Check(ctx *models.LintContext) []models.Violation {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	var violations []models.Violation
	analysis.Walk(tree.Root(), func(n models.Node) {
		if n.Kind() != "function_definition" {
			return
		}
		if isDecorated(n) {
			return
		}
		name := functionName(n)
		if name == "" || strings.HasPrefix(name, "__") {
			return
		}
		if !isSimpleSelfReturn(n) {
			return
		}
		violations = append(violations, models.Violation{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     n.StartLine(),
			Column:   n.StartColumn(),
			Message:  "method \"" + name + "\" just returns an attribute; consider @property",
			Severity: models.SeverityInfo,
		})
	})
	return violations
}

// isSimpleSelfReturn reports whether funcNode takes only "self" and its
// body is exactly one "return self.<attr>" statement.
func isSimpleSelfReturn(funcNode models.Node) bool {
	params := paramsOf(funcNode)
	if len(params) != 1 || params[0] != "self" {
		return false
	}
	var body models.Node
	for _, child := range funcNode.Children() {
		if child.Kind() == "block" {
			body = child
		}
	}
	if body == nil {
		return false
	}
	stmts := body.Children()
	if len(stmts) > 0 && isDocstringStatement(stmts[0]) {
		stmts = stmts[1:]
	}
	if len(stmts) != 1 || stmts[0].Kind() != "return_statement" {
		return false
	}
	returned := stmts[0].Children()
	if len(returned) != 1 || returned[0].Kind() != "attribute" {
		return false
	}
	return strings.HasPrefix(string(returned[0].Text()), "self.")
}

// isDocstringStatement reports whether stmt is a bare string-literal
// expression statement, the shape a leading docstring takes in the parse
// tree, so it can be skipped when looking for a method's "real" body.
func isDocstringStatement(stmt models.Node) bool {
	if stmt.Kind() != "expression_statement" {
		return false
	}
	children := stmt.Children()
	return len(children) == 1 && children[0].Kind() == "string"
}

func paramsOf(funcNode models.Node) []string {
	var list models.Node
	for _, child := range funcNode.Children() {
		if child.Kind() == "parameters" {
			list = child
		}
	}
	if list == nil {
		return nil
	}
	var names []string
	for _, p := range list.Children() {
		if p.Kind() == "identifier" {
			names = append(names, string(p.Text()))
		}
	}
	return names
}
