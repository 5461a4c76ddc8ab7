package rules

import (
	"fmt"
	"strings"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

var classKinds = map[models.Language]string{
	models.LanguagePython:     "class_definition",
	models.LanguageTypeScript: "class_declaration",
	models.LanguageJavaScript: "class_declaration",
}

var methodKinds = map[string]bool{
	"function_definition": true, // Python methods
	"method_definition":   true, // TS/JS methods
}

// SRPRule implements srp.violation (§4.8): flags classes with too many
// methods, too many lines, or a name containing a "does too much" keyword
// (Manager, Helper, Utility, ...).
type SRPRule struct{}

func NewSRPRule() *SRPRule { return &SRPRule{} }

func (r *SRPRule) RuleID() string              { return "srp.violation" }
func (r *SRPRule) RuleName() string            { return "Single Responsibility Principle violation" }
func (r *SRPRule) Description() string         { return "Flags classes with too many methods, too many lines, or a vague catch-all name." }
func (r *SRPRule) Languages() []models.Language { return astLanguages }

func (r *SRPRule) Check(ctx *models.LintContext) []models.Violation {
	classKind, ok := classKinds[ctx.Language]
	if !ok {
		return nil
	}
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}

	section := ctx.RuleConfig("srp")
	maxMethods := intOr(section, "max_methods", 7)
	maxLOC := intOr(section, "max_loc", 200)
	keywords := strSliceOr(section, "keywords", []string{"Manager", "Helper", "Utility"})

	var violations []models.Violation
	for _, node := range analysis.FindAll(tree.Root(), classKind) {
		name := classNameOf(node)
		methods := countMethods(node)
		loc := node.EndLine() - node.StartLine() + 1

		var reasons []string
		if methods > maxMethods {
			reasons = append(reasons, fmt.Sprintf("%d methods (max %d)", methods, maxMethods))
		}
		if loc > maxLOC {
			reasons = append(reasons, fmt.Sprintf("%d lines (max %d)", loc, maxLOC))
		}
		if kw, hit := matchesKeyword(name, keywords); hit {
			reasons = append(reasons, fmt.Sprintf("name contains %q", kw))
		}
		if len(reasons) == 0 {
			continue
		}
		violations = append(violations, models.Violation{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     node.StartLine(),
			Column:   node.StartColumn(),
			Message:  fmt.Sprintf("class %q may violate single responsibility: %s", name, strings.Join(reasons, ", ")),
			Severity: models.SeverityWarning,
		})
	}
	return violations
}

func classNameOf(classNode models.Node) string {
	for _, child := range classNode.Children() {
		if child.Kind() == "identifier" || child.Kind() == "type_identifier" {
			return string(child.Text())
		}
	}
	return ""
}

func countMethods(classNode models.Node) int {
	count := 0
	analysis.Walk(classNode, func(n models.Node) {
		if n != classNode && methodKinds[n.Kind()] {
			count++
		}
	})
	return count
}

func matchesKeyword(name string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return kw, true
		}
	}
	return "", false
}
