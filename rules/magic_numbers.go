package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thai-lint/thailint-go/models"
)

var magicNumberAllowlist = map[float64]bool{
	-1: true, 0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 10: true, 100: true, 1000: true,
}

var magicNumberPorts = map[float64]bool{
	21: true, 22: true, 80: true, 443: true, 3000: true, 5000: true, 8080: true, 8443: true,
}

var numberKinds = map[models.Language]string{
	models.LanguagePython:     "integer",
	models.LanguageTypeScript: "number",
	models.LanguageJavaScript: "number",
}

// MagicNumbersRule implements magic_numbers (§4.8, SPEC_FULL.md
// supplement): flags numeric literals outside a small allowlist and a set
// of well-known port numbers, with exemptions for UPPERCASE constant
// assignment, range()-style loop bounds, string-repeat counts, and array
// index expressions.
type MagicNumbersRule struct{}

func NewMagicNumbersRule() *MagicNumbersRule { return &MagicNumbersRule{} }

func (r *MagicNumbersRule) RuleID() string              { return "magic_numbers.literal" }
func (r *MagicNumbersRule) RuleName() string            { return "Magic number" }
func (r *MagicNumbersRule) Description() string         { return "Flags unexplained numeric literals that should be named constants." }
func (r *MagicNumbersRule) Languages() []models.Language { return astLanguages }

func (r *MagicNumbersRule) Check(ctx *models.LintContext) []models.Violation {
	kind, ok := numberKinds[ctx.Language]
	if !ok {
		return nil
	}
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	section := ctx.RuleConfig("magic_numbers")
	maxSmall := intOr(section, "max_small_integer", 10)

	var violations []models.Violation
	walkNumbers(tree.Root(), nil, kind, func(n models.Node, ancestors []models.Node) {
		text := strings.TrimSuffix(strings.TrimSuffix(string(n.Text()), "n"), "L")
		value, perr := strconv.ParseFloat(text, 64)
		if perr != nil {
			return
		}
		if magicNumberAllowlist[value] || (value >= 0 && value <= float64(maxSmall) && value == float64(int64(value))) {
			return
		}
		if magicNumberPorts[value] {
			return
		}
		if isExemptContext(ancestors) {
			return
		}
		violations = append(violations, models.Violation{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     n.StartLine(),
			Column:   n.StartColumn(),
			Message:  fmt.Sprintf("magic number %s should be a named constant", text),
			Severity: models.SeverityInfo,
		})
	})
	return violations
}

func walkNumbers(node models.Node, ancestors []models.Node, kind string, fn func(models.Node, []models.Node)) {
	if node.Kind() == kind {
		fn(node, ancestors)
	}
	next := append(append([]models.Node{}, ancestors...), node)
	for _, child := range node.Children() {
		walkNumbers(child, next, kind, fn)
	}
}

// isExemptContext implements the exemptions: range(n) loop bounds, array/
// subscript indices, and string-repeat counts ("x" * 3), plus assignment to
// an ALL_CAPS name (already treated as a declared constant).
func isExemptContext(ancestors []models.Node) bool {
	if len(ancestors) == 0 {
		return false
	}
	parent := ancestors[len(ancestors)-1]
	switch parent.Kind() {
	case "subscript":
		return true
	case "argument_list":
		if len(ancestors) >= 2 && ancestors[len(ancestors)-2].Kind() == "call" {
			callee := ancestors[len(ancestors)-2].Children()
			if len(callee) > 0 && string(callee[0].Text()) == "range" {
				return true
			}
		}
	case "binary_operator", "binary_expression":
		for _, child := range parent.Children() {
			if child.Kind() == "string" {
				return true
			}
		}
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].Kind() == "assignment" {
			target := ancestors[i].Children()
			if len(target) > 0 && isUpperName(string(target[0].Text())) {
				return true
			}
			break
		}
	}
	return false
}

func isUpperName(name string) bool {
	if name == "" {
		return false
	}
	return strings.ToUpper(name) == name && strings.ToLower(name) != name
}
