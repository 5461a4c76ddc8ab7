package rules

import (
	"fmt"
	"strings"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

var statelessBaseExemptions = []string{"ABC", "Protocol"}

// StatelessClassRule implements stateless-class.violation (§4.8). It is
// Python-only: a class with no constructor/instance attributes, no
// class-level attributes, no bases beyond object, and no decorators is
// flagged as a candidate for a plain module of functions instead. ABC/
// Protocol/Mixin bases and test classes are exempt.
type StatelessClassRule struct{}

func NewStatelessClassRule() *StatelessClassRule { return &StatelessClassRule{} }

func (r *StatelessClassRule) RuleID() string      { return "stateless-class.violation" }
func (r *StatelessClassRule) RuleName() string    { return "Stateless class" }
func (r *StatelessClassRule) Description() string { return "Flags Python classes with no state that would be clearer as plain functions." }
func (r *StatelessClassRule) Languages() []models.Language {
	return models.LanguageSet(models.LanguagePython)
}

func (r *StatelessClassRule) Check(ctx *models.LintContext) []models.Violation {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	section := ctx.RuleConfig("stateless_class")
	minMethods := intOr(section, "min_methods", 2)

	var violations []models.Violation
	decorated := map[[2]int]bool{}
	analysis.Walk(tree.Root(), func(n models.Node) {
		if n.Kind() != "decorated_definition" {
			return
		}
		for _, child := range n.Children() {
			decorated[[2]int{child.StartLine(), child.StartColumn()}] = true
		}
	})
	analysis.Walk(tree.Root(), func(n models.Node) {
		if n.Kind() != "class_definition" {
			return
		}
		if isDecorated(n) || decorated[[2]int{n.StartLine(), n.StartColumn()}] {
			return
		}
		name := classNameOf(n)
		if strings.HasPrefix(name, "Test") || isMixinName(name) {
			return
		}
		if isTestPathOrFile(ctx.FilePath) {
			return
		}
		bases := classBases(n)
		for _, b := range bases {
			if b == "TestCase" || isMixinName(b) || containsAny(b, statelessBaseExemptions) {
				return
			}
		}
		if len(bases) > 1 || (len(bases) == 1 && bases[0] != "object") {
			return
		}
		methods := countMethods(n)
		if methods < minMethods {
			return
		}
		if hasConstructor(n) || hasInstanceAttrs(n) || hasClassLevelAttrs(n) {
			return
		}
		violations = append(violations, models.Violation{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     n.StartLine(),
			Column:   n.StartColumn(),
			Message:  fmt.Sprintf("class %q has %d methods but no state; consider a module of functions", name, methods),
			Severity: models.SeverityInfo,
		})
	})
	return violations
}

func isDecorated(classNode models.Node) bool {
	// tree-sitter-python wraps decorated definitions in decorated_definition;
	// Children() here returns the class itself, so we can only detect this
	// from a sibling-aware walk. We approximate by checking for a preceding
	// "decorator" named child, present on some grammar versions.
	for _, child := range classNode.Children() {
		if child.Kind() == "decorator" {
			return true
		}
	}
	return false
}

func classBases(classNode models.Node) []string {
	var bases []string
	for _, child := range classNode.Children() {
		if child.Kind() != "argument_list" {
			continue
		}
		for _, arg := range child.Children() {
			if arg.Kind() == "identifier" {
				bases = append(bases, string(arg.Text()))
			} else if arg.Kind() == "attribute" {
				bases = append(bases, string(arg.Text()))
			}
		}
	}
	return bases
}

// isMixinName reports whether s contains "mixin" case-insensitively,
// covering the spec's "ends with/contains Mixin" exemption for both class
// names and base-class names.
func isMixinName(s string) bool {
	return strings.Contains(strings.ToLower(s), "mixin")
}

// isTestPathOrFile exempts classes that live under a "tests/" directory or
// in a "test_*" file, where helper base classes commonly have no state of
// their own.
func isTestPathOrFile(path string) bool {
	path = filepathToSlash(path)
	base := path
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		base = path[idx+1:]
	}
	if strings.HasPrefix(base, "test_") {
		return true
	}
	for _, part := range strings.Split(path, "/") {
		if part == "tests" {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasConstructor(classNode models.Node) bool {
	found := false
	analysis.Walk(classNode, func(n models.Node) {
		if n.Kind() == "function_definition" && functionName(n) == "__init__" {
			found = true
		}
	})
	return found
}

func functionName(funcNode models.Node) string {
	for _, child := range funcNode.Children() {
		if child.Kind() == "identifier" {
			return string(child.Text())
		}
	}
	return ""
}

func hasInstanceAttrs(classNode models.Node) bool {
	found := false
	analysis.Walk(classNode, func(n models.Node) {
		if n.Kind() != "assignment" {
			return
		}
		for _, child := range n.Children() {
			if child.Kind() == "attribute" && strings.HasPrefix(string(child.Text()), "self.") {
				found = true
			}
		}
	})
	return found
}

func hasClassLevelAttrs(classNode models.Node) bool {
	var body models.Node
	for _, child := range classNode.Children() {
		if child.Kind() == "block" {
			body = child
		}
	}
	if body == nil {
		return false
	}
	for _, stmt := range body.Children() {
		if stmt.Kind() == "assignment" {
			return true
		}
		if stmt.Kind() == "expression_statement" {
			for _, inner := range stmt.Children() {
				if inner.Kind() == "assignment" {
					return true
				}
			}
		}
	}
	return false
}
