package rules

import (
	"strings"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

// LBYLRule implements lbyl (§4.8): flags "look before you leap" guard
// patterns (hasattr, isinstance, dict-key membership, path-exists checks,
// len()-based truthiness, None comparisons, string validation, and
// divide-by-zero guards) that Python's EAFP style would instead express as
// a try/except. Each pattern is independently toggleable.
type LBYLRule struct{}

func NewLBYLRule() *LBYLRule { return &LBYLRule{} }

func (r *LBYLRule) RuleID() string      { return "lbyl.guard" }
func (r *LBYLRule) RuleName() string    { return "Look-before-you-leap guard" }
func (r *LBYLRule) Description() string { return "Flags defensive pre-checks that Python's EAFP style handles with try/except instead." }
func (r *LBYLRule) Languages() []models.Language {
	return models.LanguageSet(models.LanguagePython)
}

func (r *LBYLRule) Check(ctx *models.LintContext) []models.Violation {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	section := ctx.RuleConfig("lbyl")
	toggles := map[string]bool{
		"dict_key":          boolOr(section, "dict_key", true),
		"hasattr":           boolOr(section, "hasattr", true),
		"isinstance":        boolOr(section, "isinstance", false),
		"file_exists":       boolOr(section, "file_exists", true),
		"len_check":         boolOr(section, "len_check", true),
		"none_check":        boolOr(section, "none_check", false),
		"string_validation": boolOr(section, "string_validation", true),
		"division_check":    boolOr(section, "division_check", true),
	}

	var violations []models.Violation
	analysis.Walk(tree.Root(), func(n models.Node) {
		if n.Kind() != "if_statement" {
			return
		}
		cond := conditionOf(n)
		if cond == nil {
			return
		}
		kind, ok := classifyGuard(cond)
		if !ok || !toggles[kind] {
			return
		}
		violations = append(violations, models.Violation{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     n.StartLine(),
			Column:   n.StartColumn(),
			Message:  "look-before-you-leap guard (" + kind + "); prefer try/except",
			Severity: models.SeverityInfo,
		})
	})
	return violations
}

func conditionOf(ifNode models.Node) models.Node {
	for _, child := range ifNode.Children() {
		switch child.Kind() {
		case "block", "elif_clause", "else_clause":
			continue
		default:
			return child
		}
	}
	return nil
}

// classifyGuard inspects an if-condition's text for LBYL shapes. Matching on
// rendered text (rather than a deeper grammar walk) keeps this in step with
// the patterns original_source's lbyl checker tests against.
func classifyGuard(cond models.Node) (string, bool) {
	text := string(cond.Text())
	switch {
	case strings.HasPrefix(text, "hasattr("):
		return "hasattr", true
	case strings.HasPrefix(text, "isinstance("):
		return "isinstance", true
	case strings.Contains(text, ".exists()") || strings.Contains(text, "os.path.exists(") || strings.Contains(text, "os.path.isfile("):
		return "file_exists", true
	case strings.HasPrefix(text, "len(") && (strings.Contains(text, "> 0") || strings.Contains(text, "!= 0") || strings.Contains(text, "== 0")):
		return "len_check", true
	case strings.Contains(text, "is None") || strings.Contains(text, "is not None"):
		return "none_check", true
	case strings.Contains(text, " in ") && !strings.Contains(text, "for "):
		return "dict_key", true
	case strings.Contains(text, ".isdigit()") || strings.Contains(text, ".isalpha()") || strings.Contains(text, ".strip()"):
		return "string_validation", true
	case strings.Contains(text, "!= 0") && (strings.Contains(text, "/") || strings.Contains(text, "%")):
		return "division_check", true
	default:
		return "", false
	}
}
