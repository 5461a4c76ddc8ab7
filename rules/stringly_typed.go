package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

// stringlyOccurrence is one place a candidate string-enum fingerprint was
// observed: a variable compared against the same set of string literals.
type stringlyOccurrence struct {
	filePath string
	line     int
	variable string
	values   []string
}

// StringlyTypedRule implements stringly_typed (§4.8): a stateful,
// cross-file rule that looks for a variable repeatedly compared against
// the same small set of string literals — via membership tests, if/elif
// chains, or match/switch statements — and flags it as a candidate for a
// proper enum. Fingerprints are aggregated across every file in a run and
// reported only once the same fingerprint recurs at least min_occurrences
// times (§4.6-style cross-file aggregation, applied here to string sets
// instead of code blocks).
type StringlyTypedRule struct {
	byFingerprint map[string][]stringlyOccurrence
	minOcc        int
	minValues     int
	maxValues     int
	requireCross  bool
}

func NewStringlyTypedRule() *StringlyTypedRule {
	return &StringlyTypedRule{byFingerprint: map[string][]stringlyOccurrence{}}
}

func (r *StringlyTypedRule) RuleID() string      { return "stringly_typed.candidate" }
func (r *StringlyTypedRule) RuleName() string    { return "Stringly-typed value" }
func (r *StringlyTypedRule) Description() string { return "Flags repeated string-literal comparisons that read like an unmodeled enum." }
func (r *StringlyTypedRule) Languages() []models.Language { return astLanguages }

func (r *StringlyTypedRule) Reset() {
	r.byFingerprint = map[string][]stringlyOccurrence{}
}

func (r *StringlyTypedRule) Check(ctx *models.LintContext) []models.Violation {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	section := ctx.RuleConfig("stringly_typed")
	r.minOcc = intOr(section, "min_occurrences", 2)
	r.minValues = intOr(section, "min_values_for_enum", 2)
	r.maxValues = intOr(section, "max_values_for_enum", 6)
	r.requireCross = boolOr(section, "require_cross_file", true)

	analysis.Walk(tree.Root(), func(n models.Node) {
		switch n.Kind() {
		case "if_statement":
			r.recordChain(ctx, n)
		case "comparison_operator", "binary_expression":
			r.recordMembership(ctx, n)
		case "match_statement", "switch_statement":
			r.recordMatch(ctx, n)
		}
	})
	return nil // all reporting happens in Finalize, once cross-file state is complete
}

// recordChain walks an if/elif/elif... chain looking for "<var> == '<str>'"
// conditions at each branch, collecting the distinct compared values.
func (r *StringlyTypedRule) recordChain(ctx *models.LintContext, ifNode models.Node) {
	var variable string
	var values []string
	branches := []models.Node{ifNode}
	for _, child := range ifNode.Children() {
		if child.Kind() == "elif_clause" {
			branches = append(branches, child)
		}
	}
	for _, cur := range branches {
		cond := conditionOf(cur)
		if cond == nil {
			break
		}
		v, s, ok := equalityToString(cond)
		if !ok {
			return
		}
		if variable == "" {
			variable = v
		} else if v != variable {
			return
		}
		values = append(values, s)
	}
	r.addOccurrence(ctx, ifNode, "if_chain", variable, values)
}

func elseClauseOf(ifNode models.Node) models.Node {
	for _, child := range ifNode.Children() {
		if child.Kind() == "elif_clause" {
			return child
		}
	}
	return nil
}

// recordMembership looks for "<var> in ('a', 'b', 'c')" shaped expressions.
func (r *StringlyTypedRule) recordMembership(ctx *models.LintContext, n models.Node) {
	text := string(n.Text())
	if !strings.Contains(text, " in (") && !strings.Contains(text, " in [") {
		return
	}
	children := n.Children()
	if len(children) < 2 {
		return
	}
	variable := string(children[0].Text())
	var values []string
	for _, lit := range analysis.FindAll(n, "string") {
		values = append(values, stripQuotes(string(lit.Text())))
	}
	r.addOccurrence(ctx, n, "membership", variable, values)
}

// recordMatch collects string literal case patterns in a match/switch
// statement keyed by the matched subject expression.
func (r *StringlyTypedRule) recordMatch(ctx *models.LintContext, n models.Node) {
	children := n.Children()
	if len(children) == 0 {
		return
	}
	variable := string(children[0].Text())
	var values []string
	for _, lit := range analysis.FindAll(n, "string") {
		values = append(values, stripQuotes(string(lit.Text())))
	}
	r.addOccurrence(ctx, n, "match", variable, values)
}

func (r *StringlyTypedRule) addOccurrence(ctx *models.LintContext, n models.Node, patternType, variable string, values []string) {
	distinct := dedupStrings(values)
	if variable == "" || len(distinct) < r.minValues || len(distinct) > r.maxValues {
		return
	}
	fp := fingerprint(patternType, distinct)
	r.byFingerprint[fp] = append(r.byFingerprint[fp], stringlyOccurrence{
		filePath: ctx.FilePath,
		line:     n.StartLine(),
		variable: variable,
		values:   distinct,
	})
}

func equalityToString(cond models.Node) (variable string, value string, ok bool) {
	text := string(cond.Text())
	for _, op := range []string{"==", "!="} {
		if idx := strings.Index(text, op); idx >= 0 {
			left := strings.TrimSpace(text[:idx])
			right := strings.TrimSpace(text[idx+len(op):])
			if strings.HasPrefix(right, "'") || strings.HasPrefix(right, "\"") {
				return left, stripQuotes(right), true
			}
		}
	}
	return "", "", false
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

func dedupStrings(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// fingerprint keys aggregation on the value set itself rather than the
// variable name holding it: a sorted, lowercased tuple of the distinct
// string values plus the pattern type that produced them (if_chain,
// membership, match), so "status == 'done'" and "STATE == 'Done'" across
// two files aggregate together instead of staying siloed by identifier.
func fingerprint(patternType string, values []string) string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	sort.Strings(lowered)
	return patternType + "|" + strings.Join(lowered, ",")
}

// Finalize reports one violation per occurrence of each fingerprint that
// recurred at least min_occurrences times. When require_cross_file is set,
// a fingerprint only qualifies if its occurrences span more than one file.
func (r *StringlyTypedRule) Finalize() []models.Violation {
	var violations []models.Violation
	fps := make([]string, 0, len(r.byFingerprint))
	for fp := range r.byFingerprint {
		fps = append(fps, fp)
	}
	sort.Strings(fps)

	for _, fp := range fps {
		occurrences := r.byFingerprint[fp]
		if len(occurrences) < r.minOcc {
			continue
		}
		if r.requireCross && !spansMultipleFiles(occurrences) {
			continue
		}
		for _, occ := range occurrences {
			violations = append(violations, models.Violation{
				RuleID:   r.RuleID(),
				FilePath: occ.filePath,
				Line:     occ.line,
				Message:  fmt.Sprintf("%q compared against %v in %d places; consider an enum", occ.variable, occ.values, len(occurrences)),
				Severity: models.SeverityInfo,
			})
		}
	}
	return violations
}

func spansMultipleFiles(occurrences []stringlyOccurrence) bool {
	files := map[string]bool{}
	for _, o := range occurrences {
		files[o.filePath] = true
	}
	return len(files) > 1
}
