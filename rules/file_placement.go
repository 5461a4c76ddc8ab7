package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/thai-lint/thailint-go/models"
)

// FilePlacementRule implements file_placement (§4.8, invariant I6): each
// configured directory scope carries its own allow/deny regex lists; the
// longest matching directory prefix for a file wins over any shorter or
// global scope, and within the winning scope a deny match always beats an
// allow match.
type FilePlacementRule struct{}

func NewFilePlacementRule() *FilePlacementRule { return &FilePlacementRule{} }

func (r *FilePlacementRule) RuleID() string      { return "file_placement.violation" }
func (r *FilePlacementRule) RuleName() string    { return "File placement" }
func (r *FilePlacementRule) Description() string { return "Flags files placed outside the directories their content type is allowed in." }
func (r *FilePlacementRule) Languages() []models.Language { return allLanguages }

type placementScope struct {
	prefix string
	allow  []*regexp.Regexp
	deny   []denyRule
}

// denyRule pairs a compiled deny pattern with its optional explanatory
// reason, per §4.4's `deny: [{pattern, reason?}]` documented form.
type denyRule struct {
	pattern *regexp.Regexp
	reason  string
}

func (r *FilePlacementRule) Check(ctx *models.LintContext) []models.Violation {
	section := ctx.RuleConfig("file_placement")
	scopes := parseScopes(section)
	globalAllow := compileAll(strSliceOr(section, "global_patterns", nil))
	globalDeny := parseDenyEntries(section["global_deny"])

	relPath := filepathToSlash(ctx.FilePath)
	scope := longestMatchingScope(scopes, relPath)

	allow, deny := globalAllow, globalDeny
	if scope != nil {
		allow, deny = scope.allow, scope.deny
	}

	if match := matchingDeny(deny, relPath); match != nil {
		message := "file path matches a denied placement pattern"
		if match.reason != "" {
			message += ": " + match.reason
		}
		return []models.Violation{{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     1,
			Column:   0,
			Message:  message,
			Severity: models.SeverityError,
		}}
	}
	if len(allow) > 0 && !matchesAny(allow, relPath) {
		return []models.Violation{{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     1,
			Column:   0,
			Message:  "file path does not match any allowed placement pattern for its directory",
			Severity: models.SeverityWarning,
		}}
	}
	return nil
}

func parseScopes(section map[string]any) []placementScope {
	raw, ok := section["directories"].(map[string]any)
	if !ok {
		return nil
	}
	var scopes []placementScope
	for prefix, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		scopes = append(scopes, placementScope{
			prefix: prefix,
			allow:  compileAll(strSliceOr(m, "allow", nil)),
			deny:   parseDenyEntries(m["deny"]),
		})
	}
	return scopes
}

// compileAll is a defense-in-depth pass over already-validated patterns:
// config.Load rejects an unparsable regex with a ConfigParseError at load
// time (§4.4), so in a config reached through the loader this never
// silently drops anything; it only protects callers (tests, embedders)
// that build a RuleConfig map directly, bypassing the loader.
func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			out = append(out, re)
		}
	}
	return out
}

// parseDenyEntries accepts deny lists in either documented form: a plain
// string pattern, or an object {pattern, reason}. Anything else (or an
// invalid regex) is skipped.
func parseDenyEntries(v any) []denyRule {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]denyRule, 0, len(raw))
	for _, item := range raw {
		switch entry := item.(type) {
		case string:
			if re, err := regexp.Compile(entry); err == nil {
				out = append(out, denyRule{pattern: re})
			}
		case map[string]any:
			pattern, _ := entry["pattern"].(string)
			if pattern == "" {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			reason, _ := entry["reason"].(string)
			out = append(out, denyRule{pattern: re, reason: reason})
		}
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func matchingDeny(rules []denyRule, path string) *denyRule {
	for i := range rules {
		if rules[i].pattern.MatchString(path) {
			return &rules[i]
		}
	}
	return nil
}

// longestMatchingScope returns the scope whose prefix is the longest
// directory-prefix match for path, or nil when no scope applies (falling
// back to the global allow/deny lists).
func longestMatchingScope(scopes []placementScope, path string) *placementScope {
	var best *placementScope
	bestLen := -1
	sort.Slice(scopes, func(i, j int) bool { return scopes[i].prefix < scopes[j].prefix })
	for i := range scopes {
		prefix := strings.TrimSuffix(scopes[i].prefix, "/")
		if prefix == "" || path == prefix || strings.HasPrefix(path, prefix+"/") {
			if len(prefix) > bestLen {
				best = &scopes[i]
				bestLen = len(prefix)
			}
		}
	}
	return best
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
