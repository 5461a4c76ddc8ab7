package models

// IgnoreScope is the kind of in-source suppression annotation (§3, §4.2).
type IgnoreScope string

const (
	IgnoreScopeFile       IgnoreScope = "file"
	IgnoreScopeNextLine   IgnoreScope = "next-line"
	IgnoreScopeLine       IgnoreScope = "line"
	IgnoreScopeBlockStart IgnoreScope = "block-start"
	IgnoreScopeBlockEnd   IgnoreScope = "block-end"
)

// IgnoreDirective is a single parsed in-source suppression annotation.
// RuleSet is nil for a bare "ignore everything" directive; otherwise it
// holds one or more rule-id patterns, each possibly ending in "*".
type IgnoreDirective struct {
	Scope   IgnoreScope
	Line    int
	RuleSet []string
}

// MatchesRulePattern reports whether pattern matches ruleID per §4.2's matching
// rules: "foo.*" matches any rule-id with the "foo." prefix; a bare "foo"
// matches only the exact id.
func MatchesRulePattern(pattern, ruleID string) bool {
	if pattern == "" {
		return false
	}
	if pattern == "*" {
		return true
	}
	if len(pattern) > 1 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(ruleID) >= len(prefix) && ruleID[:len(prefix)] == prefix
	}
	return pattern == ruleID
}

// AnyPatternMatches reports whether any pattern in patterns matches ruleID.
// A nil/empty patterns slice means "matches every rule" (a bare ignore).
func AnyPatternMatches(patterns []string, ruleID string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if MatchesRulePattern(p, ruleID) {
			return true
		}
	}
	return false
}

// GlobPattern is a repository-level ignore pattern sourced from
// .thailintignore, using gitignore semantics.
type GlobPattern struct {
	Pattern    string
	DirOnly    bool // pattern had a trailing "/"
	Negated    bool // pattern started with "!"
	SourceFile string
	SourceLine int
}
