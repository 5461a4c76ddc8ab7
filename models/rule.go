package models

// Rule is the capability set every check implements (§3, §4.3). A rule that
// only implements Check is stateless-per-file. A rule that also implements
// StatefulRule accumulates state across Check calls and emits violations
// from Finalize; the orchestrator calls Reset on it exactly once before a
// run's file walk begins.
type Rule interface {
	RuleID() string
	RuleName() string
	Description() string
	// Languages returns the canonical tags this rule applies to. A rule
	// whose set does not contain a file's language is skipped without
	// being called.
	Languages() []Language
	Check(ctx *LintContext) []Violation
}

// StatefulRule is implemented by cross-file rules (dry.*, stringly_typed.*).
// Finalize is called exactly once per rule per run, after every file has
// been visited via Check, in rule_id lexicographic order.
type StatefulRule interface {
	Rule
	Finalize() []Violation
	// Reset clears any accumulated state so the same rule instance can be
	// reused across runs (§3 Lifecycles).
	Reset()
}

// LanguageSet builds a convenience slice from any combination of canonical
// tags, so rule constructors can write Languages: LanguageSet(LanguagePython).
func LanguageSet(langs ...Language) []Language {
	return langs
}

// HasLanguage reports whether langs contains lang.
func HasLanguage(langs []Language, lang Language) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}
