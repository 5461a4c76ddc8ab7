// Package rules implements the Rule Registry (C3, §4.3) and the salient
// rule contracts of §4.8. Rules do not self-register: RegisterDefaults adds
// every built-in rule to an explicitly constructed Registry.
package rules

import (
	"sort"
	"sync"

	"github.com/flanksource/commons/logger"
	"github.com/thai-lint/thailint-go/models"
)

// Registry stores rules by rule_id and indexes them for prefix/language
// filter queries. Per SPEC_FULL.md's "Global state" design note, Registry
// is an explicit value owned by the orchestrator rather than a process-wide
// singleton, keeping the library embeddable — a deliberate departure from
// the source's process-global rule table.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]models.Rule
}

// NewRegistry returns an empty registry. Callers typically follow with
// RegisterDefaults to populate it with every built-in rule.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]models.Rule{}}
}

// Register adds rule, keyed by its RuleID. Registering two rules with the
// same id replaces the first — callers should treat rule_id as unique.
func (r *Registry) Register(rule models.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.RuleID()] = rule
}

// All returns every registered rule in rule_id lexicographic order, the
// order the orchestrator must call Finalize in (§5).
func (r *Registry) All() []models.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]models.Rule, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rules[id])
	}
	return out
}

// ForFile returns the rules applicable to a file's language, filtered by
// prefixFilter (rule-id prefixes; nil/empty means "all rules").
func (r *Registry) ForFile(lang models.Language, prefixFilter []string) []models.Rule {
	var out []models.Rule
	for _, rule := range r.All() {
		if !models.HasLanguage(rule.Languages(), lang) {
			continue
		}
		if len(prefixFilter) > 0 && !matchesAnyPrefix(rule.RuleID(), prefixFilter) {
			continue
		}
		out = append(out, rule)
	}
	return out
}

func matchesAnyPrefix(ruleID string, prefixes []string) bool {
	for _, p := range prefixes {
		if models.MatchesRulePattern(p, ruleID) || len(ruleID) >= len(p) && ruleID[:len(p)] == p {
			return true
		}
	}
	return false
}

// ResetStateful calls Reset on every registered StatefulRule, once per run,
// before the file walk begins (§3 Lifecycles, §4.1 step 5).
func (r *Registry) ResetStateful() {
	for _, rule := range r.All() {
		if stateful, ok := rule.(models.StatefulRule); ok {
			stateful.Reset()
		}
	}
}

// FinalizeAll calls Finalize on every StatefulRule in rule_id lexicographic
// order (§5), concatenating their violations. Each call is isolated by
// safeFinalize so a panicking rule's cross-file aggregation doesn't abort
// the rest of the run (§7, the same guarantee Check gets from the
// orchestrator's safeCheck).
func (r *Registry) FinalizeAll() []models.Violation {
	var out []models.Violation
	for _, rule := range r.All() {
		if stateful, ok := rule.(models.StatefulRule); ok {
			out = append(out, safeFinalize(stateful)...)
		}
	}
	return out
}

// safeFinalize recovers a panic from a StatefulRule's Finalize, logging it
// as a warning and treating it as "no violations from this rule" rather
// than propagating (§7 "any exception from a rule's finalize is caught").
func safeFinalize(rule models.StatefulRule) (violations []models.Violation) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("rule %s panicked in finalize: %v", rule.RuleID(), r)
			violations = nil
		}
	}()
	return rule.Finalize()
}

var allLanguages = models.LanguageSet(
	models.LanguagePython, models.LanguageTypeScript, models.LanguageJavaScript,
	models.LanguageBash, models.LanguageMarkdown, models.LanguageCSS,
)

var astLanguages = models.LanguageSet(
	models.LanguagePython, models.LanguageTypeScript, models.LanguageJavaScript,
)
