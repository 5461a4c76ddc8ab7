package rules

import (
	"github.com/thai-lint/thailint-go/dry"
	"github.com/thai-lint/thailint-go/models"
)

// DRYRule adapts a dry.Engine to the StatefulRule contract so the
// orchestrator drives the duplicate-code and duplicate-constant checks
// through the same Check/Finalize/Reset lifecycle as every other rule
// (§4.6). It reports under two rule ids, both handled by this one
// registry entry keyed on the duplicate-code id; Finalize emits violations
// for both.
type DRYRule struct {
	engine *dry.Engine
}

// NewDRYRule constructs the rule around an already-opened Engine (owned by
// the caller, who should defer engine.Close()).
func NewDRYRule(engine *dry.Engine) *DRYRule {
	return &DRYRule{engine: engine}
}

func (r *DRYRule) RuleID() string      { return dry.RuleIDDuplicateCode }
func (r *DRYRule) RuleName() string    { return "Duplicate code" }
func (r *DRYRule) Description() string { return "Finds near-duplicate code blocks and duplicate module-level constants across the project." }
func (r *DRYRule) Languages() []models.Language {
	return models.LanguageSet(
		models.LanguagePython, models.LanguageTypeScript, models.LanguageJavaScript,
		models.LanguageBash, models.LanguageMarkdown, models.LanguageCSS,
	)
}

// Check feeds ctx to the engine; the engine decides internally (via its
// per-language config) whether to tokenize or skip. No violations are
// produced here — they all surface from Finalize once every file has been
// seen (§4.6 Aggregation).
func (r *DRYRule) Check(ctx *models.LintContext) []models.Violation {
	r.engine.Analyze(ctx)
	return nil
}

func (r *DRYRule) Finalize() []models.Violation {
	return r.engine.Finalize()
}

func (r *DRYRule) Reset() {
	r.engine.Reset()
}
