// Package linter is the library API boundary (§6): a Linter loads
// configuration once at construction and exposes Lint plus one direct
// entry point per rule category, each constructing a minimal
// single-rule context internally.
package linter

import (
	"github.com/thai-lint/thailint-go/models"
	"github.com/thai-lint/thailint-go/orchestrator"
)

// Linter is the top-level embeddable entry point. Construct one per
// project; it owns the rule registry and DRY cache handle for its
// lifetime, so callers should Close it when done.
type Linter struct {
	orch *orchestrator.Orchestrator
}

// New loads config starting from projectRoot (explicitConfigPath, if
// non-empty, wins outright per §4.4) and wires every built-in rule.
// A malformed config file surfaces as *config.ConfigParseError, the one
// error type the library boundary raises per §7.
func New(projectRoot, explicitConfigPath string) (*Linter, error) {
	orch, err := orchestrator.New(projectRoot, explicitConfigPath)
	if err != nil {
		return nil, err
	}
	return &Linter{orch: orch}, nil
}

// Close releases the DRY cache handle opened for this Linter's lifetime.
func (l *Linter) Close() { l.orch.Close() }

// Lint runs every rule whose id matches one of rules (nil/empty means
// every rule) over path, returning violations sorted by (line, column,
// rule_id). A nonexistent path returns an empty slice, not an error (§7).
func (l *Linter) Lint(path string, rules []string) ([]models.Violation, error) {
	return l.orch.Lint(path, rules)
}

// lintOne is the shared implementation behind every direct rule entry
// point: run a single rule_id prefix over path.
func (l *Linter) lintOne(path, rulePrefix string) ([]models.Violation, error) {
	return l.orch.Lint(path, []string{rulePrefix})
}

// NestingLint runs nesting.excessive-depth alone over path. An optional
// maxDepth overrides the configured threshold for this call only (§6's
// "nesting_lint(path, max_depth?)").
func (l *Linter) NestingLint(path string, maxDepth ...int) ([]models.Violation, error) {
	if len(maxDepth) > 0 {
		l.overrideOption("nesting", "max_depth", maxDepth[0])
	}
	return l.lintOne(path, "nesting.")
}

// overrideOption mutates the loaded config's section in place for the
// remainder of this Linter's lifetime, backing the direct rule entry
// points' optional threshold arguments.
func (l *Linter) overrideOption(category, key string, value any) {
	section := l.orch.Config.Rules[category]
	if section.Options == nil {
		section.Options = map[string]any{}
	}
	section.Options[key] = value
	l.orch.Config.Rules[category] = section
}

// SRPLint runs srp.violation alone over path.
func (l *Linter) SRPLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "srp.")
}

// StatelessClassLint runs stateless-class.violation alone over path.
func (l *Linter) StatelessClassLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "stateless-class.")
}

// MagicNumbersLint runs magic_numbers.literal alone over path.
func (l *Linter) MagicNumbersLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "magic_numbers.")
}

// LBYLLint runs lbyl.guard alone over path.
func (l *Linter) LBYLLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "lbyl.")
}

// MethodPropertyLint runs method-property.should-be-property alone over path.
func (l *Linter) MethodPropertyLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "method-property.")
}

// CollectionPipelineLint runs collection-pipeline.embedded-filter alone
// over path.
func (l *Linter) CollectionPipelineLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "collection-pipeline.")
}

// StringlyTypedLint runs stringly_typed.candidate alone over path.
func (l *Linter) StringlyTypedLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "stringly_typed.")
}

// DRYLint runs the duplicate-code/duplicate-constant rule alone over path.
func (l *Linter) DRYLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "dry.")
}

// FileHeaderLint runs file_header alone over path.
func (l *Linter) FileHeaderLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "file_header.")
}

// FilePlacementLint runs file_placement alone over path.
func (l *Linter) FilePlacementLint(path string) ([]models.Violation, error) {
	return l.lintOne(path, "file_placement.")
}
