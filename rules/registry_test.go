package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

type stubRule struct {
	id    string
	langs []models.Language
}

func (s *stubRule) RuleID() string              { return s.id }
func (s *stubRule) RuleName() string            { return s.id }
func (s *stubRule) Description() string         { return "" }
func (s *stubRule) Languages() []models.Language { return s.langs }
func (s *stubRule) Check(*models.LintContext) []models.Violation { return nil }

type stubStatefulRule struct {
	stubRule
	resetCalled    bool
	finalizeResult []models.Violation
}

func (s *stubStatefulRule) Reset()                      { s.resetCalled = true }
func (s *stubStatefulRule) Finalize() []models.Violation { return s.finalizeResult }

func TestRegistry_AllReturnsSortedByRuleID(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubRule{id: "zzz.rule", langs: allLanguages})
	reg.Register(&stubRule{id: "aaa.rule", langs: allLanguages})
	got := reg.All()
	require.Len(t, got, 2)
	require.Equal(t, "aaa.rule", got[0].RuleID())
	require.Equal(t, "zzz.rule", got[1].RuleID())
}

func TestRegistry_ForFileFiltersByLanguage(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubRule{id: "python-only.rule", langs: models.LanguageSet(models.LanguagePython)})
	reg.Register(&stubRule{id: "all.rule", langs: allLanguages})

	applicable := reg.ForFile(models.LanguageMarkdown, nil)
	require.Len(t, applicable, 1)
	require.Equal(t, "all.rule", applicable[0].RuleID())
}

func TestRegistry_ForFileFiltersByPrefix(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubRule{id: "nesting.excessive-depth", langs: allLanguages})
	reg.Register(&stubRule{id: "srp.violation", langs: allLanguages})

	applicable := reg.ForFile(models.LanguagePython, []string{"srp."})
	require.Len(t, applicable, 1)
	require.Equal(t, "srp.violation", applicable[0].RuleID())
}

func TestRegistry_ResetStatefulAndFinalizeAll(t *testing.T) {
	reg := NewRegistry()
	stateful := &stubStatefulRule{
		stubRule:       stubRule{id: "dry.duplicate-code", langs: allLanguages},
		finalizeResult: []models.Violation{{RuleID: "dry.duplicate-code"}},
	}
	reg.Register(stateful)
	reg.Register(&stubRule{id: "nesting.excessive-depth", langs: allLanguages})

	reg.ResetStateful()
	require.True(t, stateful.resetCalled)

	violations := reg.FinalizeAll()
	require.Len(t, violations, 1)
	require.Equal(t, "dry.duplicate-code", violations[0].RuleID)
}

type panickingStatefulRule struct {
	stubRule
}

func (p *panickingStatefulRule) Reset() {}
func (p *panickingStatefulRule) Finalize() []models.Violation {
	panic("boom")
}

func TestRegistry_FinalizeAllRecoversPanickingRule(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&panickingStatefulRule{stubRule: stubRule{id: "aaa.panics", langs: allLanguages}})
	reg.Register(&stubStatefulRule{
		stubRule:       stubRule{id: "zzz.fine", langs: allLanguages},
		finalizeResult: []models.Violation{{RuleID: "zzz.fine"}},
	})

	var violations []models.Violation
	require.NotPanics(t, func() { violations = reg.FinalizeAll() })
	require.Len(t, violations, 1)
	require.Equal(t, "zzz.fine", violations[0].RuleID)
}

func TestRegisterDefaults_RegistersEveryBuiltinRule(t *testing.T) {
	reg := NewRegistry()
	RegisterDefaults(reg, newTestDRYEngine())
	ids := make([]string, 0)
	for _, r := range reg.All() {
		ids = append(ids, r.RuleID())
	}
	require.Contains(t, ids, "nesting.excessive-depth")
	require.Contains(t, ids, "srp.violation")
	require.Contains(t, ids, "stateless-class.violation")
	require.Contains(t, ids, "magic_numbers.literal")
	require.Contains(t, ids, "lbyl.guard")
	require.Contains(t, ids, "method-property.should-be-property")
	require.Contains(t, ids, "collection-pipeline.embedded-filter")
	require.Contains(t, ids, "stringly_typed.candidate")
	require.Contains(t, ids, "file_header.missing-or-stale")
	require.Contains(t, ids, "file_placement.violation")
	require.Contains(t, ids, "dry.duplicate-code")
	require.Len(t, ids, 11)
}
