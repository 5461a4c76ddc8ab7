package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

func parseLang(t *testing.T, lang models.Language, src string) models.Tree {
	t.Helper()
	a := analysis.NewTreeSitterRuntime().For(lang)
	require.NotNil(t, a, "no analyzer for %s", lang)
	tree, err := a.Parse(src)
	require.NoError(t, err)
	return tree
}

func contextForFile(path string, lang models.Language, src string, section map[string]any) *models.LintContext {
	ctx := contextFor(lang, src, section)
	ctx.FilePath = path
	return ctx
}

func contextFor(lang models.Language, src string, section map[string]any) *models.LintContext {
	meta := map[string]any{}
	if section != nil {
		meta["nesting"] = section
		meta["srp"] = section
		meta["magic_numbers"] = section
		meta["lbyl"] = section
		meta["stateless_class"] = section
		meta["method_property"] = section
		meta["collection_pipeline"] = section
		meta["stringly_typed"] = section
		meta["file_header"] = section
		meta["file_placement"] = section
	}
	return models.NewLintContext("test.py", lang, src, meta, func() (models.Tree, error) {
		a := analysis.NewTreeSitterRuntime().For(lang)
		return a.Parse(src)
	})
}

func TestNestingRule_FlagsExcessiveDepth(t *testing.T) {
	src := `
def handler(items):
    if items:
        for item in items:
            if item:
                while item.pending:
                    if item.ready:
                        item.process()
`
	ctx := contextFor(models.LanguagePython, src, map[string]any{"max_depth": 3})
	r := NewNestingRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Equal(t, "nesting.excessive-depth", violations[0].RuleID)
}

func TestNestingRule_WithinLimitIsClean(t *testing.T) {
	src := `
def handler(items):
    if items:
        for item in items:
            item.process()
`
	ctx := contextFor(models.LanguagePython, src, map[string]any{"max_depth": 4})
	r := NewNestingRule()
	require.Empty(t, r.Check(ctx))
}

func TestNestingRule_DefaultMaxDepthIsFour(t *testing.T) {
	depthFour := "def f(x):\n    if x:\n        for i in x:\n            if i:\n                while i.pending:\n                    i.run()\n"
	r := NewNestingRule()
	require.Empty(t, r.Check(contextFor(models.LanguagePython, depthFour, nil)))

	depthFive := "def f(x):\n    if x:\n        for i in x:\n            if i:\n                while i.pending:\n                    if i.ready:\n                        i.run()\n"
	require.Len(t, r.Check(contextFor(models.LanguagePython, depthFive, nil)), 1)
}

func TestNestingRule_Metadata(t *testing.T) {
	r := NewNestingRule()
	require.Equal(t, "nesting.excessive-depth", r.RuleID())
	require.NotEmpty(t, r.RuleName())
	require.NotEmpty(t, r.Description())
	require.Contains(t, r.Languages(), models.LanguagePython)
	require.Contains(t, r.Languages(), models.LanguageBash)
}

func TestIntOr(t *testing.T) {
	require.Equal(t, 4, intOr(map[string]any{}, "max_depth", 4))
	require.Equal(t, 7, intOr(map[string]any{"max_depth": 7}, "max_depth", 4))
	require.Equal(t, 7, intOr(map[string]any{"max_depth": float64(7)}, "max_depth", 4))
	require.Equal(t, 4, intOr(map[string]any{"max_depth": "bad"}, "max_depth", 4))
}

func TestBoolOr(t *testing.T) {
	require.True(t, boolOr(map[string]any{}, "enabled", true))
	require.False(t, boolOr(map[string]any{"enabled": false}, "enabled", true))
}

func TestStrSliceOr(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, strSliceOr(map[string]any{"x": []any{"a", "b"}}, "x", nil))
	require.Equal(t, []string{"z"}, strSliceOr(map[string]any{}, "x", []string{"z"}))
}
