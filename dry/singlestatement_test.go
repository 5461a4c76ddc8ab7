package dry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

func parseCtx(t *testing.T, lang models.Language, src string) *models.LintContext {
	t.Helper()
	return models.NewLintContext("f", lang, src, nil, func() (models.Tree, error) {
		return analysis.NewTreeSitterRuntime().For(lang).Parse(src)
	})
}

func TestIsSingleStatement_WholeFunctionIsOneStatement(t *testing.T) {
	src := "def f():\n    return 1\n"
	ctx := parseCtx(t, models.LanguagePython, src)
	require.True(t, isSingleStatement(ctx, 1, 2))
}

func TestIsSingleStatement_TwoTopLevelStatementsIsNotSingle(t *testing.T) {
	src := "x = 1\ny = 2\n"
	ctx := parseCtx(t, models.LanguagePython, src)
	require.False(t, isSingleStatement(ctx, 1, 2))
}

func TestIsSingleStatement_NoTreeNeverSingle(t *testing.T) {
	ctx := models.NewLintContext("f", models.LanguageCSS, ".a{}\n", nil, nil)
	require.False(t, isSingleStatement(ctx, 1, 1))
}

func TestTSInterfaceRanges_FindsTopLevelInterface(t *testing.T) {
	src := "interface Foo {\n  bar: string;\n}\n\nconst x = 1;\n"
	ctx := parseCtx(t, models.LanguageTypeScript, src)
	ranges := tsInterfaceRanges(ctx)
	require.Len(t, ranges, 1)
	require.Equal(t, 1, ranges[0][0])
	require.Equal(t, 3, ranges[0][1])
}

func TestTSInterfaceRanges_NonTypeScriptIsNil(t *testing.T) {
	ctx := parseCtx(t, models.LanguagePython, "x = 1\n")
	require.Nil(t, tsInterfaceRanges(ctx))
}
