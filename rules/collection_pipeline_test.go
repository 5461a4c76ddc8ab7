package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func TestCollectionPipelineRule_FlagsGuardAndContinue(t *testing.T) {
	src := "def f(items):\n    for x in items:\n        if not x.active:\n            continue\n        use(x)\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewCollectionPipelineRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Contains(t, violations[0].Message, "filter")
}

func TestCollectionPipelineRule_FlagsAppendOnCondition(t *testing.T) {
	src := "def f(items):\n    out = []\n    for x in items:\n        if x.active:\n            out.append(x)\n    return out\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewCollectionPipelineRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
}

func TestCollectionPipelineRule_FlagsFlagThenBreak(t *testing.T) {
	src := "def f(items):\n    for x in items:\n        if x.matches:\n            break\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewCollectionPipelineRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Contains(t, violations[0].Message, "any/all")
}

func TestCollectionPipelineRule_PlainLoopIsClean(t *testing.T) {
	src := "def f(items):\n    for x in items:\n        process(x)\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewCollectionPipelineRule()
	require.Empty(t, r.Check(ctx))
}

func TestHasSuffix(t *testing.T) {
	require.True(t, hasSuffix("out.append", ".append"))
	require.False(t, hasSuffix("append", ".append"))
}
