package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeTree struct{}

func (fakeTree) Root() Node         { return nil }
func (fakeTree) Language() Language { return LanguagePython }

func TestLintContext_Tree_ParsesLazilyOnce(t *testing.T) {
	calls := 0
	ctx := NewLintContext("f.py", LanguagePython, "x = 1", nil, func() (Tree, error) {
		calls++
		return fakeTree{}, nil
	})

	_, err := ctx.Tree()
	require.NoError(t, err)
	_, err = ctx.Tree()
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestLintContext_Tree_CachesParseError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	ctx := NewLintContext("f.py", LanguagePython, "x = 1", nil, func() (Tree, error) {
		calls++
		return nil, boom
	})

	_, err := ctx.Tree()
	require.ErrorIs(t, err, boom)
	_, err = ctx.Tree()
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestLintContext_Tree_NilParseFnReturnsNil(t *testing.T) {
	ctx := NewLintContext("f.css", LanguageCSS, ".a{}", nil, nil)
	tree, err := ctx.Tree()
	require.NoError(t, err)
	require.Nil(t, tree)
}

func TestLintContext_RuleConfig_MissingReturnsEmptyMap(t *testing.T) {
	ctx := NewLintContext("f.py", LanguagePython, "", nil, nil)
	require.Empty(t, ctx.RuleConfig("nesting"))
}

func TestLintContext_RuleConfig_ReturnsConfiguredSection(t *testing.T) {
	meta := map[string]any{"nesting": map[string]any{"max_depth": 6}}
	ctx := NewLintContext("f.py", LanguagePython, "", meta, nil)
	require.Equal(t, 6, ctx.RuleConfig("nesting")["max_depth"])
}
