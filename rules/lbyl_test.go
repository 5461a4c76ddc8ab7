package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func TestLBYLRule_FlagsHasattrGuard(t *testing.T) {
	src := "def f(obj):\n    if hasattr(obj, 'name'):\n        return obj.name\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewLBYLRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Contains(t, violations[0].Message, "hasattr")
}

func TestLBYLRule_FlagsDictKeyGuard(t *testing.T) {
	src := "def f(d):\n    if 'key' in d:\n        return d['key']\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewLBYLRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Contains(t, violations[0].Message, "dict_key")
}

func TestLBYLRule_IsinstanceDisabledByDefault(t *testing.T) {
	src := "def f(obj):\n    if isinstance(obj, str):\n        return obj\n"
	ctx := contextFor(models.LanguagePython, src, nil)
	r := NewLBYLRule()
	require.Empty(t, r.Check(ctx))
}

func TestLBYLRule_IsinstanceEnabledViaConfig(t *testing.T) {
	src := "def f(obj):\n    if isinstance(obj, str):\n        return obj\n"
	ctx := contextFor(models.LanguagePython, src, map[string]any{"isinstance": true})
	r := NewLBYLRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
}

func TestClassifyGuard(t *testing.T) {
	_, ok := classifyGuard(&fakeTextNode{text: "x > 5"})
	require.False(t, ok)
}

type fakeTextNode struct {
	text string
}

func (f *fakeTextNode) Kind() string             { return "comparison_operator" }
func (f *fakeTextNode) StartLine() int           { return 1 }
func (f *fakeTextNode) EndLine() int             { return 1 }
func (f *fakeTextNode) StartColumn() int         { return 0 }
func (f *fakeTextNode) Text() []byte             { return []byte(f.text) }
func (f *fakeTextNode) Children() []models.Node  { return nil }
