package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func TestClassifyExtension_KnownLanguages(t *testing.T) {
	cases := map[string]models.Language{
		"foo.py":         models.LanguagePython,
		"foo.pyi":        models.LanguagePython,
		"bar.ts":         models.LanguageTypeScript,
		"bar.tsx":        models.LanguageTypeScript,
		"baz.js":         models.LanguageJavaScript,
		"baz.jsx":        models.LanguageJavaScript,
		"run.sh":         models.LanguageBash,
		"README.md":      models.LanguageMarkdown,
		"README.markdown": models.LanguageMarkdown,
		"styles.css":     models.LanguageCSS,
	}
	for path, want := range cases {
		require.Equal(t, want, ClassifyExtension(path), path)
	}
}

func TestClassifyExtension_UnknownIsOther(t *testing.T) {
	require.Equal(t, models.LanguageOther, ClassifyExtension("Makefile"))
	require.Equal(t, models.LanguageOther, ClassifyExtension("data.bin"))
}

func TestNewRegistry_HasAnalyzersForTreeSitterAndMarkdownOnly(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.For(models.LanguagePython))
	require.NotNil(t, r.For(models.LanguageTypeScript))
	require.NotNil(t, r.For(models.LanguageJavaScript))
	require.NotNil(t, r.For(models.LanguageBash))
	require.NotNil(t, r.For(models.LanguageMarkdown))
	require.Nil(t, r.For(models.LanguageCSS))
	require.Nil(t, r.For(models.LanguageOther))
}

func TestRegistry_ForPythonParsesSource(t *testing.T) {
	r := NewRegistry()
	tree, err := r.For(models.LanguagePython).Parse("def f():\n    return 1\n")
	require.NoError(t, err)
	require.NotNil(t, tree.Root())
	require.Equal(t, models.LanguagePython, tree.Language())
}
