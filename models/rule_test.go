package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLanguageSet_BuildsSliceFromVariadicArgs(t *testing.T) {
	require.Equal(t, []Language{LanguagePython, LanguageBash}, LanguageSet(LanguagePython, LanguageBash))
}

func TestHasLanguage(t *testing.T) {
	set := LanguageSet(LanguagePython, LanguageTypeScript)
	require.True(t, HasLanguage(set, LanguagePython))
	require.False(t, HasLanguage(set, LanguageCSS))
}
