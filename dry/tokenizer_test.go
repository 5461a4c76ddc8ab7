package dry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func TestTokenizePython_StripsCommentsBlankLinesAndImports(t *testing.T) {
	src := "import os\nfrom foo import bar\n\n# a comment\nx = 1  # trailing\n"
	out := Tokenize(src, models.LanguagePython)
	require.Len(t, out, 1)
	require.Equal(t, "x = 1", out[0].Text)
	require.Equal(t, 5, out[0].Line)
}

func TestTokenizePython_SkipsTripleQuotedDocstring(t *testing.T) {
	src := "def f():\n    \"\"\"\n    a docstring\n    spanning lines\n    \"\"\"\n    return 1\n"
	out := Tokenize(src, models.LanguagePython)
	var texts []string
	for _, l := range out {
		texts = append(texts, l.Text)
	}
	require.Contains(t, texts, "def f():")
	require.Contains(t, texts, "return 1")
	require.NotContains(t, texts, "a docstring")
}

func TestTokenizeCFamily_StripsLineAndBlockComments(t *testing.T) {
	src := "import { x } from 'y'\n/** jsdoc\n * more\n */\nconst a = 1; // trailing\n/* inline */ const b = 2;\n"
	out := Tokenize(src, models.LanguageTypeScript)
	var texts []string
	for _, l := range out {
		texts = append(texts, l.Text)
	}
	require.Contains(t, texts, "const a = 1;")
	require.Contains(t, texts, "const b = 2;")
	require.NotContains(t, texts, "/** jsdoc")
}

func TestTokenizeBash_SkipsShebangAndComments(t *testing.T) {
	src := "#!/bin/bash\n# a comment\necho hi\n"
	out := Tokenize(src, models.LanguageBash)
	require.Len(t, out, 1)
	require.Equal(t, "echo hi", out[0].Text)
	require.Equal(t, 3, out[0].Line)
}

func TestTokenizeGeneric_TrimsAndDropsBlankLines(t *testing.T) {
	out := Tokenize("  a  \n\n  b  \n", models.LanguageCSS)
	require.Equal(t, []NormalizedLine{{Text: "a", Line: 1}, {Text: "b", Line: 3}}, out)
}

func TestStripLineComment_RespectsQuotedHash(t *testing.T) {
	require.Equal(t, `x = "a # not a comment" `, stripLineComment(`x = "a # not a comment" # real comment`, "#"))
}
