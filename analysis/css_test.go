package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderComment_FoundWithLeadingWhitespace(t *testing.T) {
	content := "\n  /**\n * Purpose: styles\n */\n.button { color: red; }\n"
	block, ok := HeaderComment(content)
	require.True(t, ok)
	require.Contains(t, block, "Purpose: styles")
}

func TestHeaderComment_MissingReturnsFalse(t *testing.T) {
	_, ok := HeaderComment(".button { color: red; }\n")
	require.False(t, ok)
}

func TestHeaderComment_UnterminatedReturnsFalse(t *testing.T) {
	_, ok := HeaderComment("/** unterminated\n.button {}\n")
	require.False(t, ok)
}

func TestHeaderFields_ParsesStarPrefixedLines(t *testing.T) {
	block := "/**\n * Purpose: styles\n * Author: Jane\n */"
	fields := HeaderFields(block)
	require.Equal(t, "styles", fields["Purpose"])
	require.Equal(t, "Jane", fields["Author"])
}
