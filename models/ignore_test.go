package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesRulePattern_ExactAndWildcard(t *testing.T) {
	require.True(t, MatchesRulePattern("srp.violation", "srp.violation"))
	require.False(t, MatchesRulePattern("srp.violation", "srp.other"))
	require.True(t, MatchesRulePattern("srp.*", "srp.violation"))
	require.False(t, MatchesRulePattern("srp.*", "nesting.excessive-depth"))
	require.True(t, MatchesRulePattern("*", "anything"))
	require.False(t, MatchesRulePattern("", "anything"))
}

func TestAnyPatternMatches_EmptyMeansMatchAll(t *testing.T) {
	require.True(t, AnyPatternMatches(nil, "srp.violation"))
	require.True(t, AnyPatternMatches([]string{}, "srp.violation"))
}

func TestAnyPatternMatches_MatchesAnyInList(t *testing.T) {
	require.True(t, AnyPatternMatches([]string{"nesting.*", "srp.violation"}, "srp.violation"))
	require.False(t, AnyPatternMatches([]string{"nesting.*"}, "srp.violation"))
}
