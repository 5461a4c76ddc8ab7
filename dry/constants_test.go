package dry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuzzyMatch_SameWordSetDifferentOrder(t *testing.T) {
	require.True(t, fuzzyMatch("MAX_RETRY_COUNT", "RETRY_MAX_COUNT"))
}

func TestFuzzyMatch_EditDistanceWithinTwo(t *testing.T) {
	require.True(t, fuzzyMatch("MAX_TIMEOUT", "MAX_TIMEOUTS"))
}

func TestFuzzyMatch_AntonymPairExcluded(t *testing.T) {
	require.False(t, fuzzyMatch("MIN_VALUE", "MAX_VALUE"))
}

func TestFuzzyMatch_SingleWordNeverMatches(t *testing.T) {
	require.False(t, fuzzyMatch("TIMEOUT", "TIMEOUTS"))
}

func TestFuzzyMatch_UnrelatedNamesDontMatch(t *testing.T) {
	require.False(t, fuzzyMatch("MAX_RETRY_COUNT", "DEFAULT_PAGE_SIZE"))
}

func TestLevenshtein_IdenticalIsZero(t *testing.T) {
	require.Equal(t, 0, levenshtein("ABC", "ABC"))
}

func TestLevenshtein_OneSubstitution(t *testing.T) {
	require.Equal(t, 1, levenshtein("CAT", "COT"))
}

func TestIsAntonymPair_DetectsKnownPair(t *testing.T) {
	require.True(t, isAntonymPair([]string{"ENABLE", "FEATURE"}, []string{"DISABLE", "FEATURE"}))
}
