package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleSection_IsEnabled(t *testing.T) {
	var unset RuleSection
	require.True(t, unset.IsEnabled(true))
	require.False(t, unset.IsEnabled(false))

	enabled := true
	set := RuleSection{Enabled: &enabled}
	require.True(t, set.IsEnabled(false))
}

func TestRuleSection_ForLanguage_OverlaysOptions(t *testing.T) {
	base := RuleSection{
		Options: map[string]any{"max_depth": 4, "keep": "me"},
		Languages: map[string]RuleSection{
			"python": {Options: map[string]any{"max_depth": 6}},
		},
	}
	resolved := base.ForLanguage(LanguagePython)
	require.Equal(t, 6, resolved.Options["max_depth"])
	require.Equal(t, "me", resolved.Options["keep"])
}

func TestRuleSection_ForLanguage_NoOverlayReturnsSelf(t *testing.T) {
	base := RuleSection{Options: map[string]any{"max_depth": 4}}
	resolved := base.ForLanguage(LanguageTypeScript)
	require.Equal(t, base, resolved)
}

func TestRuleSection_ForLanguage_OverlayEnabledWins(t *testing.T) {
	disabled := false
	base := RuleSection{
		Enabled: nil,
		Languages: map[string]RuleSection{
			"python": {Enabled: &disabled},
		},
	}
	resolved := base.ForLanguage(LanguagePython)
	require.False(t, resolved.IsEnabled(true))
}

func TestRuleSection_IntOption_HandlesNumericTypes(t *testing.T) {
	s := RuleSection{Options: map[string]any{"a": 1, "b": int64(2), "c": float64(3)}}
	require.Equal(t, 1, s.IntOption("a", 0))
	require.Equal(t, 2, s.IntOption("b", 0))
	require.Equal(t, 3, s.IntOption("c", 0))
	require.Equal(t, 9, s.IntOption("missing", 9))
}

func TestRuleSection_BoolOption(t *testing.T) {
	s := RuleSection{Options: map[string]any{"x": true}}
	require.True(t, s.BoolOption("x", false))
	require.True(t, s.BoolOption("missing", true))
}

func TestRuleSection_StringSliceOption_FromAnySliceAndStringSlice(t *testing.T) {
	s := RuleSection{Options: map[string]any{
		"a": []any{"x", "y"},
		"b": []string{"p", "q"},
	}}
	require.Equal(t, []string{"x", "y"}, s.StringSliceOption("a", nil))
	require.Equal(t, []string{"p", "q"}, s.StringSliceOption("b", nil))
	require.Equal(t, []string{"def"}, s.StringSliceOption("missing", []string{"def"}))
}
