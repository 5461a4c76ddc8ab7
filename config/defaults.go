package config

import "github.com/thai-lint/thailint-go/models"

// Defaults returns the configuration used when no .thailint.yaml/.json is
// found. Thresholds below mirror original_source/src/linters/dry/config.py
// and spec.md §4.4.
func Defaults() *models.Config {
	return &models.Config{
		Version: "1.0",
		Rules: map[string]models.RuleSection{
			"dry": {
				Options: map[string]any{
					"enabled":                    false,
					"min_duplicate_lines":        3,
					"min_duplicate_tokens":       30,
					"cache_enabled":              true,
					"cache_path":                 ".thailint-cache/dry.db",
					"cache_max_age_days":         30,
					"min_occurrences":            2,
					"detect_duplicate_constants": true,
					"min_constant_occurrences":   2,
					"ignore_patterns":            []any{"tests/", "__init__.py"},
				},
			},
			"stringly_typed": {
				Options: map[string]any{
					"min_occurrences":    2,
					"min_values_for_enum": 2,
					"max_values_for_enum": 6,
					"require_cross_file": true,
				},
			},
			"nesting": {
				Options: map[string]any{"max_depth": 4},
			},
			"srp": {
				Options: map[string]any{
					"max_methods": 7,
					"max_loc":     200,
					"keywords":    []any{"Manager", "Helper", "Utility"},
				},
			},
			"stateless_class": {
				Options: map[string]any{"min_methods": 2},
			},
			"magic_numbers": {
				Options: map[string]any{"max_small_integer": 10},
			},
			"lbyl": {
				Options: map[string]any{
					"dict_key":          true,
					"hasattr":           true,
					"isinstance":        false,
					"file_exists":       true,
					"len_check":         true,
					"none_check":        false,
					"string_validation": true,
					"division_check":    true,
				},
			},
			"file_header": {
				Options: map[string]any{"enforce_atemporal": true},
			},
			"file_placement": {
				Options: map[string]any{},
			},
		},
	}
}

// DRYConfig is the resolved, typed view of the dry rule section used by
// dry/engine.go, overlaying any per-language subsection per §4.4's
// "per-language vs global min_occurrences" resolution (Open Question:
// per-language wins).
type DRYConfig struct {
	Enabled                  bool
	MinDuplicateLines        int
	MinDuplicateTokens       int
	CacheEnabled             bool
	CachePath                string
	CacheMaxAgeDays          int
	MinOccurrences           int
	DetectDuplicateConstants bool
	MinConstantOccurrences   int
	IgnorePatterns           []string
}

// ResolveDRY builds a DRYConfig for a language from cfg's dry section.
func ResolveDRY(cfg *models.Config, lang models.Language) DRYConfig {
	section := cfg.Rules["dry"]
	resolved := section.ForLanguage(lang)
	return DRYConfig{
		Enabled:                  resolved.IsEnabled(false),
		MinDuplicateLines:        resolved.IntOption("min_duplicate_lines", 3),
		MinDuplicateTokens:       resolved.IntOption("min_duplicate_tokens", 30),
		CacheEnabled:             resolved.BoolOption("cache_enabled", true),
		CachePath:                stringOption(resolved, "cache_path", ".thailint-cache/dry.db"),
		CacheMaxAgeDays:          resolved.IntOption("cache_max_age_days", 30),
		MinOccurrences:           resolved.IntOption("min_occurrences", 2),
		DetectDuplicateConstants: resolved.BoolOption("detect_duplicate_constants", true),
		MinConstantOccurrences:   resolved.IntOption("min_constant_occurrences", 2),
		IgnorePatterns:           resolved.StringSliceOption("ignore_patterns", []string{"tests/", "__init__.py"}),
	}
}

func stringOption(s models.RuleSection, key, def string) string {
	if v, ok := s.Options[key].(string); ok {
		return v
	}
	return def
}
