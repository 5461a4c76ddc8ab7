package models

// Config is the top-level shape of .thailint.yaml / .thailint.json (§4.4).
// Keys under Rules are rule category names (dry, nesting, srp, ...); the
// value is a loosely-typed map so per-rule Resolve methods can overlay
// language-specific subsections without the Config package knowing every
// rule's option set.
type Config struct {
	Version string                 `yaml:"version" json:"version"`
	Rules   map[string]RuleSection `yaml:"-" json:"-"`

	// Raw holds the as-parsed YAML/JSON tree (map[string]any after
	// normalization) so rule packages can pull their own typed config out
	// via Resolve helpers without Config needing to know every rule's
	// schema up front.
	Raw map[string]any `yaml:"-" json:"-"`
}

// RuleSection is one top-level rule category's raw options, plus optional
// per-language overlays applied on top of the category's common options.
type RuleSection struct {
	Enabled   *bool                  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Ignore    []string               `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Options   map[string]any         `yaml:"-" json:"-"`
	Languages map[string]RuleSection `yaml:"-" json:"-"`
}

// IsEnabled reports a section's enabled flag, defaulting to def when unset.
func (s RuleSection) IsEnabled(def bool) bool {
	if s.Enabled == nil {
		return def
	}
	return *s.Enabled
}

// ForLanguage overlays config[rule][language] on top of config[rule], per
// §4.4's language-specific override rule.
func (s RuleSection) ForLanguage(lang Language) RuleSection {
	overlay, ok := s.Languages[string(lang)]
	if !ok {
		return s
	}
	merged := s
	merged.Options = mergeOptions(s.Options, overlay.Options)
	if overlay.Enabled != nil {
		merged.Enabled = overlay.Enabled
	}
	if len(overlay.Ignore) > 0 {
		merged.Ignore = overlay.Ignore
	}
	return merged
}

func mergeOptions(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// IntOption reads an integer option, falling back to def if unset or of the
// wrong type (the YAML/JSON decoder may hand back int, int64, or float64).
func (s RuleSection) IntOption(key string, def int) int {
	v, ok := s.Options[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// BoolOption reads a boolean option, falling back to def if unset.
func (s RuleSection) BoolOption(key string, def bool) bool {
	if v, ok := s.Options[key].(bool); ok {
		return v
	}
	return def
}

// StringSliceOption reads a []string option, falling back to def if unset.
func (s RuleSection) StringSliceOption(key string, def []string) []string {
	v, ok := s.Options[key]
	if !ok {
		return def
	}
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return def
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}
