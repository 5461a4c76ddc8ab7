package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func TestFilePlacementRule_DeniesMatchingPattern(t *testing.T) {
	section := map[string]any{
		"directories": map[string]any{
			"src": map[string]any{"deny": []any{`\.tmp$`}},
		},
	}
	ctx := contextForFile("src/scratch.tmp", models.LanguagePython, "", section)
	r := NewFilePlacementRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Equal(t, models.SeverityError, violations[0].Severity)
}

func TestFilePlacementRule_AllowsListedPattern(t *testing.T) {
	section := map[string]any{
		"directories": map[string]any{
			"src": map[string]any{"allow": []any{`\.py$`}},
		},
	}
	ctx := contextForFile("src/main.py", models.LanguagePython, "", section)
	r := NewFilePlacementRule()
	require.Empty(t, r.Check(ctx))
}

func TestFilePlacementRule_FlagsUnlistedPathUnderRestrictedScope(t *testing.T) {
	section := map[string]any{
		"directories": map[string]any{
			"src": map[string]any{"allow": []any{`\.py$`}},
		},
	}
	ctx := contextForFile("src/notes.txt", models.LanguagePython, "", section)
	r := NewFilePlacementRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Equal(t, models.SeverityWarning, violations[0].Severity)
}

func TestFilePlacementRule_LongestPrefixWins(t *testing.T) {
	section := map[string]any{
		"directories": map[string]any{
			"src":          map[string]any{"allow": []any{`\.py$`}},
			"src/generated": map[string]any{"allow": []any{`\.go$`}},
		},
	}
	ctx := contextForFile("src/generated/models.go", models.LanguagePython, "", section)
	r := NewFilePlacementRule()
	require.Empty(t, r.Check(ctx))
}

func TestFilePlacementRule_ObjectFormDenyIncludesReasonInMessage(t *testing.T) {
	section := map[string]any{
		"directories": map[string]any{
			"src": map[string]any{"deny": []any{
				map[string]any{"pattern": `\.tmp$`, "reason": "scratch files don't belong in src/"},
			}},
		},
	}
	ctx := contextForFile("src/scratch.tmp", models.LanguagePython, "", section)
	r := NewFilePlacementRule()
	violations := r.Check(ctx)
	require.Len(t, violations, 1)
	require.Equal(t, models.SeverityError, violations[0].Severity)
	require.Contains(t, violations[0].Message, "scratch files don't belong in src/")
}

func TestFilePlacementRule_NoScopesIsClean(t *testing.T) {
	ctx := contextForFile("anywhere/file.py", models.LanguagePython, "", nil)
	r := NewFilePlacementRule()
	require.Empty(t, r.Check(ctx))
}
