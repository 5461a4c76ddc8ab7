package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func sampleViolations() []models.Violation {
	return []models.Violation{
		{RuleID: "nesting.excessive-depth", FilePath: "a.py", Line: 3, Column: 4, Message: "too deep", Severity: models.SeverityWarning},
		{RuleID: "srp.violation", FilePath: "a.py", Line: 10, Column: 0, Message: "too many methods", Severity: models.SeverityWarning},
	}
}

func TestWrite_TextFormatNoViolations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, nil, "dev"))
	require.Contains(t, buf.String(), "no violations found")
}

func TestWrite_TextFormatGroupsByFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleViolations(), "dev"))
	out := buf.String()
	require.Contains(t, out, "a.py")
	require.Contains(t, out, "nesting.excessive-depth")
	require.Contains(t, out, "2 violation(s)")
}

func TestWrite_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleViolations(), "dev"))

	var decoded struct {
		ViolationCount int                 `json:"violation_count"`
		Violations     []models.Violation  `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, 2, decoded.ViolationCount)
	require.Len(t, decoded.Violations, 2)
	require.Equal(t, "nesting.excessive-depth", decoded.Violations[0].RuleID)
}

func TestWrite_SARIFFormatProducesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatSARIF, sampleViolations(), "1.2.3"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "2.1.0", decoded["version"])
	runs, ok := decoded["runs"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)
}

func TestSeverityToSARIFLevel(t *testing.T) {
	require.Equal(t, "error", severityToSARIFLevel(models.SeverityError))
	require.Equal(t, "note", severityToSARIFLevel(models.SeverityInfo))
	require.Equal(t, "warning", severityToSARIFLevel(models.SeverityWarning))
}
