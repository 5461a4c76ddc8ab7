package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViolation_Less_OrdersByLineThenColumnThenRuleID(t *testing.T) {
	a := Violation{Line: 1, Column: 0, RuleID: "b"}
	b := Violation{Line: 1, Column: 0, RuleID: "a"}
	c := Violation{Line: 2, Column: 0, RuleID: "a"}
	require.True(t, b.Less(a))
	require.False(t, a.Less(b))
	require.True(t, a.Less(c))
}

func TestSortViolations_StableOrdering(t *testing.T) {
	vs := []Violation{
		{Line: 2, Column: 0, RuleID: "z"},
		{Line: 1, Column: 5, RuleID: "a"},
		{Line: 1, Column: 0, RuleID: "b"},
	}
	SortViolations(vs)
	require.Equal(t, "b", vs[0].RuleID)
	require.Equal(t, "a", vs[1].RuleID)
	require.Equal(t, "z", vs[2].RuleID)
}

func TestNewViolation_DefaultsToWarningSeverity(t *testing.T) {
	v := NewViolation("srp.violation", "a.py", 3, 1, "too many methods")
	require.Equal(t, SeverityWarning, v.Severity)
	require.Equal(t, "srp.violation", v.RuleID)
}
