// Package output implements the three result formats the Linter can
// produce (§6): a human-readable tree view, JSON, and SARIF v2.1.0. It
// keeps the teacher's text/JSON dual-format dispatch shape from
// output/formatter.go, coloring with fatih/color instead of lipgloss
// (the teacher's table styling used lipgloss for a dependency-graph report;
// this module's plain line-per-violation shape fits color.Color better),
// and adds a SARIF writer backed by go-sarif/v3.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/thai-lint/thailint-go/models"
)

// Format is one of the three supported output shapes.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// Write renders violations to w in the requested format. toolVersion is
// embedded in the SARIF tool descriptor.
func Write(w io.Writer, format Format, violations []models.Violation, toolVersion string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, violations)
	case FormatSARIF:
		return writeSARIF(w, violations, toolVersion)
	default:
		return writeText(w, violations)
	}
}

func writeJSON(w io.Writer, violations []models.Violation) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]any{
		"violation_count": len(violations),
		"violations":      violations,
	})
}

// writeText groups violations by file and prints a short tree, matching
// the teacher's outputTree grouping shape but keyed on rule_id/severity
// instead of architecture rule strings.
func writeText(w io.Writer, violations []models.Violation) error {
	if len(violations) == 0 {
		fmt.Fprintln(w, color.GreenString("no violations found"))
		return nil
	}

	byFile := map[string][]models.Violation{}
	for _, v := range violations {
		byFile[v.FilePath] = append(byFile[v.FilePath], v)
	}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	fileStyle := color.New(color.Bold, color.FgCyan)
	ruleStyle := color.New(color.FgHiBlack)
	severityColor := func(s models.Severity) *color.Color {
		switch s {
		case models.SeverityError:
			return color.New(color.FgRed)
		case models.SeverityInfo:
			return color.New(color.FgBlue)
		default:
			return color.New(color.FgYellow)
		}
	}

	for _, file := range files {
		vs := byFile[file]
		fmt.Fprintf(w, "%s (%d)\n", fileStyle.Sprint(file), len(vs))
		for _, v := range vs {
			fmt.Fprintf(w, "  %d:%d  %s  %s  %s\n",
				v.Line, v.Column,
				severityColor(v.Severity).Sprint(v.Severity),
				ruleStyle.Sprint(v.RuleID),
				v.Message)
		}
	}
	fmt.Fprintf(w, "\n%d violation(s) across %d file(s)\n", len(violations), len(files))
	return nil
}

// writeSARIF renders violations as a single-run SARIF v2.1.0 log using
// go-sarif/v3's builder API.
func writeSARIF(w io.Writer, violations []models.Violation, toolVersion string) error {
	report := sarif.NewReport()
	run := sarif.NewRunWithInformationURI("thailint", "https://github.com/thai-lint/thailint-go")
	if toolVersion != "" {
		run.Tool.Driver.WithVersion(toolVersion)
	}

	rulesSeen := map[string]bool{}
	for _, v := range violations {
		if !rulesSeen[v.RuleID] {
			rulesSeen[v.RuleID] = true
			run.AddRule(v.RuleID).WithShortDescription(sarif.NewMultiformatMessageString().WithText(v.RuleID))
		}

		result := sarif.NewRuleResult(v.RuleID).
			WithMessage(sarif.NewTextMessage(v.Message)).
			WithLevel(severityToSARIFLevel(v.Severity))

		region := sarif.NewRegion().WithStartLine(v.Line)
		if v.Column > 0 {
			region.WithStartColumn(v.Column + 1) // SARIF columns are 1-based
		}
		if v.LineEnd > 0 {
			region.WithEndLine(v.LineEnd)
		}
		if v.ColumnEnd > 0 {
			region.WithEndColumn(v.ColumnEnd + 1)
		}

		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(v.FilePath)).
			WithRegion(region)
		result.WithLocations([]*sarif.Location{sarif.NewLocationWithPhysicalLocation(physicalLocation)})

		run.AddResult(result)
	}
	report.AddRun(run)
	return report.PrettyWrite(w)
}

func severityToSARIFLevel(s models.Severity) string {
	switch s {
	case models.SeverityError:
		return "error"
	case models.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
