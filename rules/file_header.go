package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/models"
)

var atemporalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcurrently\b`),
	regexp.MustCompile(`(?i)\brecently\b`),
	regexp.MustCompile(`(?i)\bfor now\b`),
	regexp.MustCompile(`(?i)\bnew(ly)?\s+(added|implemented|created)\b`),
	regexp.MustCompile(`(?i)\bTODO\(\d{4}`),
}

// FileHeaderRule implements file_header (§4.8): every source file must
// carry a leading header comment (or, for Markdown, a frontmatter block;
// for CSS, a "/** ... */" block) naming a fixed set of required fields, and
// its wording must avoid language that dates the comment itself ("currently",
// "recently", "for now").
type FileHeaderRule struct{}

func NewFileHeaderRule() *FileHeaderRule { return &FileHeaderRule{} }

func (r *FileHeaderRule) RuleID() string      { return "file_header.missing-or-stale" }
func (r *FileHeaderRule) RuleName() string    { return "File header" }
func (r *FileHeaderRule) Description() string { return "Requires a leading header comment with required fields and atemporal wording." }
func (r *FileHeaderRule) Languages() []models.Language { return allLanguages }

func (r *FileHeaderRule) Check(ctx *models.LintContext) []models.Violation {
	section := ctx.RuleConfig("file_header")
	required := strSliceOr(section, "required_fields", []string{"Purpose"})
	enforceAtemporal := boolOr(section, "enforce_atemporal", true)

	fields, raw, ok := extractHeader(ctx)
	if !ok {
		return []models.Violation{{
			RuleID:   r.RuleID(),
			FilePath: ctx.FilePath,
			Line:     1,
			Column:   0,
			Message:  "missing required file header",
			Severity: models.SeverityWarning,
		}}
	}

	var violations []models.Violation
	for _, field := range required {
		if _, present := fields[field]; !present {
			violations = append(violations, models.Violation{
				RuleID:   r.RuleID(),
				FilePath: ctx.FilePath,
				Line:     1,
				Column:   0,
				Message:  fmt.Sprintf("file header is missing required field %q", field),
				Severity: models.SeverityWarning,
			})
		}
	}
	if enforceAtemporal {
		for _, re := range atemporalPatterns {
			if loc := re.FindStringIndex(raw); loc != nil {
				violations = append(violations, models.Violation{
					RuleID:   r.RuleID(),
					FilePath: ctx.FilePath,
					Line:     1,
					Column:   0,
					Message:  "file header uses time-relative language (\"" + strings.TrimSpace(raw[loc[0]:loc[1]]) + "\"); prefer atemporal wording",
					Severity: models.SeverityInfo,
				})
			}
		}
	}
	return violations
}

// extractHeader dispatches by language: Markdown uses frontmatter, CSS
// uses its "/** ... */" block, Python uses its module docstring, and
// TypeScript/JavaScript use a leading "/** ... */" block when the file
// starts with one. Otherwise (Bash, or TypeScript/JavaScript without that
// block) the header is the leading run of line comments ("#", or "//" for
// TypeScript/JavaScript) within the first 10 lines.
func extractHeader(ctx *models.LintContext) (fields map[string]string, raw string, ok bool) {
	switch ctx.Language {
	case models.LanguageMarkdown:
		fields = analysis.FrontmatterFields(ctx.FileContent)
		if fields == nil {
			return nil, "", false
		}
		return fields, ctx.FileContent, true
	case models.LanguageCSS:
		block, found := analysis.HeaderComment(ctx.FileContent)
		if !found {
			return nil, "", false
		}
		return analysis.HeaderFields(block), block, true
	case models.LanguagePython:
		return extractPythonDocstring(ctx.FileContent)
	case models.LanguageTypeScript, models.LanguageJavaScript:
		if block, found := analysis.HeaderComment(ctx.FileContent); found {
			return analysis.HeaderFields(block), block, true
		}
		return extractCommentHeader(ctx.FileContent, ctx.Language)
	default:
		return extractCommentHeader(ctx.FileContent, ctx.Language)
	}
}

// pyDocstringOpen recognizes a leading triple-quoted string, mirroring
// dry/tokenizer.go's pyTripleQuote.
var pyDocstringOpen = regexp.MustCompile(`^(?:[rRbBuU]{0,2})("""|''')`)

// extractPythonDocstring extracts the module docstring per §4.8: the
// first non-blank, non-comment statement of a Python file, if it is a
// triple-quoted string literal. Leading blank lines and "#" comments
// (shebang, encoding declarations) are skipped first.
func extractPythonDocstring(content string) (map[string]string, string, bool) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		break
	}
	if i >= len(lines) {
		return nil, "", false
	}
	first := strings.TrimSpace(lines[i])
	m := pyDocstringOpen.FindStringSubmatch(first)
	if m == nil {
		return nil, "", false
	}
	quote := m[1]
	rest := first[strings.Index(first, quote)+3:]

	var bodyLines []string
	if idx := strings.Index(rest, quote); idx != -1 {
		bodyLines = append(bodyLines, rest[:idx])
	} else {
		bodyLines = append(bodyLines, rest)
		closed := false
		for i++; i < len(lines); i++ {
			if idx := strings.Index(lines[i], quote); idx != -1 {
				bodyLines = append(bodyLines, lines[i][:idx])
				closed = true
				break
			}
			bodyLines = append(bodyLines, lines[i])
		}
		if !closed {
			return nil, "", false
		}
	}

	raw := strings.Join(bodyLines, "\n")
	fields := map[string]string{}
	for _, bl := range bodyLines {
		key, value, ok := strings.Cut(strings.TrimSpace(bl), ":")
		if ok {
			fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return fields, raw, true
}

func extractCommentHeader(content string, lang models.Language) (map[string]string, string, bool) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lineMarker := "#"
	if lang == models.LanguageTypeScript || lang == models.LanguageJavaScript {
		lineMarker = "//"
	}

	var headerLines []string
	limit := 10
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			if len(headerLines) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, lineMarker) {
			headerLines = append(headerLines, strings.TrimSpace(strings.TrimPrefix(trimmed, lineMarker)))
			continue
		}
		if strings.HasPrefix(trimmed, "/*") {
			continue
		}
		break
	}
	if len(headerLines) == 0 {
		return nil, "", false
	}
	raw := strings.Join(headerLines, "\n")
	fields := map[string]string{}
	for _, hl := range headerLines {
		key, value, ok := strings.Cut(hl, ":")
		if ok {
			fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return fields, raw, true
}
