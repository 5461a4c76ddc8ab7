// Package dry implements the DRY (duplicate code) engine: tokenization,
// rolling-hash windowing, cross-file aggregation, and the duplicate-constant
// fuzzy-matching subsystem (C6, §4.6). Grounded on
// original_source/src/linters/dry/file_analyzer.go's analyze-or-load-from-cache
// shape; tokenization rules are original to this reimplementation, following
// §4.6's normalization contract precisely.
package dry

import (
	"regexp"
	"strings"

	"github.com/thai-lint/thailint-go/models"
)

// NormalizedLine is one line surviving tokenization, paired with its
// original 1-indexed line number so windows can report accurate ranges.
type NormalizedLine struct {
	Text string
	Line int
}

var (
	pyTripleQuote   = regexp.MustCompile(`^(?:[rRbBuU]{0,2})("""|''')`)
	pyImport        = regexp.MustCompile(`^\s*(import\s|from\s+\S+\s+import\b)`)
	tsImport        = regexp.MustCompile(`^\s*(import\s|export\s+.*\bfrom\b)`)
	blockCommentEnd = "*/"
)

// Tokenize normalizes source per §4.6: strips comments, blank lines,
// leading/trailing whitespace, docstrings, and import statements, for the
// given language. Identifier spellings are preserved verbatim.
func Tokenize(source string, lang models.Language) []NormalizedLine {
	switch lang {
	case models.LanguagePython:
		return tokenizePython(source)
	case models.LanguageTypeScript, models.LanguageJavaScript:
		return tokenizeCFamily(source)
	case models.LanguageBash:
		return tokenizeBash(source)
	default:
		return tokenizeGeneric(source)
	}
}

func tokenizePython(source string) []NormalizedLine {
	lines := splitLines(source)
	var out []NormalizedLine
	inDocstring := false
	var docstringQuote string
	for i, raw := range lines {
		lineNo := i + 1
		line := raw
		if inDocstring {
			if strings.Contains(line, docstringQuote) {
				inDocstring = false
			}
			continue
		}
		if m := pyTripleQuote.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			quote := m[1]
			trimmed := strings.TrimSpace(line)
			rest := trimmed[strings.Index(trimmed, quote)+3:]
			if !strings.Contains(rest, quote) {
				inDocstring = true
				docstringQuote = quote
			}
			continue
		}
		line = stripLineComment(line, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if pyImport.MatchString(raw) {
			continue
		}
		out = append(out, NormalizedLine{Text: line, Line: lineNo})
	}
	return out
}

func tokenizeCFamily(source string) []NormalizedLine {
	lines := splitLines(source)
	var out []NormalizedLine
	inBlockComment := false
	inJSDoc := false
	for i, raw := range lines {
		lineNo := i + 1
		line := raw
		if inBlockComment || inJSDoc {
			if strings.Contains(line, blockCommentEnd) {
				inBlockComment = false
				inJSDoc = false
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "/**") {
			if !strings.Contains(trimmed, blockCommentEnd) {
				inJSDoc = true
			}
			continue
		}
		if strings.HasPrefix(trimmed, "/*") && !strings.Contains(trimmed, blockCommentEnd) {
			inBlockComment = true
			continue
		}
		line = stripBlockCommentsInline(line)
		line = stripLineComment(line, "//")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if tsImport.MatchString(raw) {
			continue
		}
		out = append(out, NormalizedLine{Text: line, Line: lineNo})
	}
	return out
}

func tokenizeBash(source string) []NormalizedLine {
	lines := splitLines(source)
	var out []NormalizedLine
	for i, raw := range lines {
		lineNo := i + 1
		if i == 0 && strings.HasPrefix(raw, "#!") {
			continue
		}
		line := stripLineComment(raw, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, NormalizedLine{Text: line, Line: lineNo})
	}
	return out
}

func tokenizeGeneric(source string) []NormalizedLine {
	lines := splitLines(source)
	var out []NormalizedLine
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		out = append(out, NormalizedLine{Text: line, Line: i + 1})
	}
	return out
}

// stripLineComment removes a trailing "marker ..." from line, respecting
// naive string-literal boundaries (quotes) so "a # not a comment" inside a
// string isn't truncated mid-literal for the common single-quote/double-quote
// case.
func stripLineComment(line, marker string) string {
	inSingle, inDouble := false, false
	for i := 0; i+len(marker) <= len(line); i++ {
		switch line[i] {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		}
		if !inSingle && !inDouble && line[i:i+len(marker)] == marker {
			return line[:i]
		}
	}
	return line
}

func stripBlockCommentsInline(line string) string {
	for {
		start := strings.Index(line, "/*")
		if start == -1 {
			return line
		}
		end := strings.Index(line[start:], blockCommentEnd)
		if end == -1 {
			return line[:start]
		}
		line = line[:start] + line[start+end+2:]
	}
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(source, "\n")
}
