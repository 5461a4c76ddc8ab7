// Package ignore implements the Linter's 5-level suppression system (§4.2):
// repository, directory, file, block/next-line, and line. Grounded on
// original_source/src/linter_config/ignore.py for repo/file/line/next-line
// matching semantics, and on the teacher's filters/parser.go for the
// directory-walk shape that loads .thailintignore and .lintconfig files.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/thai-lint/thailint-go/models"
)

const (
	markerPrimary = "thailint:"
	markerLegacy  = "design-lint:" // accepted everywhere markerPrimary is, per original_source
	noqaMarker    = "noqa"
)

var bracketRe = regexp.MustCompile(`\[([^\]]*)\]`)

// Parser answers "is this (file, line, rule) suppressed?" for one project
// root. It is built once per orchestrator run and is safe to reuse across
// files within that run; it does not itself cache per-file directive scans
// (file content is already in memory via LintContext, so re-scanning is
// cheap and keeps the parser free of per-file state).
type Parser struct {
	projectRoot  string
	repoPatterns []models.GlobPattern
	dirIgnores   map[string][]string // directory (relative, slash-separated) -> rule patterns
}

// NewParser loads .thailintignore from projectRoot (absent file -> no repo
// patterns, never an error) and walks the tree once collecting .lintconfig
// directory-level ignores.
func NewParser(projectRoot string) *Parser {
	p := &Parser{
		projectRoot: projectRoot,
		dirIgnores:  map[string][]string{},
	}
	p.repoPatterns = loadRepoIgnores(projectRoot)
	p.loadDirIgnores(projectRoot)
	return p
}

func loadRepoIgnores(projectRoot string) []models.GlobPattern {
	data, err := os.ReadFile(filepath.Join(projectRoot, ".thailintignore"))
	if err != nil {
		return nil
	}
	var patterns []models.GlobPattern
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp := models.GlobPattern{SourceFile: ".thailintignore", SourceLine: lineNo}
		if strings.HasPrefix(line, "!") {
			gp.Negated = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			gp.DirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		gp.Pattern = line
		patterns = append(patterns, gp)
	}
	return patterns
}

// loadDirIgnores walks the project tree looking for .lintconfig files
// holding "ignore: <rule-id>" lines, per §4.2 level 2.
func (p *Parser) loadDirIgnores(root string) {
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if filepath.Base(path) != ".lintconfig" {
			return nil
		}
		rel, rerr := filepath.Rel(root, filepath.Dir(path))
		if rerr != nil {
			rel = "."
		}
		rel = filepath.ToSlash(rel)
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "ignore:") {
				continue
			}
			rule := strings.TrimSpace(strings.TrimPrefix(line, "ignore:"))
			if rule != "" {
				p.dirIgnores[rel] = append(p.dirIgnores[rel], rule)
			}
		}
		return nil
	})
}

// IsIgnored reports whether relPath (project-relative, slash-separated)
// matches a repository-level pattern (§4.2 level 1).
func (p *Parser) IsIgnored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	ignored := false
	for _, pat := range p.repoPatterns {
		if matchesGlob(relPath, pat) {
			ignored = !pat.Negated
		}
	}
	return ignored
}

func matchesGlob(path string, pat models.GlobPattern) bool {
	if pat.DirOnly {
		for _, part := range strings.Split(path, "/") {
			if part == pat.Pattern {
				return true
			}
		}
		if ok, _ := doublestar.Match(pat.Pattern+"*", path); ok {
			return true
		}
	}
	if ok, _ := doublestar.Match(pat.Pattern, path); ok {
		return true
	}
	if ok, _ := doublestar.Match("**/"+pat.Pattern, path); ok {
		return true
	}
	return false
}

// dirIgnored reports whether ruleID is disabled for relPath by a
// .lintconfig found at or above its directory (§4.2 level 2).
func (p *Parser) dirIgnored(relPath, ruleID string) bool {
	dir := filepath.ToSlash(filepath.Dir(relPath))
	for {
		for _, pattern := range p.dirIgnores[dir] {
			if models.MatchesRulePattern(pattern, ruleID) {
				return true
			}
		}
		if dir == "." || dir == "/" || dir == "" {
			return false
		}
		next := filepath.ToSlash(filepath.Dir(dir))
		if next == dir {
			return false
		}
		dir = next
	}
}

// HasFileIgnore scans the first 10 lines of content for a file-level
// ignore directive (§4.2 level 3). An empty ruleID means "is anything
// suppressed at the file level" (general ignore-file check).
func HasFileIgnore(content string, ruleID string) bool {
	lines := splitLines(content)
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		if !containsMarker(line, "ignore-file") {
			continue
		}
		if ruleID == "" {
			if !strings.Contains(line, "ignore-file[") {
				return true
			}
			continue
		}
		if rules, ok := extractBracket(line, "ignore-file"); ok {
			if models.AnyPatternMatches(rules, ruleID) {
				return true
			}
		} else if !strings.Contains(line, "ignore-file[") {
			return true
		}
	}
	return false
}

// blockRanges returns the inclusive [start,end] line ranges delimited by
// "# thailint: ignore-start" / "# thailint: ignore-end" pairs.
func blockRanges(content string) [][2]int {
	lines := splitLines(content)
	var ranges [][2]int
	start := -1
	for i, line := range lines {
		lineNo := i + 1
		if containsMarker(line, "ignore-start") {
			start = lineNo
		} else if containsMarker(line, "ignore-end") && start != -1 {
			ranges = append(ranges, [2]int{start, lineNo})
			start = -1
		}
	}
	return ranges
}

// HasNextLineIgnore reports whether the line preceding lineNum (1-indexed)
// carries an ignore-next-line directive applicable to ruleID (§4.2 level 4).
func HasNextLineIgnore(content string, lineNum int, ruleID string) bool {
	lines := splitLines(content)
	idx := lineNum - 2 // previous line, 0-indexed
	if idx < 0 || idx >= len(lines) {
		return false
	}
	prev := lines[idx]
	if !containsMarker(prev, "ignore-next-line") {
		return false
	}
	if rules, ok := extractBracket(prev, "ignore-next-line"); ok {
		return models.AnyPatternMatches(rules, ruleID)
	}
	return true
}

// HasLineIgnore reports whether the given physical line carries a trailing
// ignore (or noqa) comment applicable to ruleID (§4.2 level 5).
func HasLineIgnore(line string, ruleID string) bool {
	if containsMarker(line, "ignore") {
		if rules, ok := extractBracket(line, "ignore"); ok {
			return models.AnyPatternMatches(rules, ruleID)
		}
		return !strings.Contains(line, "ignore[")
	}
	if idx := strings.Index(strings.ToLower(line), "# "+noqaMarker); idx != -1 {
		rest := line[idx:]
		if colon := strings.Index(rest, ":"); colon != -1 {
			rule := strings.TrimSpace(rest[colon+1:])
			return models.MatchesRulePattern(rule, ruleID) || rule == ruleID
		}
		return true
	}
	return false
}

// ShouldIgnoreViolation is the unified entry point combining all 5 levels
// (§4.2). relPath is the violation's project-relative file path.
func (p *Parser) ShouldIgnoreViolation(v models.Violation, relPath, content string) bool {
	if p.IsIgnored(relPath) {
		return true
	}
	if HasFileIgnore(content, v.RuleID) {
		return true
	}
	if p.dirIgnored(relPath, v.RuleID) {
		return true
	}
	for _, r := range blockRanges(content) {
		if v.Line >= r[0] && v.Line <= r[1] {
			return true
		}
	}
	if v.Line > 1 && HasNextLineIgnore(content, v.Line, v.RuleID) {
		return true
	}
	lines := splitLines(content)
	if v.Line > 0 && v.Line <= len(lines) {
		if HasLineIgnore(lines[v.Line-1], v.RuleID) {
			return true
		}
	}
	return false
}

func containsMarker(line, suffix string) bool {
	return strings.Contains(line, markerPrimary+" "+suffix) ||
		strings.Contains(line, markerPrimary+suffix) ||
		strings.Contains(line, markerLegacy+" "+suffix) ||
		strings.Contains(line, markerLegacy+suffix)
}

// extractBracket pulls the comma-separated rule list out of
// "<directive>[a,b,c]"; ok is false when the directive has no bracket at
// all, or the bracket is malformed (unclosed), in which case callers fall
// back to treating it as a general (non-rule-scoped) directive or no match,
// per §4.2's "never raise" contract.
func extractBracket(line, directive string) ([]string, bool) {
	idx := strings.Index(line, directive+"[")
	if idx == -1 {
		return nil, false
	}
	rest := line[idx+len(directive):]
	m := bracketRe.FindStringSubmatch(rest)
	if m == nil {
		return nil, false
	}
	parts := strings.Split(m[1], ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}
