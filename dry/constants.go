package dry

import (
	"regexp"
	"sort"
	"strings"

	"github.com/thai-lint/thailint-go/config"
	"github.com/thai-lint/thailint-go/models"
)

// antonyms is the closed list from original_source's
// test_duplicate_constants.py: two fuzzy-matching names are NOT considered
// duplicates when their differing tokens are one of these pairs.
var antonyms = map[string]string{
	"MIN": "MAX", "MAX": "MIN",
	"START": "END", "END": "START",
	"FIRST": "LAST", "LAST": "FIRST",
	"OPEN": "CLOSE", "CLOSE": "OPEN",
	"BEGIN": "END", "ENABLE": "DISABLE", "DISABLE": "ENABLE",
	"SHOW": "HIDE", "HIDE": "SHOW",
}

// typeParamFilter excludes single-letter type-parameter names from the
// duplicate-constant check (e.g. generic T, K, V).
var typeParamFilter = map[string]bool{"T": true, "P": true, "K": true, "V": true, "E": true, "R": true}

var (
	pyConstantRe = regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*(?::\s*[\w\[\]., ]+)?=\s*(.+?)\s*$`)
	tsConstantRe = regexp.MustCompile(`^(?:export\s+)?const\s+([A-Z][A-Z0-9_]*)\s*(?::\s*[\w<>\[\]., ]+)?=\s*(.+?);?\s*$`)
)

// extractConstants finds module/file-level uppercase constant assignments
// per §4.6's duplicate-constants contract: Python assignments at column 0
// (not indented, so not class/function-local); TypeScript "const" (not
// let/var) at column 0.
func (e *Engine) extractConstants(ctx *models.LintContext, langCfg config.DRYConfig) {
	if !langCfg.DetectDuplicateConstants {
		return
	}
	lines := strings.Split(strings.ReplaceAll(ctx.FileContent, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		if raw == "" || raw[0] == ' ' || raw[0] == '\t' {
			continue // indented: class/function-local, not module/file-level
		}
		var m []string
		switch ctx.Language {
		case models.LanguagePython:
			m = pyConstantRe.FindStringSubmatch(raw)
		case models.LanguageTypeScript, models.LanguageJavaScript:
			m = tsConstantRe.FindStringSubmatch(raw)
		default:
			continue
		}
		if m == nil {
			continue
		}
		name := m[1]
		if len(name) < 2 || strings.HasPrefix(name, "_") || typeParamFilter[name] {
			continue
		}
		e.constants = append(e.constants, models.ConstantDefinition{
			Name: name, Value: m[2], FilePath: ctx.FilePath, Line: i + 1,
		})
	}
}

// finalizeConstants groups constant definitions into exact and fuzzy
// duplicate clusters and emits one violation per occurrence (§4.6).
func (e *Engine) finalizeConstants() []models.Violation {
	if len(e.constants) == 0 {
		return nil
	}
	minOcc := e.cfgByLang[models.LanguagePython].MinConstantOccurrences
	if minOcc <= 0 {
		minOcc = 2
	}

	byName := map[string][]models.ConstantDefinition{}
	for _, c := range e.constants {
		byName[c.Name] = append(byName[c.Name], c)
	}

	used := map[int]bool{}
	var clusters [][]models.ConstantDefinition

	names := sortedKeys(byName)
	for _, name := range names {
		defs := byName[name]
		if len(defs) >= minOcc {
			clusters = append(clusters, defs)
		}
	}

	for i, a := range e.constants {
		if used[i] {
			continue
		}
		cluster := []models.ConstantDefinition{a}
		markers := []int{i}
		for j := i + 1; j < len(e.constants); j++ {
			if used[j] || e.constants[j].Name == a.Name {
				continue
			}
			b := e.constants[j]
			if fuzzyMatch(a.Name, b.Name) {
				cluster = append(cluster, b)
				markers = append(markers, j)
			}
		}
		if len(cluster) >= minOcc {
			for _, idx := range markers {
				used[idx] = true
			}
			clusters = append(clusters, cluster)
		}
	}

	var violations []models.Violation
	for _, cluster := range clusters {
		for i, def := range cluster {
			violations = append(violations, models.Violation{
				RuleID:   RuleIDDuplicateConstant,
				FilePath: def.FilePath,
				Line:     def.Line,
				Message:  constantMessage(def, cluster, i),
				Severity: models.SeverityWarning,
			})
		}
	}
	return violations
}

func constantMessage(self models.ConstantDefinition, cluster []models.ConstantDefinition, selfIdx int) string {
	var parts []string
	for i, c := range cluster {
		if i == selfIdx {
			continue
		}
		parts = append(parts, c.FilePath+":"+c.Name+"="+c.Value)
	}
	return "duplicates constant " + self.Name + "=" + self.Value + " also defined as " + strings.Join(parts, ", ")
}

// fuzzyMatch implements §4.6's fuzzy duplicate-constant rule: names match
// if both have ≥2 underscore-delimited words and either their word-sets
// are equal, or their edit distance is ≤2 — unless the differing tokens
// are a known antonym pair.
func fuzzyMatch(a, b string) bool {
	wordsA := strings.Split(a, "_")
	wordsB := strings.Split(b, "_")
	if len(wordsA) < 2 || len(wordsB) < 2 {
		return false
	}
	if isAntonymPair(wordsA, wordsB) {
		return false
	}
	if sameWordSet(wordsA, wordsB) {
		return true
	}
	return levenshtein(a, b) <= 2
}

func sameWordSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	setA := map[string]int{}
	for _, w := range a {
		setA[w]++
	}
	setB := map[string]int{}
	for _, w := range b {
		setB[w]++
	}
	if len(setA) != len(setB) {
		return false
	}
	for w, n := range setA {
		if setB[w] != n {
			return false
		}
	}
	return true
}

func isAntonymPair(wordsA, wordsB []string) bool {
	diffA := difference(wordsA, wordsB)
	diffB := difference(wordsB, wordsA)
	for _, da := range diffA {
		for _, db := range diffB {
			if antonyms[da] == db || antonyms[db] == da {
				return true
			}
		}
	}
	return false
}

func difference(a, b []string) []string {
	inB := map[string]bool{}
	for _, w := range b {
		inB[w] = true
	}
	var out []string
	for _, w := range a {
		if !inB[w] {
			out = append(out, w)
		}
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func sortedKeys(m map[string][]models.ConstantDefinition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
