package dry

import (
	"fmt"
	"hash/fnv"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	commonsLogger "github.com/flanksource/commons/logger"

	"github.com/thai-lint/thailint-go/config"
	"github.com/thai-lint/thailint-go/internal/cache"
	"github.com/thai-lint/thailint-go/models"
)

const (
	RuleIDDuplicateCode     = "dry.duplicate-code"
	RuleIDDuplicateConstant = "dry.duplicate-constant"
)

// Engine accumulates CodeBlocks across a run and aggregates them into
// duplicate-code violations in Finalize, per §4.6. It also owns the
// duplicate-constants subsystem (constants.go). A single Engine instance
// is reset once per orchestrator run (§3 Lifecycles).
type Engine struct {
	db         *cache.DB // nil when cache is disabled or failed to open
	configHash string

	blocksByHash map[uint64][]models.CodeBlock
	existingFile map[string]bool
	constants    []models.ConstantDefinition

	cfgByLang map[models.Language]config.DRYConfig
}

// NewEngine opens (or skips) the SQLite cache per cfg. Any open failure
// degrades to in-memory mode per §4.5. NewEngine returns no error, so its
// result does not tell the caller whether the cache is in use.
func NewEngine(cfg *models.Config) *Engine {
	e := &Engine{
		blocksByHash: map[uint64][]models.CodeBlock{},
		existingFile: map[string]bool{},
		cfgByLang:    map[models.Language]config.DRYConfig{},
	}
	pythonCfg := config.ResolveDRY(cfg, models.LanguagePython)
	e.configHash = computeConfigHash(pythonCfg)

	if pythonCfg.CacheEnabled {
		db, err := cache.Open(pythonCfg.CachePath)
		if err == nil {
			e.db = db
			e.evictStale(pythonCfg.CacheMaxAgeDays)
		}
		// A failed Open silently leaves e.db nil: in-memory fallback (§4.5).
	}
	for _, lang := range []models.Language{
		models.LanguagePython, models.LanguageTypeScript, models.LanguageJavaScript,
		models.LanguageBash, models.LanguageMarkdown, models.LanguageCSS,
	} {
		e.cfgByLang[lang] = config.ResolveDRY(cfg, lang)
	}
	return e
}

func (e *Engine) evictStale(maxAgeDays int) {
	if e.db == nil || maxAgeDays <= 0 {
		return
	}
	_ = e.db.Evict(time.Duration(maxAgeDays) * 24 * time.Hour)
}

// Close releases the cache handle, if one was opened.
func (e *Engine) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

// Reset clears in-flight aggregation state so the Engine can back a fresh
// run (§3 Lifecycles). The on-disk cache itself is untouched.
func (e *Engine) Reset() {
	e.blocksByHash = map[uint64][]models.CodeBlock{}
	e.existingFile = map[string]bool{}
	e.constants = nil
}

// Analyze processes one file: on a cache hit, loads its CodeBlocks straight
// from the cache and skips tokenization; on a miss, tokenizes, windows, and
// persists (§4.6 "cache hit path"). The blocks feed the in-flight
// aggregation map regardless of their source.
func (e *Engine) Analyze(ctx *models.LintContext) {
	langCfg := e.cfgByLang[ctx.Language]
	if matchesIgnorePattern(ctx.FilePath, langCfg.IgnorePatterns) {
		return
	}
	e.existingFile[ctx.FilePath] = true
	if !langCfg.Enabled {
		return
	}

	info, statErr := os.Stat(resolveDiskPath(ctx.FilePath))
	var modTime int64
	if statErr == nil {
		modTime = info.ModTime().UnixNano()
	}

	if e.db != nil && statErr == nil {
		if record, ok := e.db.Lookup(ctx.FilePath); ok &&
			record.IsFresh(modTime, len(ctx.FileContent), e.configHash) {
			for _, b := range record.Blocks {
				e.addBlock(b)
			}
			e.extractConstants(ctx, langCfg)
			return
		}
	}

	blocks := e.windowFile(ctx, langCfg)
	for _, b := range blocks {
		e.addBlock(b)
	}
	e.extractConstants(ctx, langCfg)

	if e.db != nil && statErr == nil {
		record := models.CacheRecord{
			FilePath:      ctx.FilePath,
			ModTime:       modTime,
			ContentLength: len(ctx.FileContent),
			ConfigHash:    e.configHash,
			Blocks:        blocks,
		}
		if err := e.db.Store(record); err != nil {
			// Degrades silently per §4.5: the run continues in-memory for
			// this file, but the formatted diagnostic is still logged so a
			// permissions/disk/lock problem is visible to the operator.
			commonsLogger.Debugf("dry cache store failed: %v", cache.FormatWriteAccessError(err))
		}
	}
}

func (e *Engine) addBlock(b models.CodeBlock) {
	e.blocksByHash[b.HashValue] = append(e.blocksByHash[b.HashValue], b)
}

// windowFile tokenizes ctx's content and produces one CodeBlock per
// contiguous window of langCfg.MinDuplicateLines normalized lines, skipping
// windows the single-statement detector deems unsafe to report (§4.6).
func (e *Engine) windowFile(ctx *models.LintContext, langCfg config.DRYConfig) []models.CodeBlock {
	normalized := Tokenize(ctx.FileContent, ctx.Language)
	n := langCfg.MinDuplicateLines
	if n <= 0 || len(normalized) < n {
		return nil
	}

	sourceLines := strings.Split(strings.ReplaceAll(ctx.FileContent, "\r\n", "\n"), "\n")
	interfaceRanges := tsInterfaceRanges(ctx)

	var blocks []models.CodeBlock
	seenInFile := map[uint64]bool{}
	for i := 0; i+n <= len(normalized); i++ {
		window := normalized[i : i+n]
		startLine := window[0].Line
		endLine := window[n-1].Line

		if isSingleStatement(ctx, startLine, endLine) {
			continue
		}
		if overlapsAny(startLine, endLine, interfaceRanges) {
			continue
		}

		h := hashWindow(window)
		if seenInFile[h] {
			// Overlapping windows within one file sharing a hash coalesce
			// to one CodeBlock per file per bucket (§4.6 Aggregation).
			continue
		}
		seenInFile[h] = true

		blocks = append(blocks, models.CodeBlock{
			FilePath:  ctx.FilePath,
			StartLine: startLine,
			EndLine:   endLine,
			Snippet:   snippet(sourceLines, startLine, endLine),
			HashValue: h,
		})
	}
	return blocks
}

func hashWindow(window []NormalizedLine) uint64 {
	h := fnv.New64a()
	for _, line := range window {
		_, _ = h.Write([]byte(line.Text))
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

func snippet(sourceLines []string, startLine, endLine int) string {
	if startLine < 1 || endLine > len(sourceLines) || startLine > endLine {
		return ""
	}
	return strings.Join(sourceLines[startLine-1:endLine], "\n")
}

func overlapsAny(start, end int, ranges [][2]int) bool {
	for _, r := range ranges {
		if start <= r[1] && r[0] <= end {
			return true
		}
	}
	return false
}

// Finalize buckets every CodeBlock seen this run by hash and emits one
// violation per block in any bucket with ≥ MinOccurrences blocks, plus the
// duplicate-constant violations (§4.6 Aggregation).
func (e *Engine) Finalize() []models.Violation {
	var violations []models.Violation

	hashes := make([]uint64, 0, len(e.blocksByHash))
	for h := range e.blocksByHash {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	for _, h := range hashes {
		bucket := e.blocksByHash[h]
		fresh := make([]models.CodeBlock, 0, len(bucket))
		for _, b := range bucket {
			if e.existingFile[b.FilePath] {
				fresh = append(fresh, b)
			}
		}
		minOcc := e.minOccurrencesFor(fresh)
		if len(fresh) < minOcc {
			continue
		}
		for i, b := range fresh {
			violations = append(violations, models.Violation{
				RuleID:   RuleIDDuplicateCode,
				FilePath: b.FilePath,
				Line:     b.StartLine,
				Column:   0,
				LineEnd:  b.EndLine,
				Message:  duplicateMessage(b, fresh, i),
				Severity: models.SeverityWarning,
			})
		}
	}

	violations = append(violations, e.finalizeConstants()...)
	return violations
}

func (e *Engine) minOccurrencesFor(blocks []models.CodeBlock) int {
	if len(blocks) == 0 {
		return 2
	}
	lang := classifyByPath(blocks[0].FilePath)
	if cfg, ok := e.cfgByLang[lang]; ok {
		return cfg.MinOccurrences
	}
	return 2
}

func duplicateMessage(b models.CodeBlock, bucket []models.CodeBlock, selfIdx int) string {
	var others []string
	for i, o := range bucket {
		if i == selfIdx {
			continue
		}
		others = append(others, o.FilePath)
	}
	return "duplicate code block also found in " + strings.Join(others, ", ")
}

// resolveDiskPath and classifyByPath are small seams kept separate from the
// rest of the engine so tests can substitute project roots and extension
// tables without reaching into package-private state.
var resolveDiskPath = func(relPath string) string { return relPath }
var classifyByPath = func(path string) models.Language {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".py"):
		return models.LanguagePython
	case strings.HasSuffix(lower, ".ts"), strings.HasSuffix(lower, ".tsx"):
		return models.LanguageTypeScript
	case strings.HasSuffix(lower, ".js"), strings.HasSuffix(lower, ".jsx"):
		return models.LanguageJavaScript
	case strings.HasSuffix(lower, ".sh"):
		return models.LanguageBash
	case strings.HasSuffix(lower, ".md"):
		return models.LanguageMarkdown
	case strings.HasSuffix(lower, ".css"):
		return models.LanguageCSS
	default:
		return models.LanguageOther
	}
}

// matchesIgnorePattern reports whether relPath should be skipped by the DRY
// engine per langCfg.IgnorePatterns (§4.6 "ignore_patterns"): a pattern
// ending in "/" matches any path component equal to it (a directory
// anywhere in the path, e.g. "tests/"); any other pattern matches either
// the file's base name exactly or as a doublestar glob against the full
// path, matching the conventions ignore/ignore.go uses for repo patterns.
func matchesIgnorePattern(relPath string, patterns []string) bool {
	path := strings.ReplaceAll(relPath, "\\", "/")
	base := path
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		base = path[idx+1:]
	}
	for _, pat := range patterns {
		if strings.HasSuffix(pat, "/") {
			seg := strings.TrimSuffix(pat, "/")
			for _, part := range strings.Split(path, "/") {
				if part == seg {
					return true
				}
			}
			continue
		}
		if pat == base {
			return true
		}
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

func computeConfigHash(cfg config.DRYConfig) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte{byte(cfg.MinDuplicateLines), byte(cfg.MinDuplicateTokens)})
	return fmt.Sprintf("%x", h.Sum64())
}
