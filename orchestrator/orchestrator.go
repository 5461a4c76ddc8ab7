// Package orchestrator drives one Linter run end to end (C8, §4.1): it
// resolves the project root and config, walks the target path, builds a
// LintContext per file, dispatches every applicable Rule, finalizes the
// stateful rules once, and returns a sorted, ignore-filtered Violation list.
package orchestrator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flanksource/commons/logger"

	"github.com/thai-lint/thailint-go/analysis"
	"github.com/thai-lint/thailint-go/config"
	"github.com/thai-lint/thailint-go/ignore"
	"github.com/thai-lint/thailint-go/models"
	"github.com/thai-lint/thailint-go/rules"
)

// excludedDirs are always skipped during enumeration, mirroring the
// teacher's file-walk exclusions in filters/parser.go.
var excludedDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "__pycache__": true,
	".venv": true, "venv": true, ".tox": true, ".mypy_cache": true,
	".pytest_cache": true, "dist": true, "build": true, ".thailint-cache": true,
}

// Orchestrator is built once per invocation (library call or CLI run) and
// owns the rule registry, AST analyzer registry, and ignore parser for that
// run (§3 Lifecycles).
type Orchestrator struct {
	ProjectRoot string
	Config      *models.Config

	registry   *rules.Registry
	analyzers  *analysis.Registry
	ignoreP    *ignore.Parser
	closeFuncs []func()
}

// New resolves configuration starting from startDir and wires every
// built-in rule. Callers should call Close when done to release the DRY
// engine's cache handle.
func New(startDir, explicitConfigPath string) (*Orchestrator, error) {
	cfg, projectRoot, err := config.Load(startDir, explicitConfigPath)
	if err != nil {
		return nil, err
	}
	return newWithConfig(cfg, projectRoot)
}

func newWithConfig(cfg *models.Config, projectRoot string) (*Orchestrator, error) {
	o := &Orchestrator{
		ProjectRoot: projectRoot,
		Config:      cfg,
		registry:    rules.NewRegistry(),
		analyzers:   analysis.NewRegistry(),
		ignoreP:     ignore.NewParser(projectRoot),
	}
	dryEngine := dryEngineFor(cfg)
	o.closeFuncs = append(o.closeFuncs, dryEngine.Close)
	rules.RegisterDefaults(o.registry, dryEngine)
	return o, nil
}

// Close releases any resources opened for this run (the DRY cache handle).
func (o *Orchestrator) Close() {
	for _, fn := range o.closeFuncs {
		fn()
	}
}

// Lint runs every rule whose id matches ruleFilter (nil/empty means "all
// rules") over every file found under path, returning violations sorted by
// (line, column, rule_id) (§4.1, §5).
func (o *Orchestrator) Lint(path string, ruleFilter []string) ([]models.Violation, error) {
	files, err := o.enumerateFiles(path)
	if err != nil {
		return nil, err
	}

	o.registry.ResetStateful()

	var all []models.Violation
	for _, file := range files {
		v, err := o.lintFile(file, ruleFilter)
		if err != nil {
			logger.Warnf("skipping %s: %v", file, err)
			continue
		}
		all = append(all, v...)
	}
	all = append(all, o.registry.FinalizeAll()...)

	all = o.filterIgnoredFinalized(all)
	models.SortViolations(all)
	return all, nil
}

func (o *Orchestrator) lintFile(absPath string, ruleFilter []string) ([]models.Violation, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err // filesystem error: caller logs and continues (§7)
	}

	relPath, err := filepath.Rel(o.ProjectRoot, absPath)
	if err != nil {
		relPath = absPath
	}
	relPath = filepath.ToSlash(relPath)

	if o.ignoreP.IsIgnored(relPath) {
		return nil, nil
	}

	lang := analysis.ClassifyExtension(absPath)
	applicable := o.registry.ForFile(lang, ruleFilter)
	if len(applicable) == 0 {
		return nil, nil
	}

	metadata := o.buildMetadata(lang)
	var parseFn func() (models.Tree, error)
	if analyzer := o.analyzers.For(lang); analyzer != nil {
		src := string(content)
		parseFn = func() (models.Tree, error) { return analyzer.Parse(src) }
	}
	ctx := models.NewLintContext(relPath, lang, string(content), metadata, parseFn)

	var violations []models.Violation
	for _, rule := range applicable {
		for _, v := range safeCheck(rule, ctx) {
			violations = append(violations, v)
		}
	}
	return violations, nil
}

// safeCheck isolates a single rule exception so one misbehaving rule never
// aborts the run (§7 "rule exceptions are caught, logged as a warning, and
// the file continues processing with the remaining rules").
func safeCheck(rule models.Rule, ctx *models.LintContext) (violations []models.Violation) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("rule %s panicked on %s: %v", rule.RuleID(), ctx.FilePath, r)
			violations = nil
		}
	}()
	return rule.Check(ctx)
}

func (o *Orchestrator) buildMetadata(lang models.Language) map[string]any {
	metadata := make(map[string]any, len(o.Config.Rules))
	for category, section := range o.Config.Rules {
		resolved := section.ForLanguage(lang)
		m := make(map[string]any, len(resolved.Options)+1)
		for k, v := range resolved.Options {
			m[k] = v
		}
		if resolved.Enabled != nil {
			m["enabled"] = *resolved.Enabled
		}
		metadata[category] = m
	}
	return metadata
}

// filterIgnoredFinalized applies the ignore system to every violation of the
// run, those from Check as well as those produced by Finalize (dry.*,
// stringly_typed.*), once every file has been visited. No violation is
// checked against inline source comments at Check time.
func (o *Orchestrator) filterIgnoredFinalized(violations []models.Violation) []models.Violation {
	contentCache := map[string]string{}
	out := make([]models.Violation, 0, len(violations))
	for _, v := range violations {
		relPath := filepath.ToSlash(v.FilePath)
		content, ok := contentCache[relPath]
		if !ok {
			data, err := os.ReadFile(filepath.Join(o.ProjectRoot, relPath))
			if err == nil {
				content = string(data)
			}
			contentCache[relPath] = content
		}
		if o.ignoreP.ShouldIgnoreViolation(v, relPath, content) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// enumerateFiles walks path (a file or a directory) collecting every
// regular file not under an excluded or dot-prefixed directory, with
// symlink-cycle safety: a directory (or a symlink to one) is entered only if
// its resolved target has not already been visited this run.
func (o *Orchestrator) enumerateFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil // nonexistent path: empty result, not an error (§7)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	visited := map[string]bool{}
	var files []string
	var walk func(dir string) error
	walk = func(dir string) error {
		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			real = dir
		}
		if visited[real] {
			return nil
		}
		visited[real] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(dir, name)
			isDir := entry.IsDir()
			if entry.Type()&os.ModeSymlink != 0 {
				if target, err := os.Stat(full); err == nil {
					isDir = target.IsDir()
				}
			}
			if isDir {
				if excludedDirs[name] || strings.HasPrefix(name, ".") && name != "." {
					continue
				}
				if err := walk(full); err != nil {
					logger.Debugf("skipping directory %s: %v", full, err)
				}
				continue
			}
			files = append(files, full)
		}
		return nil
	}
	if err := walk(path); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
