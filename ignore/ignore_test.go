package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thai-lint/thailint-go/models"
)

func TestParser_IsIgnored_RepoPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".thailintignore"), []byte("vendor/\n*.generated.py\n"), 0o644))
	p := NewParser(dir)

	require.True(t, p.IsIgnored("vendor/pkg/file.py"))
	require.True(t, p.IsIgnored("models.generated.py"))
	require.False(t, p.IsIgnored("src/main.py"))
}

func TestParser_IsIgnored_NegatedPatternReincludes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".thailintignore"), []byte("*.py\n!keep.py\n"), 0o644))
	p := NewParser(dir)

	require.True(t, p.IsIgnored("skip.py"))
	require.False(t, p.IsIgnored("keep.py"))
}

func TestParser_DirIgnore(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "legacy")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, ".lintconfig"), []byte("ignore: srp.violation\n"), 0o644))
	p := NewParser(dir)

	v := models.Violation{RuleID: "srp.violation", Line: 1}
	require.True(t, p.ShouldIgnoreViolation(v, "legacy/thing.py", "class Thing:\n    pass\n"))
	require.False(t, p.ShouldIgnoreViolation(v, "fresh/thing.py", "class Thing:\n    pass\n"))
}

func TestHasFileIgnore(t *testing.T) {
	require.True(t, HasFileIgnore("# thailint: ignore-file\ndef f(): pass\n", "srp.violation"))
	require.False(t, HasFileIgnore("def f(): pass\n", "srp.violation"))
}

func TestHasFileIgnore_ScopedToRule(t *testing.T) {
	content := "# thailint: ignore-file[nesting.excessive-depth]\n"
	require.True(t, HasFileIgnore(content, "nesting.excessive-depth"))
	require.False(t, HasFileIgnore(content, "srp.violation"))
}

func TestHasNextLineIgnore(t *testing.T) {
	content := "x = 1\n# thailint: ignore-next-line\ny = 2\n"
	require.True(t, HasNextLineIgnore(content, 3, ""))
	require.False(t, HasNextLineIgnore(content, 1, ""))
}

func TestHasLineIgnore(t *testing.T) {
	require.True(t, HasLineIgnore("x = 1  # thailint: ignore", "srp.violation"))
	require.True(t, HasLineIgnore("x = 1  # noqa: srp.violation", "srp.violation"))
	require.False(t, HasLineIgnore("x = 1", "srp.violation"))
}

func TestShouldIgnoreViolation_BlockRange(t *testing.T) {
	content := "a = 1\n# thailint: ignore-start\nb = 2\nc = 3\n# thailint: ignore-end\nd = 4\n"
	p := NewParser(t.TempDir())
	inside := models.Violation{RuleID: "srp.violation", Line: 3}
	outside := models.Violation{RuleID: "srp.violation", Line: 6}
	require.True(t, p.ShouldIgnoreViolation(inside, "f.py", content))
	require.False(t, p.ShouldIgnoreViolation(outside, "f.py", content))
}
