package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTargetPath_DefaultsToArgThenCwdFlagThenWorkingDir(t *testing.T) {
	require.Equal(t, "explicit", mustTargetPath(t, []string{"explicit"}, ""))

	old := cwdFlag
	cwdFlag = "/some/configured/root"
	defer func() { cwdFlag = old }()
	require.Equal(t, "/some/configured/root", mustTargetPath(t, nil, ""))

	cwdFlag = ""
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, wd, mustTargetPath(t, nil, ""))
}

func mustTargetPath(t *testing.T, args []string, cwd string) string {
	t.Helper()
	if cwd != "" {
		old := cwdFlag
		cwdFlag = cwd
		defer func() { cwdFlag = old }()
	}
	path, err := targetPath(args)
	require.NoError(t, err)
	return path
}

func TestCwdOrPath_DirectoryTargetIsItsOwnRoot(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, dir, cwdOrPath(dir))
}

func TestCwdOrPath_FileTargetFallsBackToDot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))
	require.Equal(t, ".", cwdOrPath(file))
}

func TestCwdOrPath_ExplicitCwdFlagWins(t *testing.T) {
	old := cwdFlag
	cwdFlag = "/explicit/root"
	defer func() { cwdFlag = old }()
	require.Equal(t, "/explicit/root", cwdOrPath("anything"))
}

func TestRuleSubcommands_OneCommandPerRuleCategory(t *testing.T) {
	cmds := ruleSubcommands()
	require.Len(t, cmds, len(ruleCommandSpecs))

	seen := map[string]bool{}
	for _, c := range cmds {
		seen[c.Name()] = true
		require.NotNil(t, c.RunE)
	}
	require.True(t, seen["nesting"])
	require.True(t, seen["dry"])
	require.True(t, seen["file-placement"])
}

func TestRootCmd_HasRuleSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["srp"])
	require.True(t, names["stringly-typed"])
}
