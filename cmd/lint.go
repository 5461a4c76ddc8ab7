package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thai-lint/thailint-go/linter"
	"github.com/thai-lint/thailint-go/output"
)

var maxDepthFlag int

// targetPath resolves the path argument, defaulting to --cwd or the
// current directory when args is empty.
func targetPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cwdFlag != "" {
		return cwdFlag, nil
	}
	return os.Getwd()
}

// runLint is the root command's body: lint every applicable rule over the
// target path and print the result (§6's root "lint" command).
func runLint(cmd *cobra.Command, args []string) error {
	return lintAndReport(args, nil)
}

// lintAndReport loads a Linter, runs it (optionally scoped to
// rulePrefixes), writes the chosen format to stdout, and sets the process
// exit code per §6: 0 no violations, 1 violations found, 2 error.
func lintAndReport(args []string, rulePrefixes []string) error {
	path, err := targetPath(args)
	if err != nil {
		return err
	}

	l, err := linter.New(cwdOrPath(path), cfgFile)
	if err != nil {
		return err
	}
	defer l.Close()

	prefixes := rulePrefixes
	if len(prefixes) == 0 {
		prefixes = rulesFlag
	}

	violations, err := l.Lint(path, prefixes)
	if err != nil {
		return err
	}

	format := output.Format(formatFlag)
	if err := output.Write(os.Stdout, format, violations, "dev"); err != nil {
		return err
	}

	if len(violations) > 0 {
		os.Exit(1)
	}
	return nil
}

// cwdOrPath picks the project root the Linter's config search should start
// from: --cwd if given, else the lint target itself when it is a
// directory, else "." (the current directory), as for a single-file target.
func cwdOrPath(path string) string {
	if cwdFlag != "" {
		return cwdFlag
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return path
	}
	return "."
}
