package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thai-lint/thailint-go/linter"
	"github.com/thai-lint/thailint-go/output"
)

// ruleSubcommand describes one rule category's CLI entry point (§6: "subcommands
// per rule").
type ruleSubcommand struct {
	use    string
	short  string
	prefix string
}

var ruleCommandSpecs = []ruleSubcommand{
	{"nesting", "Flag excessively nested functions", "nesting."},
	{"srp", "Flag classes that may violate single responsibility", "srp."},
	{"stateless-class", "Flag Python classes with no state", "stateless-class."},
	{"magic-numbers", "Flag unexplained numeric literals", "magic_numbers."},
	{"lbyl", "Flag look-before-you-leap guard patterns", "lbyl."},
	{"method-property", "Flag methods that should be properties", "method-property."},
	{"collection-pipeline", "Flag hand-rolled filter/map/any/all loops", "collection-pipeline."},
	{"stringly-typed", "Flag repeated string-literal comparisons", "stringly_typed."},
	{"dry", "Flag duplicate code blocks and duplicate constants", "dry."},
	{"file-header", "Flag missing or stale file headers", "file_header."},
	{"file-placement", "Flag files placed outside their allowed directories", "file_placement."},
}

func ruleSubcommands() []*cobra.Command {
	out := make([]*cobra.Command, 0, len(ruleCommandSpecs))
	for _, spec := range ruleCommandSpecs {
		spec := spec
		out = append(out, &cobra.Command{
			Use:   spec.use + " [path]",
			Short: spec.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if spec.prefix == "nesting." && maxDepthFlag > 0 {
					return nestingLintWithOverride(args)
				}
				return lintAndReport(args, []string{spec.prefix})
			},
		})
	}
	return out
}

// nestingLintWithOverride handles --max-depth, which the generic
// lintAndReport path has no seam for (it always goes through Linter.Lint,
// not the direct NestingLint entry point).
func nestingLintWithOverride(args []string) error {
	path, err := targetPath(args)
	if err != nil {
		return err
	}
	l, err := linter.New(cwdOrPath(path), cfgFile)
	if err != nil {
		return err
	}
	defer l.Close()

	violations, err := l.NestingLint(path, maxDepthFlag)
	if err != nil {
		return err
	}
	if err := output.Write(os.Stdout, output.Format(formatFlag), violations, "dev"); err != nil {
		return err
	}
	if len(violations) > 0 {
		os.Exit(1)
	}
	return nil
}
