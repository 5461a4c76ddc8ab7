// Package cmd implements the thin CLI wrapper over the linter library
// boundary (§6): a root "lint" command plus one subcommand per rule
// category, sharing the --config/--format/--rules flag set via cobra,
// with viper binding flags to THAILINT_-prefixed environment variables.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	formatFlag string
	rulesFlag  []string
	cwdFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "thailint",
	Short: "Multi-language static analysis linter",
	Long: `thailint analyzes Python, TypeScript, JavaScript, Bash, Markdown, and
CSS source for duplicate code, excessive nesting, SRP violations, and other
smells, honoring a five-level ignore system and a configurable rule set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, args)
	},
}

// Execute runs the root command, translating a returned error into exit
// code 2 (§6 "error (unreadable config, unexpected exception)").
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to .thailint.yaml/.thailint.json (default: searched from the project root)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "text", "output format: text, json, or sarif")
	rootCmd.PersistentFlags().StringSliceVar(&rulesFlag, "rules", nil, "restrict to rule id prefixes (repeatable, comma-separated)")
	rootCmd.PersistentFlags().StringVar(&cwdFlag, "cwd", "", "project root to analyze (default: current directory)")
	rootCmd.PersistentFlags().IntVar(&maxDepthFlag, "max-depth", 0, "override nesting.max_depth for this run (0 = use configured value)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("rules", rootCmd.PersistentFlags().Lookup("rules"))

	for _, sub := range ruleSubcommands() {
		rootCmd.AddCommand(sub)
	}
}

func initConfig() {
	viper.SetEnvPrefix("THAILINT")
	viper.AutomaticEnv()
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}
