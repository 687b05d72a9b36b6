// Package cmd implements the fleetgit CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
)

var (
	appVersion string

	rootPath     string
	manifestPath string
	concurrency  int
	silent       bool
	tui          bool
	ignoreRepos  []string
	labelFilters []string
)

var rootCmd = &cobra.Command{
	Use:           "fleetgit",
	Short:         "Declarative multi-repository Git synchronization",
	Long:          `fleetgit drives a fleet of Git working copies from a single declarative .gitrepos manifest.`,
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var executor = gitcmd.NewExecutor()

// Execute adds all child commands to the root command and runs it.
func Execute(version string) {
	appVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "path", "C", ".", "base directory for the fleet")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "config", "", "manifest path (defaults to <path>/.gitrepos)")
	rootCmd.PersistentFlags().IntVarP(&concurrency, "parallel", "p", 4, "number of repos to process concurrently")
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "suppress per-repo diff summaries")
	rootCmd.PersistentFlags().BoolVar(&tui, "tui", false, "render progress as an interactive terminal UI")
	rootCmd.PersistentFlags().StringArrayVar(&ignoreRepos, "ignore", nil, "local path to exclude (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&labelFilters, "label", nil, "only act on repos carrying this label (repeatable)")
}
