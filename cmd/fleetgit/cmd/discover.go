package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/internal/config"
	"github.com/gizzahub/fleetgit/pkg/forge"
	"github.com/gizzahub/fleetgit/pkg/gitea"
	"github.com/gizzahub/fleetgit/pkg/github"
	"github.com/gizzahub/fleetgit/pkg/gitlab"
	"github.com/gizzahub/fleetgit/pkg/manifest"
	"github.com/gizzahub/fleetgit/pkg/provider"
)

var (
	discoverProvider string
	discoverOrg      string
	discoverUser     bool
	discoverSSH      bool
	discoverArchived bool
	discoverForks    bool
	discoverPrivate  bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List a forge account's repos and write them into a manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadDefault()
		if err != nil {
			return err
		}

		p, err := resolveProvider(discoverProvider, cfg)
		if err != nil {
			return err
		}

		proto := forge.ProtoHTTPS
		if discoverSSH {
			proto = forge.ProtoSSH
		}

		flags := cmd.Flags()
		includeArchived, includeForks, includePrivate := discoverArchived, discoverForks, discoverPrivate
		if !flags.Changed("include-archived") {
			includeArchived = cfg.Sync.IncludeArchived
		}
		if !flags.Changed("include-forks") {
			includeForks = cfg.Sync.IncludeForks
		}
		if !flags.Changed("include-private") {
			includePrivate = cfg.Sync.IncludePrivate
		}

		repos, err := forge.Discover(context.Background(), p, forge.DiscoverOptions{
			Organization:      discoverOrg,
			IsUser:            discoverUser,
			IncludeArchived:   includeArchived,
			IncludeForks:      includeForks,
			IncludePrivate:    includePrivate,
			Proto:             proto,
			DefaultBranchOnly: false,
		})
		if err != nil {
			return err
		}

		path := manifestPath
		if path == "" {
			path = filepath.Join(rootPath, manifest.DefaultFileName)
		}
		m := &manifest.Manifest{DefaultBranch: "main", Repos: repos}
		if err := manifest.Save(path, m); err != nil {
			return err
		}

		fmt.Printf("discovered %d repos, wrote %s\n", len(repos), path)
		return nil
	},
}

func resolveProvider(name string, cfg *config.Config) (provider.Provider, error) {
	switch name {
	case "gitlab":
		return gitlab.NewProvider(cfg.GitLab.Token, cfg.GitLab.BaseURL)
	case "gitea":
		return gitea.NewProvider(cfg.Gitea.Token, cfg.Gitea.BaseURL), nil
	default:
		return github.NewProvider(cfg.GitHub.Token), nil
	}
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().StringVar(&discoverProvider, "provider", "github", "forge provider: github, gitlab, or gitea")
	discoverCmd.Flags().StringVar(&discoverOrg, "org", "", "organization (or user, with --user) to list")
	_ = discoverCmd.MarkFlagRequired("org")
	discoverCmd.Flags().BoolVar(&discoverUser, "user", false, "treat --org as a user account instead of an organization")
	discoverCmd.Flags().BoolVar(&discoverSSH, "ssh", false, "prefer SSH clone URLs")
	discoverCmd.Flags().BoolVar(&discoverArchived, "include-archived", false, "include archived repos")
	discoverCmd.Flags().BoolVar(&discoverForks, "include-forks", false, "include forked repos")
	discoverCmd.Flags().BoolVar(&discoverPrivate, "include-private", true, "include private repos")
}
