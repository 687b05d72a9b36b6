package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/manifest"
	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove working copies under path that no manifest entry declares",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := manifestPath
		if path == "" {
			path = filepath.Join(rootPath, manifest.DefaultFileName)
		}
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		msg, err := syncapi.CleanRepos(rootPath, m.Repos)
		fmt.Println(style.Render(msg))
		return err
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
