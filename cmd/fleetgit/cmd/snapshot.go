package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var (
	snapshotForce  bool
	snapshotBranch bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Discover existing working copies under path and write a manifest pinning them",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapType := syncapi.SnapshotCommit
		if snapshotBranch {
			snapType = syncapi.SnapshotBranch
		}

		msg, err := syncapi.SnapshotRepo(context.Background(), executor, syncapi.SnapshotOptions{
			Path:         rootPath,
			ManifestPath: manifestPath,
			Force:        snapshotForce,
			Type:         snapType,
			Ignore:       ignoreRepos,
		})
		fmt.Println(style.Render(msg))
		return err
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().BoolVarP(&snapshotForce, "force", "f", false, "overwrite an existing manifest")
	snapshotCmd.Flags().BoolVar(&snapshotBranch, "branch", false, "pin to the tracked branch instead of the current commit")
}
