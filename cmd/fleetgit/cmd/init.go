package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an empty .gitrepos manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := syncapi.InitRepo(syncapi.InitOptions{
			Path:         rootPath,
			ManifestPath: manifestPath,
			Force:        initForce,
		})
		fmt.Println(style.Render(msg))
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing manifest")
}
