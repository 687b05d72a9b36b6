package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report each selected repo's drift against its configured remote ref",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()

		return runBatch(func(sink progress.Sink) (style.Message, error) {
			return syncapi.StatusRepos(context.Background(), executor, opts, sink)
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
