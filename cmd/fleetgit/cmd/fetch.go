package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var fetchDepth int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch every selected repo without touching its working copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()
		opts.Depth = fetchDepth

		return runBatch(func(sink progress.Sink) (style.Message, error) {
			return syncapi.FetchRepos(context.Background(), executor, opts, sink)
		})
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().IntVar(&fetchDepth, "depth", 0, "shallow-fetch depth (0 for full history)")
}
