package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Point every selected repo's local branch at its configured upstream",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()

		return runBatch(func(sink progress.Sink) (style.Message, error) {
			return syncapi.TrackRepos(context.Background(), executor, opts, sink)
		})
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
