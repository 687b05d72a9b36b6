package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

var (
	syncHard       bool
	syncStash      bool
	syncNoTrack    bool
	syncNoCheckout bool
	syncDepth      int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring every selected repo to the state declared in the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()
		opts.Hard = syncHard
		opts.Stash = syncStash
		opts.NoTrack = syncNoTrack
		opts.NoCheckout = syncNoCheckout
		opts.Depth = syncDepth

		return runBatch(func(sink progress.Sink) (style.Message, error) {
			return syncapi.SyncRepos(context.Background(), executor, opts, sink)
		})
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncHard, "hard", false, "clean undeclared working copies before syncing")
	syncCmd.Flags().BoolVar(&syncStash, "stash", false, "always stash local changes, force the checkout, then pop the stash")
	syncCmd.Flags().BoolVar(&syncNoTrack, "no-track", false, "skip setting the local branch's upstream")
	syncCmd.Flags().BoolVar(&syncNoCheckout, "no-checkout", false, "fetch and reset but skip the working-copy checkout")
	syncCmd.Flags().IntVar(&syncDepth, "depth", 0, "shallow-fetch depth (0 for full history)")
}
