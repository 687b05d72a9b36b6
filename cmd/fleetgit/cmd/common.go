package cmd

import (
	"fmt"
	"os"

	"github.com/gizzahub/fleetgit/internal/config"
	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/style"
	"github.com/gizzahub/fleetgit/pkg/syncapi"
)

// baseOptions assembles the syncapi.Options shared by every batch
// command from global flags plus whatever fleetgit.yaml contributes
// (currently just the fetch retry policy; flags always win).
func baseOptions() syncapi.Options {
	opts := syncapi.Options{
		Path:         rootPath,
		ManifestPath: manifestPath,
		Concurrency:  concurrency,
		Silent:       silent,
		Ignore:       ignoreRepos,
		Labels:       labelFilters,
	}
	if cfg, err := config.LoadDefault(); err == nil {
		opts.RetryPolicy = cfg.Sync.RetryPolicy()
	}
	return opts
}

// runBatch drives a batch syncapi call through the flag-selected sink,
// printing the returned summary message and translating a non-nil
// error into the process exit code.
func runBatch(run func(progress.Sink) (style.Message, error)) error {
	if tui {
		sink, wait := progress.NewTUISink()
		resultCh := make(chan struct {
			msg style.Message
			err error
		}, 1)
		go func() {
			msg, err := run(sink)
			resultCh <- struct {
				msg style.Message
				err error
			}{msg, err}
		}()
		if err := wait(); err != nil {
			return err
		}
		res := <-resultCh
		fmt.Println(style.Render(res.msg))
		return res.err
	}

	sink := progress.NewConsoleSink(os.Stdout)
	msg, err := run(sink)
	fmt.Println(style.Render(msg))
	return err
}
