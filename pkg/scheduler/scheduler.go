// Package scheduler dispatches a batch of repos across a bounded pool
// of concurrent workers, reporting each repo's lifecycle through a
// progress.Sink in the fixed on_batch_start/on_repo_*/on_batch_finish
// sequence.
package scheduler

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/selector"
	"github.com/gizzahub/fleetgit/pkg/style"
)

// Task is the per-repo unit of work a Run dispatches. It receives the
// selected repo and an onUpdate callback through which it can report
// on_repo_update events of its own, and returns the success message or
// an error.
type Task func(ctx context.Context, repo selector.Selected, onUpdate func(status string)) (style.Message, error)

// RepoFailure pairs a failed repo with the error it returned.
type RepoFailure struct {
	Repo selector.Selected
	Err  error
}

// Result is the outcome of a full batch run.
type Result struct {
	Succeeded int
	Failures  []RepoFailure
}

// Run dispatches task against every repo in repos, holding concurrency
// workers in flight at once via a weighted semaphore, and reports
// lifecycle events through sink. It returns once every repo has
// completed or ctx is canceled.
func Run(ctx context.Context, concurrency int, repos []selector.Selected, sink progress.Sink, task Task) Result {
	if sink == nil {
		sink = progress.NoopSink{}
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	sink.OnBatchStart(len(repos))
	defer sink.OnBatchFinish()

	sem := semaphore.NewWeighted(int64(concurrency))
	var (
		mu     sync.Mutex
		result Result
	)

	var wg sync.WaitGroup
	dispatched := 0
	for _, repo := range repos {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			result.Failures = append(result.Failures, RepoFailure{Repo: repo, Err: err})
			mu.Unlock()
			continue
		}

		wg.Add(1)
		dispatched++
		go func(repo selector.Selected, order int) {
			defer wg.Done()
			defer sem.Release(1)

			info := progress.RepoInfo{
				ID:      repo.Index,
				Index:   order,
				RelPath: repo.Repo.DisplayLocal(),
				Branch:  repo.Repo.Branch,
				Remote:  repo.Repo.Remote,
			}

			sink.OnRepoStart(info, "waiting...")
			onUpdate := func(status string) { sink.OnRepoUpdate(info, status) }

			msg, err := task(ctx, repo, onUpdate)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sink.OnRepoError(info, style.New().Plain(err.Error()))
				result.Failures = append(result.Failures, RepoFailure{Repo: repo, Err: err})
				return
			}
			sink.OnRepoSuccess(info, msg)
			result.Succeeded++
		}(repo, dispatched)
	}

	wg.Wait()
	return result
}
