// Package pipeline drives one repository through the init/fetch/checkout
// state machine: make sure a working copy exists at the manifest path,
// point it at the right remote, fetch, and land it on the configured
// commit/tag/branch, honoring a StashMode that controls how local
// changes are preserved (or discarded) across the move.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
	"github.com/gizzahub/fleetgit/pkg/manifest"
	"github.com/gizzahub/fleetgit/pkg/style"
)

// StashMode controls how local changes are handled while moving a
// working copy onto its target ref.
type StashMode int

const (
	// StashNormal stashes only if a checkout is about to happen, pops
	// the stash back regardless of checkout/reset outcome.
	StashNormal StashMode = iota
	// StashAlways stashes unconditionally and pops the stash back after
	// checkout/reset, whatever their outcome; on success the popped
	// stash is recorded in the result.
	StashAlways
	// StashHard discards local changes outright (clean + reset --hard).
	StashHard
)

// StashDescriptor records that a StashAlways run created a WIP stash
// entry; the entry has been popped back by the time Run returns.
type StashDescriptor struct {
	RelPath string
	Message string
}

// Result is what Run reports back about one repo's pipeline execution.
type Result struct {
	Stash *StashDescriptor
}

// OnUpdate is called with a short human status ("fetch...", "checkout...")
// as Run moves through its steps, mirroring a progress sink's per-repo
// update callback.
type OnUpdate func(status string)

// Run drives repo's working copy at filepath.Join(baseDir, repo.DisplayLocal())
// through init-or-reuse, fetch, and checkout/reset, according to mode.
func Run(ctx context.Context, exec *gitcmd.Executor, baseDir string, repo manifest.RepoConfig, defaultBranch string, mode StashMode, noCheckout bool, depth int, retryPolicy gitcmd.RetryPolicy, onUpdate OnUpdate) (Result, error) {
	if onUpdate == nil {
		onUpdate = func(string) {}
	}

	fullPath := filepath.Join(baseDir, repo.DisplayLocal())
	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return Result{}, fmt.Errorf("create dir %s: %w", fullPath, err)
	}

	repo = repo.WithDefaultBranch(defaultBranch)

	isRepo, _ := exec.IsRepository(ctx, fullPath)
	if !isRepo {
		mode = StashHard

		onUpdate("initialize...")
		if err := exec.Init(ctx, fullPath); err != nil {
			return Result{}, err
		}

		onUpdate("add remote...")
		if err := exec.AddRemoteURL(ctx, fullPath, repo.Remote); err != nil {
			return Result{}, err
		}
	} else {
		if err := exec.UpdateRemoteURL(ctx, fullPath, repo.Remote); err != nil {
			return Result{}, err
		}
	}

	onUpdate("fetch...")
	if err := Fetch(ctx, exec, fullPath, repo, depth, retryPolicy, func(line string) { onUpdate("fetch: " + line) }); err != nil {
		return Result{}, err
	}

	remoteRef, err := repo.ResolveRemoteRef(ctx, exec, fullPath)
	if err != nil {
		return Result{}, err
	}
	remoteRefStr := remoteRef.Ref

	if !exec.IsRemoteRefValid(ctx, fullPath, remoteRefStr) {
		return Result{}, fmt.Errorf("%w: %s", gitcmd.ErrRemoteRefInvalid, remoteRefStr)
	}

	var result Result
	switch mode {
	case StashNormal:
		err = runNormal(ctx, exec, fullPath, repo, noCheckout, remoteRef, onUpdate, &result)
	case StashAlways:
		err = runAlways(ctx, exec, fullPath, repo, noCheckout, remoteRef, onUpdate, &result)
	case StashHard:
		err = runHard(ctx, exec, fullPath, repo, noCheckout, isRepo, remoteRef, onUpdate)
	}
	if err != nil {
		return Result{}, err
	}

	if len(repo.Sparse) > 0 {
		if err := exec.SparseCheckoutSet(ctx, fullPath, repo.Sparse); err != nil {
			return Result{}, err
		}
	} else if err := exec.SparseCheckoutDisable(ctx, fullPath); err != nil {
		return Result{}, err
	}

	return result, nil
}

func runNormal(ctx context.Context, exec *gitcmd.Executor, fullPath string, repo manifest.RepoConfig, noCheckout bool, remoteRef gitcmd.RemoteRef, onUpdate OnUpdate, result *Result) error {
	if noCheckout {
		return resetTo(ctx, exec, fullPath, remoteRef, gitcmd.ResetSoft, onUpdate)
	}

	stashed, err := doStash(ctx, exec, fullPath, onUpdate)
	if err != nil {
		return err
	}

	err = checkout(ctx, exec, fullPath, repo, remoteRef, false, onUpdate)
	if err == nil {
		err = resetTo(ctx, exec, fullPath, remoteRef, gitcmd.ResetHard, onUpdate)
	}

	if stashed {
		_, _ = exec.StashPop(ctx, fullPath)
	}
	return err
}

func runAlways(ctx context.Context, exec *gitcmd.Executor, fullPath string, repo manifest.RepoConfig, noCheckout bool, remoteRef gitcmd.RemoteRef, onUpdate OnUpdate, result *Result) error {
	onUpdate("stash...")
	stashOut, err := exec.Stash(ctx, fullPath)
	if err != nil {
		return err
	}
	stashed := isWIPStash(stashOut)

	resetMode := gitcmd.ResetMixed
	if !noCheckout {
		err = checkout(ctx, exec, fullPath, repo, remoteRef, true, onUpdate)
		resetMode = gitcmd.ResetHard
	}
	if err == nil {
		err = resetTo(ctx, exec, fullPath, remoteRef, resetMode, onUpdate)
	}

	if stashed {
		_, _ = exec.StashPop(ctx, fullPath)
		if err != nil {
			return err
		}
		result.Stash = &StashDescriptor{RelPath: repo.DisplayLocal(), Message: stashMessage(stashOut)}
	}
	return err
}

func runHard(ctx context.Context, exec *gitcmd.Executor, fullPath string, repo manifest.RepoConfig, noCheckout, wasRepo bool, remoteRef gitcmd.RemoteRef, onUpdate OnUpdate) error {
	if wasRepo {
		onUpdate("clean...")
		if err := exec.Clean(ctx, fullPath); err != nil {
			return err
		}
	}

	if !noCheckout {
		if err := checkout(ctx, exec, fullPath, repo, remoteRef, true, onUpdate); err != nil {
			return err
		}
	}
	return resetTo(ctx, exec, fullPath, remoteRef, gitcmd.ResetHard, onUpdate)
}

func doStash(ctx context.Context, exec *gitcmd.Executor, fullPath string, onUpdate OnUpdate) (bool, error) {
	onUpdate("stash...")
	out, err := exec.Stash(ctx, fullPath)
	if err != nil {
		return false, err
	}
	return isWIPStash(out), nil
}

func isWIPStash(stashOutput string) bool {
	return strings.Contains(stashOutput, "WIP")
}

func stashMessage(stashOutput string) string {
	idx := strings.Index(stashOutput, "WIP")
	if idx < 0 {
		return strings.TrimSpace(stashOutput)
	}
	return strings.TrimSpace(stashOutput[idx:])
}

func resetTo(ctx context.Context, exec *gitcmd.Executor, fullPath string, remoteRef gitcmd.RemoteRef, mode gitcmd.ResetType, onUpdate OnUpdate) error {
	onUpdate("reset...")
	return exec.Reset(ctx, fullPath, mode, remoteRef.Ref)
}

func checkout(ctx context.Context, exec *gitcmd.Executor, fullPath string, repo manifest.RepoConfig, remoteRef gitcmd.RemoteRef, force bool, onUpdate OnUpdate) error {
	onUpdate("checkout...")

	branch := targetBranchName(repo, remoteRef)

	if current, err := exec.GetCurrentBranch(ctx, fullPath); err == nil && current == branch {
		return nil
	}

	onUpdate(style.GitCheckingOut(branch).PlainText())

	exists, err := exec.LocalBranchExists(ctx, fullPath, branch)
	if err != nil {
		return err
	}

	switch {
	case !exists && !force:
		return exec.Checkout(ctx, fullPath, "-B", branch, remoteRef.Ref, "--no-track")
	case !exists && force:
		return exec.Checkout(ctx, fullPath, "-B", branch, remoteRef.Ref, "--no-track", "-f")
	case exists && !force:
		return exec.Checkout(ctx, fullPath, branch)
	default:
		return exec.Checkout(ctx, fullPath, "-B", branch, "-f")
	}
}

func targetBranchName(repo manifest.RepoConfig, remoteRef gitcmd.RemoteRef) string {
	switch remoteRef.Kind {
	case gitcmd.RemoteRefCommit:
		short := remoteRef.Ref
		if len(short) > 7 {
			short = short[:7]
		}
		return "commits/" + short
	case gitcmd.RemoteRefTag:
		return "tags/" + remoteRef.Ref
	default:
		if repo.Branch != "" {
			return repo.Branch
		}
		return "invalid-branch"
	}
}

// Fetch runs `git fetch` against repo's resolved remote. When depth is
// positive it also passes --depth and a ref argument shaped by whether
// repo targets a commit, a tag, or a branch; otherwise no ref argument
// is passed and the whole remote is fetched. Progress lines git writes to stderr (--progress
// forces these even when stderr isn't a terminal) are streamed to
// onProgress as they arrive rather than collected and reported only on
// completion.
func Fetch(ctx context.Context, exec *gitcmd.Executor, fullPath string, repo manifest.RepoConfig, depth int, retryPolicy gitcmd.RetryPolicy, onProgress gitcmd.OnProgressLine) error {
	remoteName, err := repo.ResolveRemoteName(ctx, exec, fullPath)
	if err != nil {
		return err
	}

	args := []string{"fetch", "--progress", remoteName}

	if depth > 0 {
		remoteRef, err := repo.ResolveRemoteRef(ctx, exec, fullPath)
		if err != nil {
			return err
		}
		switch remoteRef.Kind {
		case gitcmd.RemoteRefCommit:
			args = append(args, remoteRef.Ref)
		case gitcmd.RemoteRefTag:
			args = append(args, "tag", remoteRef.Ref, "--no-tags")
		case gitcmd.RemoteRefBranch:
			if repo.Branch == "" {
				return fmt.Errorf("pipeline: branch reference required for depth-limited fetch")
			}
			args = append(args, repo.Branch)
		}
		args = append(args, "--depth", strconv.Itoa(depth))
	}

	args = append(args, "--prune", "--recurse-submodules=on-demand")

	return gitcmd.WithRetry(ctx, retryPolicy, func() error {
		_, _, err := exec.RunStreamed(ctx, fullPath, onProgress, args...)
		return err
	})
}

// Track points repo's local branch at its configured upstream, equivalent
// to `git branch --set-upstream-to`. Repos pinned to a commit or tag are
// reported as untracked rather than attempted, since neither names a
// branch that `--set-upstream-to` accepts.
func Track(ctx context.Context, exec *gitcmd.Executor, baseDir string, repo manifest.RepoConfig, defaultBranch string) (style.Message, error) {
	fullPath := filepath.Join(baseDir, repo.DisplayLocal())

	localBranch, err := exec.GetCurrentBranch(ctx, fullPath)
	if err != nil {
		return style.Message{}, err
	}

	resolved := repo.WithDefaultBranch(defaultBranch)
	remoteRef, err := resolved.ResolveRemoteRef(ctx, exec, fullPath)
	if err != nil {
		return style.Message{}, err
	}

	remoteDesc := remoteRef.Ref
	if remoteRef.Kind == gitcmd.RemoteRefCommit && len(remoteDesc) > 7 {
		remoteDesc = remoteDesc[:7]
	}

	if repo.Commit != "" || repo.Tag != "" {
		return style.GitUntracked(repo.DisplayLocal(), remoteDesc), nil
	}

	if err := exec.SetTrackingRemoteBranch(ctx, fullPath, remoteRef.Ref); err != nil {
		return style.GitTrackingFailed(repo.DisplayLocal(), remoteDesc), nil
	}
	return style.GitTrackingSucc(repo.DisplayLocal(), localBranch, remoteDesc), nil
}
