package gitcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrRemoteRefInvalid is returned when a resolved commit/tag/branch is
// not reachable from any remote-tracking branch after fetch.
var ErrRemoteRefInvalid = errors.New("remote ref is not valid")

// RemoteRefKind tags which of commit/tag/branch a RemoteRef resolved to.
type RemoteRefKind int

const (
	RemoteRefCommit RemoteRefKind = iota
	RemoteRefTag
	RemoteRefBranch
)

// RemoteRef is the resolved target of a repo config: a commit hash, a
// tag name, or a branch name (unqualified; callers format it against a
// remote name as needed).
type RemoteRef struct {
	Kind RemoteRefKind
	Ref  string
}

// IsRepository reports whether dir is the root of a git working copy.
func (e *Executor) IsRepository(ctx context.Context, dir string) (bool, error) {
	if !e.IsGitRepository(ctx, dir) {
		return false, nil
	}
	out, err := e.RunOutput(ctx, dir, "rev-parse", "--show-cdup")
	if err != nil {
		return false, nil
	}
	return out == "", nil
}

// FindRemoteNameByURL finds the name of the remote whose URL matches url
// by scanning `git remote -v`.
func (e *Executor) FindRemoteNameByURL(ctx context.Context, dir, url string) (string, error) {
	lines, err := e.RunLines(ctx, dir, "remote", "-v")
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		if idx := strings.Index(line, url); idx >= 0 {
			return strings.TrimSpace(line[:idx]), nil
		}
	}
	return "", fmt.Errorf("remote not found for url %q", url)
}

// FindRemoteURLByName resolves the URL configured for the named remote.
func (e *Executor) FindRemoteURLByName(ctx context.Context, dir, name string) (string, error) {
	return e.RunOutput(ctx, dir, "remote", "get-url", name)
}

// GetCurrentCommit returns the full SHA of HEAD.
func (e *Executor) GetCurrentCommit(ctx context.Context, dir string) (string, error) {
	return e.RunOutput(ctx, dir, "rev-parse", "HEAD")
}

// GetTrackingBranch returns the upstream tracking branch of HEAD, or an
// error if HEAD is untracked.
func (e *Executor) GetTrackingBranch(ctx context.Context, dir string) (string, error) {
	return e.RunOutput(ctx, dir, "rev-parse", "--symbolic-full-name", "--abbrev-ref", "@{u}")
}

// GetCurrentBranch returns the name of the checked-out branch, or "" if
// HEAD is detached or the repository has no commits yet.
func (e *Executor) GetCurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := e.RunOutput(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return out, nil
}

// GetBranchLog renders a one-line summary of branch, best-effort.
func (e *Executor) GetBranchLog(ctx context.Context, dir, branch string) string {
	out, err := e.RunOutput(ctx, dir, "show-branch", "--sha1-name", branch)
	if err != nil {
		return ""
	}
	return out
}

// GetUntrackedFiles lists untracked, non-ignored files.
func (e *Executor) GetUntrackedFiles(ctx context.Context, dir string) ([]string, error) {
	return e.RunLines(ctx, dir, "ls-files", ".", "--exclude-standard", "--others")
}

// GetChangedFiles lists modified-but-unstaged files.
func (e *Executor) GetChangedFiles(ctx context.Context, dir string) ([]string, error) {
	return e.RunLines(ctx, dir, "diff", "--name-only")
}

// GetStagedFiles lists staged files.
func (e *Executor) GetStagedFiles(ctx context.Context, dir string) ([]string, error) {
	return e.RunLines(ctx, dir, "diff", "--cached", "--name-only")
}

// GetRevListCount returns the raw two-integer `rev-list --count
// --left-right` output for branchPair (e.g. "local...origin/main").
func (e *Executor) GetRevListCount(ctx context.Context, dir, branchPair string) (string, error) {
	return e.RunOutput(ctx, dir, "rev-list", "--count", "--left-right", branchPair)
}

// Init initializes a new repository, always naming the initial branch
// "master" to avoid depending on the caller's global git config.
func (e *Executor) Init(ctx context.Context, dir string) error {
	_, err := e.RunOutput(ctx, dir, "init", "-b", "master")
	return err
}

// AddRemoteURL adds a remote named "origin" pointing at url.
func (e *Executor) AddRemoteURL(ctx context.Context, dir, url string) error {
	_, err := e.RunOutput(ctx, dir, "remote", "add", "origin", url)
	return err
}

// UpdateRemoteURL repoints the "origin" remote at url.
func (e *Executor) UpdateRemoteURL(ctx context.Context, dir, url string) error {
	_, err := e.RunOutput(ctx, dir, "remote", "set-url", "origin", url)
	return err
}

// Clean removes untracked files and directories.
func (e *Executor) Clean(ctx context.Context, dir string) error {
	_, err := e.RunOutput(ctx, dir, "clean", "-fd")
	return err
}

// ResetType selects git reset's mode.
type ResetType string

const (
	ResetSoft  ResetType = "--soft"
	ResetMixed ResetType = "--mixed"
	ResetHard  ResetType = "--hard"
)

// Reset resets the working copy to ref using the given mode.
func (e *Executor) Reset(ctx context.Context, dir string, mode ResetType, ref string) error {
	_, err := e.RunOutput(ctx, dir, "reset", string(mode), ref)
	return err
}

// Stash saves a WIP stash entry including untracked files. The returned
// string is git's stash output, used to detect "No local changes to
// save" versus an actual WIP entry.
func (e *Executor) Stash(ctx context.Context, dir string) (string, error) {
	return e.RunOutput(ctx, dir, "stash", "--include-untracked")
}

// StashPop restores the most recent stash entry.
func (e *Executor) StashPop(ctx context.Context, dir string) (string, error) {
	return e.RunOutput(ctx, dir, "stash", "pop")
}

// LocalBranchExists reports whether branch exists locally.
func (e *Executor) LocalBranchExists(ctx context.Context, dir, branch string) (bool, error) {
	lines, err := e.RunLines(ctx, dir, "branch", "-l", branch)
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if stripBranchMarker(line) == branch {
			return true, nil
		}
	}
	return false, nil
}

// Checkout runs `git checkout <args...>` verbatim.
func (e *Executor) Checkout(ctx context.Context, dir string, args ...string) error {
	full := append([]string{"checkout"}, args...)
	_, err := e.RunOutput(ctx, dir, full...)
	return err
}

// GetRemoteBranches lists remote-tracking branch names with the
// "origin/" prefix stripped.
func (e *Executor) GetRemoteBranches(ctx context.Context, dir string) ([]string, error) {
	lines, err := e.RunLines(ctx, dir, "branch", "-r")
	if err != nil {
		return nil, err
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		branches = append(branches, strings.TrimPrefix(strings.TrimSpace(line), "origin/"))
	}
	return branches, nil
}

// GetHeadTags lists tags pointing at HEAD.
func (e *Executor) GetHeadTags(ctx context.Context, dir string) ([]string, error) {
	return e.RunLines(ctx, dir, "tag", "--points-at", "HEAD")
}

// SetTrackingRemoteBranch configures HEAD to track remoteRef.
func (e *Executor) SetTrackingRemoteBranch(ctx context.Context, dir, remoteRef string) error {
	_, err := e.RunOutput(ctx, dir, "branch", "--set-upstream-to", remoteRef)
	return err
}

// LsFiles lists the index in `ls-files -s` form.
func (e *Executor) LsFiles(ctx context.Context, dir string) (string, error) {
	return e.RunOutput(ctx, dir, "ls-files", "-s")
}

// LogCurrent renders the HEAD commit's one-line summary.
func (e *Executor) LogCurrent(ctx context.Context, dir string) (string, error) {
	return e.RunOutput(ctx, dir, "log", "-1",
		`--pretty=format:%H%n%an <%ae>%n%ad%n%s`,
		"--date=format:%Y-%m-%d %H:%M:%S")
}

// SparseCheckoutSet declares the exact sparse-checkout path set.
func (e *Executor) SparseCheckoutSet(ctx context.Context, dir string, dirs []string) error {
	args := append([]string{"sparse-checkout", "set", "--no-cone"}, dirs...)
	_, err := e.RunOutput(ctx, dir, args...)
	return err
}

// SparseCheckoutDisable turns off sparse-checkout.
func (e *Executor) SparseCheckoutDisable(ctx context.Context, dir string) error {
	_, err := e.RunOutput(ctx, dir, "sparse-checkout", "disable")
	return err
}

// SparseCheckoutList lists the currently declared sparse-checkout paths.
func (e *Executor) SparseCheckoutList(ctx context.Context, dir string) ([]string, error) {
	return e.RunLines(ctx, dir, "sparse-checkout", "list")
}

// IsRemoteRefValid reports whether ref is reachable from some remote
// branch.
func (e *Executor) IsRemoteRefValid(ctx context.Context, dir, ref string) bool {
	_, err := e.RunOutput(ctx, dir, "branch", "--contains", ref, "-r")
	return err == nil
}

func stripBranchMarker(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "*")
	line = strings.TrimPrefix(line, "+")
	return strings.TrimSpace(line)
}
