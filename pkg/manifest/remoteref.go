package manifest

import (
	"context"
	"fmt"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
)

// ResolveRemoteName finds the remote name in dir whose URL matches r's
// configured Remote.
func (r RepoConfig) ResolveRemoteName(ctx context.Context, exec *gitcmd.Executor, dir string) (string, error) {
	if r.Remote == "" {
		return "", fmt.Errorf("manifest: repo %s has no remote configured", r.DisplayLocal())
	}
	return exec.FindRemoteNameByURL(ctx, dir, r.Remote)
}

// ResolveRemoteRef determines the commit/tag/branch the repo should be
// synced to, honoring the commit > tag > branch precedence. A branch
// resolves against the remote name (e.g. "origin/main").
func (r RepoConfig) ResolveRemoteRef(ctx context.Context, exec *gitcmd.Executor, dir string) (gitcmd.RemoteRef, error) {
	switch {
	case r.Commit != "":
		return gitcmd.RemoteRef{Kind: gitcmd.RemoteRefCommit, Ref: r.Commit}, nil
	case r.Tag != "":
		return gitcmd.RemoteRef{Kind: gitcmd.RemoteRefTag, Ref: r.Tag}, nil
	case r.Branch != "":
		remoteName, err := r.ResolveRemoteName(ctx, exec, dir)
		if err != nil {
			return gitcmd.RemoteRef{}, err
		}
		return gitcmd.RemoteRef{Kind: gitcmd.RemoteRefBranch, Ref: remoteName + "/" + r.Branch}, nil
	default:
		return gitcmd.RemoteRef{}, fmt.Errorf("manifest: repo %s has no commit, tag, or branch configured", r.DisplayLocal())
	}
}

// WithDefaultBranch returns a copy of r with Branch filled in from
// defaultBranch when r declares no explicit commit, tag, or branch.
func (r RepoConfig) WithDefaultBranch(defaultBranch string) RepoConfig {
	if !r.HasExplicitRef() {
		r.Branch = defaultBranch
	}
	return r
}
