// Package comparator computes the drift between a repo's local working
// copy and its configured remote target, rendered as a style.Message
// suitable for a progress sink.
package comparator

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
	"github.com/gizzahub/fleetgit/pkg/manifest"
	"github.com/gizzahub/fleetgit/pkg/style"
)

var revListPair = regexp.MustCompile(`(\d+)\s*(\d+)`)

// Compare reports the drift between the working copy at dir and repo's
// configured (or tracking, when useTrackingRemote is true) target.
func Compare(ctx context.Context, exec *gitcmd.Executor, dir string, repo manifest.RepoConfig, defaultBranch string, useTrackingRemote bool) style.Message {
	repo = repo.WithDefaultBranch(defaultBranch)

	remoteRefStr, remoteDesc, err := resolveDescriptors(ctx, exec, dir, repo, useTrackingRemote)
	if err != nil || remoteDesc == "" {
		return style.New().Plain("not tracking")
	}

	changed := collectChangedFiles(ctx, exec, dir)

	var changesDesc *style.Message
	if len(changed) > 0 {
		changesDesc = style.GitChanges(len(changed))
	}

	branch, err := exec.GetCurrentBranch(ctx, dir)
	if err != nil {
		return style.New().Plain("not tracking")
	}
	if branch == "" {
		return style.New().Plain("init commit")
	}

	commitDesc := compareCommits(ctx, exec, dir, branch, remoteRefStr)

	if commitDesc == nil && changesDesc == nil {
		branchLog := exec.GetBranchLog(ctx, dir, branch)
		return style.GitUpdateToDate(branchLog)
	}
	return style.GitDiff(remoteDesc, commitDesc, changesDesc)
}

func resolveDescriptors(ctx context.Context, exec *gitcmd.Executor, dir string, repo manifest.RepoConfig, useTrackingRemote bool) (ref, desc string, err error) {
	if useTrackingRemote {
		tracking, err := exec.GetTrackingBranch(ctx, dir)
		if err != nil {
			return "", "", err
		}
		return tracking, tracking, nil
	}

	remoteRef, err := repo.ResolveRemoteRef(ctx, exec, dir)
	if err != nil {
		return "", "", err
	}

	switch remoteRef.Kind {
	case gitcmd.RemoteRefCommit:
		short := remoteRef.Ref
		if len(short) > 7 {
			short = short[:7]
		}
		return remoteRef.Ref, short, nil
	default:
		return remoteRef.Ref, remoteRef.Ref, nil
	}
}

func collectChangedFiles(ctx context.Context, exec *gitcmd.Executor, dir string) map[string]struct{} {
	changed := make(map[string]struct{})
	addAll := func(files []string, err error) {
		if err != nil {
			return
		}
		for _, f := range files {
			if f != "" {
				changed[f] = struct{}{}
			}
		}
	}
	addAll(exec.GetUntrackedFiles(ctx, dir))
	addAll(exec.GetChangedFiles(ctx, dir))
	addAll(exec.GetStagedFiles(ctx, dir))
	return changed
}

func compareCommits(ctx context.Context, exec *gitcmd.Executor, dir, branch, remoteRefStr string) *style.Message {
	output, err := exec.GetRevListCount(ctx, dir, branch+"..."+remoteRefStr)
	if err != nil {
		return style.GitUnknownRevision()
	}

	caps := revListPair.FindStringSubmatch(strings.TrimSpace(output))
	if caps == nil {
		return nil
	}
	ahead, _ := strconv.Atoi(caps[1])
	behind, _ := strconv.Atoi(caps[2])
	return style.GitCommits(ahead, behind)
}
