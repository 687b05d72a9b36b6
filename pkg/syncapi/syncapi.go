// Package syncapi is the public entry point: init_repo, snapshot_repo,
// fetch_repos, sync_repo, clean_repo, and track, each loading (or
// building) a manifest, selecting the repos an invocation applies to,
// and driving them through the scheduler.
package syncapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
	"github.com/gizzahub/fleetgit/pkg/comparator"
	"github.com/gizzahub/fleetgit/pkg/manifest"
	"github.com/gizzahub/fleetgit/pkg/pipeline"
	"github.com/gizzahub/fleetgit/pkg/progress"
	"github.com/gizzahub/fleetgit/pkg/scanner"
	"github.com/gizzahub/fleetgit/pkg/scheduler"
	"github.com/gizzahub/fleetgit/pkg/selector"
	"github.com/gizzahub/fleetgit/pkg/style"
)

// maxSnapshotDepth bounds how far SnapshotRepo descends looking for
// working copies under its root path.
const maxSnapshotDepth = 8

// Options gathers the flags common to every batch operation.
type Options struct {
	Path         string
	ManifestPath string
	Concurrency  int
	Silent       bool
	Ignore       []string
	Labels       []string
	Hard         bool
	Stash        bool
	NoTrack      bool
	NoCheckout   bool
	Depth        int
	RetryPolicy  gitcmd.RetryPolicy
}

func (o Options) resolveManifestPath() string {
	if o.ManifestPath != "" {
		return o.ManifestPath
	}
	return filepath.Join(o.Path, manifest.DefaultFileName)
}

func (o Options) resolveRetryPolicy() gitcmd.RetryPolicy {
	if o.RetryPolicy.Attempts <= 0 {
		return gitcmd.DefaultRetryPolicy
	}
	return o.RetryPolicy
}

func (o Options) stashMode() pipeline.StashMode {
	switch {
	case o.Hard:
		return pipeline.StashHard
	case o.Stash:
		return pipeline.StashAlways
	default:
		return pipeline.StashNormal
	}
}

// SyncRepos loads the manifest and drives every selected repo through
// init-or-reuse, fetch, and checkout/reset, reporting lifecycle events
// through sink.
func SyncRepos(ctx context.Context, exec *gitcmd.Executor, opts Options, sink progress.Sink) (style.Message, error) {
	if opts.Hard && opts.Stash {
		return style.Message{}, fmt.Errorf("sync: hard and stash modes cannot both be set")
	}

	m, err := manifest.Load(opts.resolveManifestPath())
	if err != nil {
		return style.Message{}, err
	}

	if opts.Hard {
		if _, err := CleanRepos(opts.Path, m.Repos); err != nil {
			return style.Message{}, err
		}
	}

	repos := selector.Select(m.Repos, opts.Ignore, opts.Labels)
	mode := opts.stashMode()

	task := func(ctx context.Context, sel selector.Selected, onUpdate func(string)) (style.Message, error) {
		res, err := pipeline.Run(ctx, exec, opts.Path, sel.Repo, m.DefaultBranch, mode, opts.NoCheckout, opts.Depth, opts.resolveRetryPolicy(), onUpdate)
		if err != nil {
			return style.Message{}, err
		}

		msg := style.New()
		if !opts.Silent {
			msg = comparator.Compare(ctx, exec, opts.Path, sel.Repo, m.DefaultBranch, false)
		}

		if res.Stash != nil {
			msg = msg.TryJoin(joinable(style.GitStash(res.Stash.RelPath, res.Stash.Message)))
		}
		if !opts.NoTrack {
			trackMsg, trackErr := pipeline.Track(ctx, exec, opts.Path, sel.Repo, m.DefaultBranch)
			if trackErr == nil {
				msg = msg.Join(trackMsg)
			}
		}
		return msg, nil
	}

	result := scheduler.Run(ctx, opts.Concurrency, repos, sink, task)
	return style.OpsErrors("sync", len(result.Failures)), batchErr("sync", result)
}

// FetchRepos loads the manifest and fetches every selected repo without
// moving its working copy.
func FetchRepos(ctx context.Context, exec *gitcmd.Executor, opts Options, sink progress.Sink) (style.Message, error) {
	m, err := manifest.Load(opts.resolveManifestPath())
	if err != nil {
		return style.Message{}, err
	}

	repos := selector.Select(m.Repos, opts.Ignore, opts.Labels)

	task := func(ctx context.Context, sel selector.Selected, onUpdate func(string)) (style.Message, error) {
		fullPath := filepath.Join(opts.Path, sel.Repo.DisplayLocal())
		resolved := sel.Repo.WithDefaultBranch(m.DefaultBranch)

		if err := exec.UpdateRemoteURL(ctx, fullPath, resolved.Remote); err != nil {
			return style.Message{}, err
		}
		if err := pipeline.Fetch(ctx, exec, fullPath, resolved, opts.Depth, opts.resolveRetryPolicy(), func(line string) { onUpdate("fetch: " + line) }); err != nil {
			return style.Message{}, err
		}
		if opts.Silent {
			return style.New(), nil
		}
		return comparator.Compare(ctx, exec, opts.Path, sel.Repo, m.DefaultBranch, false), nil
	}

	result := scheduler.Run(ctx, opts.Concurrency, repos, sink, task)
	return style.OpsErrors("fetch", len(result.Failures)), batchErr("fetch", result)
}

// StatusRepos loads the manifest and reports each selected repo's drift
// against its configured remote ref without touching the working copy.
func StatusRepos(ctx context.Context, exec *gitcmd.Executor, opts Options, sink progress.Sink) (style.Message, error) {
	m, err := manifest.Load(opts.resolveManifestPath())
	if err != nil {
		return style.Message{}, err
	}

	repos := selector.Select(m.Repos, opts.Ignore, opts.Labels)

	task := func(ctx context.Context, sel selector.Selected, onUpdate func(string)) (style.Message, error) {
		return comparator.Compare(ctx, exec, opts.Path, sel.Repo, m.DefaultBranch, false), nil
	}

	result := scheduler.Run(ctx, opts.Concurrency, repos, sink, task)
	return style.OpsErrors("status", len(result.Failures)), batchErr("status", result)
}

// TrackRepos points every selected repo's local branch at its configured
// upstream.
func TrackRepos(ctx context.Context, exec *gitcmd.Executor, opts Options, sink progress.Sink) (style.Message, error) {
	m, err := manifest.Load(opts.resolveManifestPath())
	if err != nil {
		return style.Message{}, err
	}

	repos := selector.Select(m.Repos, opts.Ignore, nil)

	task := func(ctx context.Context, sel selector.Selected, onUpdate func(string)) (style.Message, error) {
		return pipeline.Track(ctx, exec, opts.Path, sel.Repo, m.DefaultBranch)
	}

	result := scheduler.Run(ctx, opts.Concurrency, repos, sink, task)
	return style.New(), batchErr("track", result)
}

// CleanRepos removes working copies under path that no longer correspond
// to a manifest entry.
func CleanRepos(path string, repos []manifest.RepoConfig) (style.Message, error) {
	if _, err := os.Stat(path); err != nil {
		return style.Message{}, fmt.Errorf("clean: %w", err)
	}
	result := pipeline.Clean(path, repos)
	if len(result.Failures) > 0 {
		var names []string
		for _, f := range result.Failures {
			names = append(names, f.RelPath)
		}
		return style.Message{}, fmt.Errorf("clean: failed to remove %s", strings.Join(names, ", "))
	}
	return style.RemoveRepoSucc(result.RemovedCount), nil
}

// InitOptions configures InitRepo.
type InitOptions struct {
	Path         string
	ManifestPath string
	Force        bool
}

// InitRepo writes an empty manifest at opts.ManifestPath (or
// path/.gitrepos), refusing to overwrite an existing one unless Force.
func InitRepo(opts InitOptions) (style.Message, error) {
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(opts.Path, manifest.DefaultFileName)
	}

	if _, err := os.Stat(manifestPath); err == nil && !opts.Force {
		return style.DirAlreadyInited(opts.Path), nil
	}

	m := &manifest.Manifest{DefaultBranch: "main"}
	if err := manifest.Save(manifestPath, m); err != nil {
		return style.Message{}, err
	}
	return style.UpdateConfigSucc(), nil
}

// SnapshotType selects what a discovered repo's manifest entry pins to.
type SnapshotType int

const (
	SnapshotCommit SnapshotType = iota
	SnapshotBranch
)

// SnapshotOptions configures SnapshotRepo.
type SnapshotOptions struct {
	Path         string
	ManifestPath string
	Force        bool
	Type         SnapshotType
	Ignore       []string
}

// SnapshotRepo walks path for working copies and writes a manifest
// pinning each to its current commit (or tracked branch).
func SnapshotRepo(ctx context.Context, exec *gitcmd.Executor, opts SnapshotOptions) (style.Message, error) {
	info, err := os.Stat(opts.Path)
	if err != nil || !info.IsDir() {
		return style.Message{}, fmt.Errorf("snapshot: %w", err)
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(opts.Path, manifest.DefaultFileName)
	}
	if _, err := os.Stat(manifestPath); err == nil && !opts.Force {
		return style.Message{}, fmt.Errorf("snapshot: manifest already exists at %s (use force to overwrite)", manifestPath)
	}

	s := &scanner.GitRepoScanner{
		RootPath:        opts.Path,
		MaxDepth:        maxSnapshotDepth,
		ExcludePatterns: opts.Ignore,
	}
	scanned, err := s.Scan(ctx)
	if err != nil {
		return style.Message{}, fmt.Errorf("snapshot: %w", err)
	}

	byPath := make(map[string]*scanner.ScannedRepo, len(scanned))
	for _, sr := range scanned {
		byPath[sr.Path] = sr
	}

	found := scanner.ToManifestRepos(opts.Path, scanned)
	for i := range found {
		sr, ok := byPath[filepath.Join(opts.Path, filepath.FromSlash(found[i].Local))]
		if !ok {
			continue
		}
		rc := found[i]

		switch opts.Type {
		case SnapshotCommit:
			if commit, cerr := exec.GetCurrentCommit(ctx, sr.Path); cerr == nil {
				rc.Commit = commit
			}
		case SnapshotBranch:
			if tracking, terr := exec.GetTrackingBranch(ctx, sr.Path); terr == nil {
				if _, branch, ok := strings.Cut(tracking, "/"); ok {
					rc.Branch = branch
				}
			} else if sr.Branch != "" {
				rc.Branch = sr.Branch
			}
		}

		if sparse, serr := exec.SparseCheckoutList(ctx, sr.Path); serr == nil && len(sparse) > 0 {
			rc.Sparse = sparse
		}

		found[i] = rc
	}

	sort.Slice(found, func(i, j int) bool {
		return strings.ToLower(found[i].DisplayLocal()) < strings.ToLower(found[j].DisplayLocal())
	})

	m := &manifest.Manifest{DefaultBranch: "develop", Repos: found}
	if err := manifest.Save(manifestPath, m); err != nil {
		return style.Message{}, err
	}
	return style.UpdateConfigSucc(), nil
}

func batchErr(op string, result scheduler.Result) error {
	if len(result.Failures) == 0 {
		return nil
	}
	var parts []string
	for _, f := range result.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Repo.Repo.DisplayLocal(), f.Err))
	}
	return fmt.Errorf("%s failed (%d errors): %s", op, len(result.Failures), strings.Join(parts, "; "))
}

func joinable(m style.Message) *style.Message {
	return &m
}
