package syncapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
	"github.com/gizzahub/fleetgit/internal/testutil"
	"github.com/gizzahub/fleetgit/pkg/manifest"
)

func TestInitRepoWritesManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := InitRepo(InitOptions{Path: dir})
	if err != nil {
		t.Fatalf("InitRepo: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, manifest.DefaultFileName)); statErr != nil {
		t.Errorf("expected manifest to be written: %v", statErr)
	}
}

func TestInitRepoRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	if _, err := InitRepo(InitOptions{Path: dir}); err != nil {
		t.Fatalf("InitRepo: %v", err)
	}
	msg, err := InitRepo(InitOptions{Path: dir})
	if err != nil {
		t.Fatalf("InitRepo second call: %v", err)
	}
	if !msg.Contains("already inited") {
		t.Errorf("expected already-inited message, got %q", msg.PlainText())
	}
}

func TestSyncReposClonesDeclaredRepo(t *testing.T) {
	remote := testutil.NewRemoteWithFile(t, "a.txt")
	base := t.TempDir()

	m := &manifest.Manifest{
		DefaultBranch: "main",
		Repos:         []manifest.RepoConfig{{Local: "sub", Remote: remote}},
	}
	manifestPath := filepath.Join(base, manifest.DefaultFileName)
	if err := manifest.Save(manifestPath, m); err != nil {
		t.Fatalf("Save manifest: %v", err)
	}

	opts := Options{Path: base, ManifestPath: manifestPath, Concurrency: 2, Silent: true}
	_, err := SyncRepos(context.Background(), gitcmd.NewExecutor(), opts, nil)
	if err != nil {
		t.Fatalf("SyncRepos: %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(base, "sub", "a.txt")); statErr != nil {
		t.Errorf("expected sub/a.txt to be checked out: %v", statErr)
	}
}

func TestSnapshotRepoDiscoversExistingRepo(t *testing.T) {
	remote := testutil.NewRemoteWithFile(t, "a.txt")
	base := t.TempDir()
	testutil.RunGit(t, base, "clone", remote, "sub")
	testutil.RunGit(t, filepath.Join(base, "sub"), "config", "user.email", "test@example.com")
	testutil.RunGit(t, filepath.Join(base, "sub"), "config", "user.name", "test")

	msg, err := SnapshotRepo(context.Background(), gitcmd.NewExecutor(), SnapshotOptions{Path: base, Type: SnapshotCommit})
	if err != nil {
		t.Fatalf("SnapshotRepo: %v", err)
	}
	if !msg.Contains("succeed") {
		t.Errorf("expected success message, got %q", msg.PlainText())
	}

	loaded, err := manifest.Load(filepath.Join(base, manifest.DefaultFileName))
	if err != nil {
		t.Fatalf("Load snapshot manifest: %v", err)
	}
	if len(loaded.Repos) != 1 || loaded.Repos[0].Local != "sub" || loaded.Repos[0].Commit == "" {
		t.Errorf("unexpected snapshot repos: %+v", loaded.Repos)
	}
}

func TestStatusReposReportsCleanWorkingCopy(t *testing.T) {
	remote := testutil.TempGitRepoWithBranch(t, "main")
	base := t.TempDir()

	m := &manifest.Manifest{
		DefaultBranch: "main",
		Repos:         []manifest.RepoConfig{{Local: "sub", Remote: remote}},
	}
	manifestPath := filepath.Join(base, manifest.DefaultFileName)
	if err := manifest.Save(manifestPath, m); err != nil {
		t.Fatalf("Save manifest: %v", err)
	}

	exec := gitcmd.NewExecutor()
	opts := Options{Path: base, ManifestPath: manifestPath, Concurrency: 2, Silent: true}
	if _, err := SyncRepos(context.Background(), exec, opts, nil); err != nil {
		t.Fatalf("SyncRepos: %v", err)
	}

	msg, err := StatusRepos(context.Background(), exec, opts, nil)
	if err != nil {
		t.Fatalf("StatusRepos: %v", err)
	}
	if msg.PlainText() == "" {
		t.Errorf("expected non-empty status message")
	}
}
