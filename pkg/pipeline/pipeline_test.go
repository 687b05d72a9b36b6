package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
	"github.com/gizzahub/fleetgit/internal/testutil"
	"github.com/gizzahub/fleetgit/pkg/manifest"
)

func TestRunClonesIntoEmptyDir(t *testing.T) {
	remote := testutil.NewRemoteWithFile(t, "a.txt")
	base := t.TempDir()

	repo := manifest.RepoConfig{Local: "sub", Remote: remote, Branch: "main"}
	exec := gitcmd.NewExecutor()

	var statuses []string
	_, err := Run(context.Background(), exec, base, repo, "main", StashNormal, false, 0, gitcmd.DefaultRetryPolicy, func(s string) {
		statuses = append(statuses, s)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(base, "sub", "a.txt")); statErr != nil {
		t.Errorf("expected a.txt to be checked out: %v", statErr)
	}
	if len(statuses) == 0 {
		t.Error("expected onUpdate to be called")
	}
}

func TestRunHardDiscardsLocalFile(t *testing.T) {
	remote := testutil.NewRemoteWithFile(t, "a.txt")
	base := t.TempDir()
	repo := manifest.RepoConfig{Local: ".", Remote: remote, Branch: "main"}
	exec := gitcmd.NewExecutor()

	if _, err := Run(context.Background(), exec, base, repo, "main", StashNormal, false, 0, gitcmd.DefaultRetryPolicy, nil); err != nil {
		t.Fatalf("initial Run: %v", err)
	}

	stray := filepath.Join(base, "untracked.txt")
	if err := os.WriteFile(stray, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(context.Background(), exec, base, repo, "main", StashHard, false, 0, gitcmd.DefaultRetryPolicy, nil); err != nil {
		t.Fatalf("hard Run: %v", err)
	}

	if _, err := os.Stat(stray); !os.IsNotExist(err) {
		t.Errorf("expected untracked file to be cleaned, stat err = %v", err)
	}
}

func TestTrackSetsUpstream(t *testing.T) {
	remote := testutil.NewRemoteWithFile(t, "a.txt")
	base := t.TempDir()
	repo := manifest.RepoConfig{Local: ".", Remote: remote, Branch: "main"}
	exec := gitcmd.NewExecutor()

	if _, err := Run(context.Background(), exec, base, repo, "main", StashNormal, false, 0, gitcmd.DefaultRetryPolicy, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	msg, err := Track(context.Background(), exec, base, repo, "main")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if !msg.Contains("tracking") {
		t.Errorf("expected tracking message, got %q", msg.PlainText())
	}
}
