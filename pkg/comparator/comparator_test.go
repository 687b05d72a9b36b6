package comparator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
	"github.com/gizzahub/fleetgit/internal/testutil"
	"github.com/gizzahub/fleetgit/pkg/manifest"
)

func initRepoWithRemote(t *testing.T) (local, remote string) {
	t.Helper()
	remote = testutil.NewRemoteWithEmptyCommit(t)
	local = testutil.CloneRemote(t, remote)
	return local, remote
}

func TestCompareUpToDate(t *testing.T) {
	local, remote := initRepoWithRemote(t)
	executor := gitcmd.NewExecutor()
	repo := manifest.RepoConfig{Local: ".", Remote: remote, Branch: "main"}

	msg := Compare(context.Background(), executor, local, repo, "main", false)
	if !msg.Contains("already update to date.") {
		t.Errorf("expected up-to-date message, got %q", msg.PlainText())
	}
}

func TestCompareDirtyFiles(t *testing.T) {
	local, remote := initRepoWithRemote(t)
	dirty := filepath.Join(local, "new.txt")
	if err := os.WriteFile(dirty, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	executor := gitcmd.NewExecutor()
	repo := manifest.RepoConfig{Local: ".", Remote: remote, Branch: "main"}
	msg := Compare(context.Background(), executor, local, repo, "main", false)
	if !msg.Contains("changes(1)") {
		t.Errorf("expected changes(1) in message, got %q", msg.PlainText())
	}
}
