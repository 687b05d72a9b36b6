package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gizzahub/fleetgit/pkg/manifest"
)

func mkGitDir(t *testing.T, root, rel string) {
	t.Helper()
	dir := filepath.Join(root, rel, ".git")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestCleanRemovesUndeclaredRepo(t *testing.T) {
	base := t.TempDir()
	mkGitDir(t, base, "kept")
	mkGitDir(t, base, "stray")

	result := Clean(base, []manifest.RepoConfig{{Local: "kept"}})

	if result.RemovedCount != 1 {
		t.Fatalf("RemovedCount = %d, want 1", result.RemovedCount)
	}
	if _, err := os.Stat(filepath.Join(base, "stray")); !os.IsNotExist(err) {
		t.Errorf("expected stray to be removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "kept", ".git")); err != nil {
		t.Errorf("expected kept to survive: %v", err)
	}
}

func TestCleanPreservesNestedDeclaredRepo(t *testing.T) {
	base := t.TempDir()
	mkGitDir(t, base, "group")
	mkGitDir(t, base, "group/inner")
	if err := os.WriteFile(filepath.Join(base, "group", "loose.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := Clean(base, []manifest.RepoConfig{{Local: "group/inner"}})

	if result.RemovedCount != 1 {
		t.Fatalf("RemovedCount = %d, want 1 (the undeclared outer \"group\" repo)", result.RemovedCount)
	}
	if _, err := os.Stat(filepath.Join(base, "group", "inner", ".git")); err != nil {
		t.Errorf("expected nested declared repo to survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "group", "loose.txt")); !os.IsNotExist(err) {
		t.Errorf("expected loose.txt outside the declared repo to be removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "group", ".git")); !os.IsNotExist(err) {
		t.Errorf("expected the outer group's own .git to be removed, stat err = %v", err)
	}
}

func TestCleanNoopWhenAllDeclared(t *testing.T) {
	base := t.TempDir()
	mkGitDir(t, base, "a")
	mkGitDir(t, base, "b")

	result := Clean(base, []manifest.RepoConfig{{Local: "a"}, {Local: "b"}})
	if result.RemovedCount != 0 {
		t.Errorf("RemovedCount = %d, want 0", result.RemovedCount)
	}
}
