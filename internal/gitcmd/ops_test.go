package gitcmd

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-b", "main"},
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if err := cmd.Run(); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{"add", "."},
		{"commit", "-m", "init"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if err := cmd.Run(); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	return dir
}

func TestExecutorIsRepository(t *testing.T) {
	dir := initTestRepo(t)
	e := NewExecutor()
	ctx := context.Background()

	ok, err := e.IsRepository(ctx, dir)
	if err != nil || !ok {
		t.Fatalf("IsRepository(%s) = %v, %v, want true, nil", dir, ok, err)
	}

	ok, err = e.IsRepository(ctx, t.TempDir())
	if err != nil || ok {
		t.Fatalf("IsRepository(empty) = %v, %v, want false, nil", ok, err)
	}
}

func TestExecutorGetCurrentBranch(t *testing.T) {
	dir := initTestRepo(t)
	e := NewExecutor()
	ctx := context.Background()

	branch, err := e.GetCurrentBranch(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if branch != "main" {
		t.Errorf("GetCurrentBranch() = %q, want %q", branch, "main")
	}
}

func TestExecutorStashRoundTrip(t *testing.T) {
	dir := initTestRepo(t)
	e := NewExecutor()
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("dirty"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := e.Stash(ctx, dir)
	if err != nil {
		t.Fatalf("Stash: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty stash output for a dirty tree")
	}

	if _, err := e.StashPop(ctx, dir); err != nil {
		t.Fatalf("StashPop: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "dirty" {
		t.Errorf("README.md = %q after pop, want %q", data, "dirty")
	}
}

func TestRunStreamedCollectsProgress(t *testing.T) {
	dir := initTestRepo(t)
	e := NewExecutor()
	ctx := context.Background()

	var lines []string
	_, lastLine, err := e.RunStreamed(ctx, dir, func(l string) { lines = append(lines, l) }, "status")
	if err != nil {
		t.Fatalf("RunStreamed: %v", err)
	}
	_ = lastLine
}

func TestStripANSIAndCollapseWhitespace(t *testing.T) {
	in := "\x1b[31mhello   \tworld\x1b[0m"
	got := collapseWhitespace(stripANSI(in))
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}
