// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package testutil gives package tests a consistent way to stand up real
// git repositories and remotes, since the sync engine is exercised against
// the actual git binary rather than a mock.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RunGit runs a git subcommand in dir, failing the test on error.
func RunGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// NewRemoteWithFile creates a bare remote repository seeded with a single
// commit that adds filename, and returns the remote's path.
func NewRemoteWithFile(t *testing.T, filename string) string {
	t.Helper()
	remote := t.TempDir()
	RunGit(t, remote, "init", "--bare", "-b", "main")

	seed := t.TempDir()
	RunGit(t, seed, "init", "-b", "main")
	RunGit(t, seed, "config", "user.email", "test@example.com")
	RunGit(t, seed, "config", "user.name", "test")
	if err := os.WriteFile(filepath.Join(seed, filename), []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	RunGit(t, seed, "add", ".")
	RunGit(t, seed, "commit", "-m", "initial")
	RunGit(t, seed, "remote", "add", "origin", remote)
	RunGit(t, seed, "push", "origin", "main")
	return remote
}

// NewRemoteWithEmptyCommit creates a bare remote repository seeded with a
// single empty commit, and returns the remote's path.
func NewRemoteWithEmptyCommit(t *testing.T) string {
	t.Helper()
	remote := t.TempDir()
	RunGit(t, remote, "init", "--bare", "-b", "main")

	seed := t.TempDir()
	RunGit(t, seed, "init", "-b", "main")
	RunGit(t, seed, "config", "user.email", "test@example.com")
	RunGit(t, seed, "config", "user.name", "test")
	RunGit(t, seed, "commit", "--allow-empty", "-m", "initial")
	RunGit(t, seed, "remote", "add", "origin", remote)
	RunGit(t, seed, "push", "origin", "main")
	return remote
}

// CloneRemote clones remote into a new temp directory and configures a
// test commit identity, returning the local working copy's path.
func CloneRemote(t *testing.T, remote string) string {
	t.Helper()
	local := t.TempDir()
	RunGit(t, local, "clone", remote, ".")
	RunGit(t, local, "config", "user.email", "test@example.com")
	RunGit(t, local, "config", "user.name", "test")
	return local
}

// TempGitRepo creates a temporary git repository.
// Returns the repository path. Automatically cleaned up.
func TempGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	// Initialize git repo.
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init git repo: %v", err)
	}

	// Configure git user for commits.
	cmd = exec.Command("git", "config", "user.email", "test@test.com")
	cmd.Dir = dir
	_ = cmd.Run() // Ignore config errors in test setup

	cmd = exec.Command("git", "config", "user.name", "Test")
	cmd.Dir = dir
	_ = cmd.Run() // Ignore config errors in test setup

	return dir
}

// TempGitRepoWithCommit creates a temp git repo with an initial commit.
func TempGitRepoWithCommit(t *testing.T) string {
	t.Helper()
	dir := TempGitRepo(t)

	// Create a file and commit.
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test"), 0o644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}

	cmd := exec.Command("git", "add", ".")
	cmd.Dir = dir
	_ = cmd.Run() // Ignore add errors in test setup

	cmd = exec.Command("git", "commit", "-m", "Initial commit")
	cmd.Dir = dir
	_ = cmd.Run() // Ignore commit errors in test setup

	return dir
}

// TempGitRepoWithBranch creates a temp git repo with an initial commit and a branch.
func TempGitRepoWithBranch(t *testing.T, branchName string) string {
	t.Helper()
	dir := TempGitRepoWithCommit(t)

	cmd := exec.Command("git", "checkout", "-b", branchName)
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create branch %s: %v", branchName, err)
	}

	return dir
}
