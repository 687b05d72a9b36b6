// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"testing"
	"time"
)

func TestRepository(t *testing.T) {
	now := time.Now()
	repo := &Repository{
		Name:          "test-repo",
		FullName:      "org/test-repo",
		CloneURL:      "https://github.com/org/test-repo.git",
		SSHURL:        "git@github.com:org/test-repo.git",
		HTMLURL:       "https://github.com/org/test-repo",
		Description:   "A test repository",
		DefaultBranch: "main",
		Private:       false,
		Archived:      false,
		Fork:          false,
		Disabled:      false,
		Language:      "Go",
		Size:          1024,
		Topics:        []string{"cli", "git"},
		Visibility:    "public",
		CreatedAt:     now,
		UpdatedAt:     now,
		PushedAt:      now,
	}

	if repo.Name != "test-repo" {
		t.Errorf("Name = %q, want %q", repo.Name, "test-repo")
	}
	if repo.FullName != "org/test-repo" {
		t.Errorf("FullName = %q, want %q", repo.FullName, "org/test-repo")
	}
	if len(repo.Topics) != 2 {
		t.Errorf("Topics length = %d, want 2", len(repo.Topics))
	}
}

func TestRepositoryPreferredCloneURL(t *testing.T) {
	withSSH := &Repository{CloneURL: "https://host/r.git", SSHURL: "git@host:r.git"}
	if got := withSSH.PreferredCloneURL(true); got != "git@host:r.git" {
		t.Errorf("PreferredCloneURL(true) = %q, want SSH URL", got)
	}
	if got := withSSH.PreferredCloneURL(false); got != "https://host/r.git" {
		t.Errorf("PreferredCloneURL(false) = %q, want HTTPS URL", got)
	}

	noSSH := &Repository{CloneURL: "https://host/r.git"}
	if got := noSSH.PreferredCloneURL(true); got != "https://host/r.git" {
		t.Errorf("PreferredCloneURL(true) with no SSH URL = %q, want HTTPS fallback", got)
	}
}

func TestOrganization(t *testing.T) {
	org := &Organization{
		Name:        "test-org",
		Description: "A test organization",
		URL:         "https://github.com/test-org",
	}

	if org.Name != "test-org" {
		t.Errorf("Name = %q, want %q", org.Name, "test-org")
	}
}

func TestRateLimit(t *testing.T) {
	reset := time.Now().Add(time.Hour)
	rl := &RateLimit{
		Limit:     5000,
		Remaining: 4500,
		Reset:     reset,
		Used:      500,
	}

	if rl.Limit != 5000 {
		t.Errorf("Limit = %d, want 5000", rl.Limit)
	}
	if rl.Remaining != 4500 {
		t.Errorf("Remaining = %d, want 4500", rl.Remaining)
	}
	if rl.Used != 500 {
		t.Errorf("Used = %d, want 500", rl.Used)
	}
}

func TestListOptions(t *testing.T) {
	opts := ListOptions{
		Page:    1,
		PerPage: 100,
	}

	if opts.Page != 1 {
		t.Errorf("Page = %d, want 1", opts.Page)
	}
	if opts.PerPage != 100 {
		t.Errorf("PerPage = %d, want 100", opts.PerPage)
	}
}
