// Package manifest loads, serializes, and atomically persists the
// `.gitrepos` fleet manifest.
package manifest

import (
	"sort"
	"strings"
)

// RepoConfig is one manifest entry.
type RepoConfig struct {
	Local  string   `toml:"local"`
	Remote string   `toml:"remote"`
	Branch string   `toml:"branch,omitempty"`
	Tag    string   `toml:"tag,omitempty"`
	Commit string   `toml:"commit,omitempty"`
	Sparse []string `toml:"sparse,omitempty"`
	Labels []string `toml:"labels,omitempty"`
}

// HasExplicitRef reports whether the repo declares its own commit, tag,
// or branch (as opposed to relying on the manifest default branch).
func (r RepoConfig) HasExplicitRef() bool {
	return r.Commit != "" || r.Tag != "" || r.Branch != ""
}

// DisplayLocal normalizes Local to the forward-slash "." form used at
// every system boundary.
func (r RepoConfig) DisplayLocal() string {
	if r.Local == "" {
		return "."
	}
	return r.Local
}

// Manifest is the parsed `.gitrepos` root.
type Manifest struct {
	Version       string       `toml:"version,omitempty"`
	DefaultBranch string       `toml:"default_branch,omitempty"`
	DefaultRemote string       `toml:"default_remote,omitempty"`
	Repos         []RepoConfig `toml:"repos"`
}

// SortedRepos returns a copy of m.Repos sorted by lowercase Local, the
// canonical on-disk and serialization order.
func (m *Manifest) SortedRepos() []RepoConfig {
	sorted := make([]RepoConfig, len(m.Repos))
	copy(sorted, m.Repos)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].DisplayLocal()) < strings.ToLower(sorted[j].DisplayLocal())
	})
	return sorted
}
