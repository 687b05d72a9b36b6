// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package scanner walks a directory tree for existing git working copies,
// reading their .git/config and HEAD directly rather than shelling out to
// git, so taking a snapshot of a large fleet of checkouts stays cheap.
//
// # Usage
//
//	s := &scanner.GitRepoScanner{RootPath: "/path/to/workspace", MaxDepth: 2}
//	repos, err := s.Scan(ctx)
//	entries := scanner.ToManifestRepos(s.RootPath, repos)
package scanner
