// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package github implements the provider interface for GitHub.
//
// This package provides GitHub-specific API integration for repository
// operations: listing and fetching repositories, and listing organizations.
//
// # Features
//
//   - Repository listing (org and user)
//   - Token validation
//   - Rate limit management
//   - Pagination handling
//
// # Usage
//
//	provider := github.NewProvider(token)
//	repos, err := provider.ListOrganizationRepos(ctx, "myorg")
package github
