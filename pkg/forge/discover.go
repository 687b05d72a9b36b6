// Package forge turns a forge provider's repository listing into
// manifest.RepoConfig entries, feeding discovery into the declarative
// manifest rather than bypassing the sync pipeline.
package forge

import (
	"context"
	"fmt"

	"github.com/gizzahub/fleetgit/pkg/manifest"
	"github.com/gizzahub/fleetgit/pkg/provider"
)

// CloneProtocol selects which URL field of a discovered repository feeds
// RepoConfig.Remote.
type CloneProtocol int

const (
	ProtoHTTPS CloneProtocol = iota
	ProtoSSH
)

// DiscoverOptions filters and shapes the repos a Discover call returns.
type DiscoverOptions struct {
	// Organization (or user, when IsUser) to list repos for.
	Organization string
	IsUser       bool

	IncludeArchived bool
	IncludeForks    bool
	IncludePrivate  bool

	Proto CloneProtocol

	// DefaultBranchOnly, when true, omits Branch from each generated
	// RepoConfig so it falls back to the manifest's default_branch.
	DefaultBranchOnly bool
}

// Discover lists repositories from p according to opts and converts each
// into a manifest.RepoConfig rooted at repo.Name.
func Discover(ctx context.Context, p provider.Provider, opts DiscoverOptions) ([]manifest.RepoConfig, error) {
	var repos []*provider.Repository
	var err error

	if opts.IsUser {
		repos, err = p.ListUserRepos(ctx, opts.Organization)
	} else {
		repos, err = p.ListOrganizationRepos(ctx, opts.Organization)
	}
	if err != nil {
		return nil, fmt.Errorf("forge: list repos for %s: %w", opts.Organization, err)
	}

	out := make([]manifest.RepoConfig, 0, len(repos))
	for _, r := range repos {
		if r.Archived && !opts.IncludeArchived {
			continue
		}
		if r.Fork && !opts.IncludeForks {
			continue
		}
		if r.Private && !opts.IncludePrivate {
			continue
		}

		rc := manifest.RepoConfig{
			Local:  r.Name,
			Remote: r.PreferredCloneURL(opts.Proto == ProtoSSH),
		}
		if !opts.DefaultBranchOnly {
			rc.Branch = r.DefaultBranch
		}
		out = append(out, rc)
	}
	return out, nil
}
