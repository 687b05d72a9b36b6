package forge

import (
	"context"
	"testing"

	"github.com/gizzahub/fleetgit/pkg/provider"
)

type fakeProvider struct {
	repos []*provider.Repository
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListOrganizationRepos(ctx context.Context, org string) ([]*provider.Repository, error) {
	return f.repos, nil
}

func (f *fakeProvider) ListUserRepos(ctx context.Context, user string) ([]*provider.Repository, error) {
	return f.repos, nil
}

func (f *fakeProvider) GetRepository(ctx context.Context, owner, repo string) (*provider.Repository, error) {
	return nil, nil
}

func (f *fakeProvider) ListOrganizations(ctx context.Context) ([]*provider.Organization, error) {
	return nil, nil
}

func (f *fakeProvider) GetRateLimit(ctx context.Context) (*provider.RateLimit, error) {
	return nil, nil
}

func TestDiscoverFiltersArchivedForksPrivate(t *testing.T) {
	p := &fakeProvider{repos: []*provider.Repository{
		{Name: "ok", CloneURL: "https://host/ok.git", DefaultBranch: "main"},
		{Name: "arch", CloneURL: "https://host/arch.git", Archived: true},
		{Name: "fork", CloneURL: "https://host/fork.git", Fork: true},
		{Name: "priv", CloneURL: "https://host/priv.git", Private: true},
	}}

	got, err := Discover(context.Background(), p, DiscoverOptions{Organization: "acme"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 1 || got[0].Local != "ok" {
		t.Errorf("expected only \"ok\" to survive filtering, got %+v", got)
	}
}

func TestDiscoverPrefersSSHWhenRequested(t *testing.T) {
	p := &fakeProvider{repos: []*provider.Repository{
		{Name: "r", CloneURL: "https://host/r.git", SSHURL: "git@host:r.git"},
	}}

	got, err := Discover(context.Background(), p, DiscoverOptions{Organization: "acme", Proto: ProtoSSH})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 1 || got[0].Remote != "git@host:r.git" {
		t.Errorf("expected SSH URL, got %+v", got)
	}
}

func TestDiscoverDefaultBranchOnlyOmitsBranch(t *testing.T) {
	p := &fakeProvider{repos: []*provider.Repository{
		{Name: "r", CloneURL: "https://host/r.git", DefaultBranch: "main"},
	}}

	got, err := Discover(context.Background(), p, DiscoverOptions{Organization: "acme", DefaultBranchOnly: true})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got[0].Branch != "" {
		t.Errorf("expected Branch to be empty, got %q", got[0].Branch)
	}
}
