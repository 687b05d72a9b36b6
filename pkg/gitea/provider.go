package gitea

import (
	"context"
	"fmt"
	"sync"

	sdk "code.gitea.io/sdk/gitea"

	"github.com/gizzahub/fleetgit/pkg/provider"
	"github.com/gizzahub/fleetgit/pkg/ratelimit"
)

const pageSize = 50

// Provider implements provider.Provider against a Gitea instance.
type Provider struct {
	baseURL     string
	token       string
	client      *sdk.Client
	rateLimiter *ratelimit.Limiter
	mu          sync.RWMutex
}

// NewProvider creates a new Gitea provider for the instance at baseURL.
func NewProvider(token, baseURL string) *Provider {
	p := &Provider{
		baseURL:     baseURL,
		token:       token,
		rateLimiter: ratelimit.NewLimiter(1000), // Gitea has no published global limit
	}
	p.initClient(token)
	return p
}

func (p *Provider) initClient(token string) {
	opts := []sdk.ClientOption{}
	if token != "" {
		opts = append(opts, sdk.SetToken(token))
	}
	client, err := sdk.NewClient(p.baseURL, opts...)
	if err == nil {
		p.client = client
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "gitea"
}

// SetToken sets the authentication token.
func (p *Provider) SetToken(token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
	p.initClient(token)
	return nil
}

// ValidateToken validates the current token against the instance.
func (p *Provider) ValidateToken(ctx context.Context) (bool, error) {
	if p.token == "" || p.client == nil {
		return false, nil
	}
	if _, _, err := p.client.GetMyUserInfo(); err != nil {
		return false, nil
	}
	return true, nil
}

// ListOrganizationRepos lists all repositories in a Gitea organization.
func (p *Provider) ListOrganizationRepos(ctx context.Context, org string) ([]*provider.Repository, error) {
	if p.client == nil {
		return nil, fmt.Errorf("gitea: client not initialized")
	}
	var all []*provider.Repository
	for page := 1; ; page++ {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		repos, _, err := p.client.ListOrgRepos(org, sdk.ListOrgReposOptions{
			ListOptions: sdk.ListOptions{Page: page, PageSize: pageSize},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list repos for org %s: %w", org, err)
		}
		for _, r := range repos {
			all = append(all, convertRepo(r))
		}
		if len(repos) < pageSize {
			break
		}
	}
	return all, nil
}

// ListUserRepos lists all repositories owned by a user.
func (p *Provider) ListUserRepos(ctx context.Context, user string) ([]*provider.Repository, error) {
	if p.client == nil {
		return nil, fmt.Errorf("gitea: client not initialized")
	}
	var all []*provider.Repository
	for page := 1; ; page++ {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		repos, _, err := p.client.ListUserRepos(user, sdk.ListReposOptions{
			ListOptions: sdk.ListOptions{Page: page, PageSize: pageSize},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list repos for user %s: %w", user, err)
		}
		for _, r := range repos {
			all = append(all, convertRepo(r))
		}
		if len(repos) < pageSize {
			break
		}
	}
	return all, nil
}

// GetRepository fetches a single repository.
func (p *Provider) GetRepository(ctx context.Context, owner, repo string) (*provider.Repository, error) {
	if p.client == nil {
		return nil, fmt.Errorf("gitea: client not initialized")
	}
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	r, _, err := p.client.GetRepo(owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repo %s/%s: %w", owner, repo, err)
	}
	return convertRepo(r), nil
}

// ListOrganizations lists organizations the authenticated user belongs to.
func (p *Provider) ListOrganizations(ctx context.Context) ([]*provider.Organization, error) {
	if p.client == nil {
		return nil, fmt.Errorf("gitea: client not initialized")
	}
	var all []*provider.Organization
	for page := 1; ; page++ {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		orgs, _, err := p.client.ListMyOrgs(sdk.ListOrgsOptions{
			ListOptions: sdk.ListOptions{Page: page, PageSize: pageSize},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list organizations: %w", err)
		}
		for _, o := range orgs {
			all = append(all, &provider.Organization{
				Name:        o.UserName,
				Description: o.Description,
				URL:         o.Website,
			})
		}
		if len(orgs) < pageSize {
			break
		}
	}
	return all, nil
}

// GetRateLimit reports the locally tracked request budget; Gitea has no
// published global rate-limit API to query directly.
func (p *Provider) GetRateLimit(ctx context.Context) (*provider.RateLimit, error) {
	remaining, limit, resetTime := p.rateLimiter.Status()
	return &provider.RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     resetTime,
		Used:      limit - remaining,
	}, nil
}

func convertRepo(r *sdk.Repository) *provider.Repository {
	return &provider.Repository{
		Name:          r.Name,
		FullName:      r.FullName,
		CloneURL:      r.CloneURL,
		SSHURL:        r.SSHURL,
		HTMLURL:       r.HTMLURL,
		Description:   r.Description,
		DefaultBranch: r.DefaultBranch,
		Private:       r.Private,
		Archived:      r.Archived,
		Fork:          r.Fork,
		Size:          r.Size,
		Topics:        r.Topics,
		CreatedAt:     r.Created,
		UpdatedAt:     r.Updated,
	}
}
