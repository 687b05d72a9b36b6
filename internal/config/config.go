// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gizzahub/fleetgit/internal/gitcmd"
)

// Config is the process-level configuration read from a fleetgit.yaml
// file: forge credentials plus the defaults batch operations fall back
// to when a flag isn't set.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	GitLab GitLabConfig `yaml:"gitlab"`
	Gitea  GiteaConfig  `yaml:"gitea"`
	Sync   SyncConfig   `yaml:"sync"`
}

// GitHubConfig holds a GitHub (or GitHub Enterprise) token and base URL.
type GitHubConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// GitLabConfig holds a GitLab token and base URL.
type GitLabConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// GiteaConfig holds a Gitea/Forgejo token and base URL.
type GiteaConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// SyncConfig holds process-level sync defaults. discover falls back to
// the Include* fields when its matching --include-* flag is left unset,
// and the batch commands take their fetch retry policy from the retry
// fields; TargetPath and Parallel are parsed but no command reads them.
type SyncConfig struct {
	TargetPath      string `yaml:"target_path"`
	Parallel        int    `yaml:"parallel"`
	IncludeArchived bool   `yaml:"include_archived"`
	IncludeForks    bool   `yaml:"include_forks"`
	IncludePrivate  bool   `yaml:"include_private"`

	// RetryAttempts and RetryDelayMillis bound how many times, and how
	// far apart, a failing fetch is retried before the repo is reported
	// as failed. Zero or negative values fall back to
	// gitcmd.DefaultRetryPolicy.
	RetryAttempts    int `yaml:"retry_attempts"`
	RetryDelayMillis int `yaml:"retry_delay_ms"`
}

// RetryPolicy translates the configured retry defaults into a
// gitcmd.RetryPolicy, substituting gitcmd.DefaultRetryPolicy's fields
// for anything left at its zero value.
func (s SyncConfig) RetryPolicy() gitcmd.RetryPolicy {
	policy := gitcmd.DefaultRetryPolicy
	if s.RetryAttempts > 0 {
		policy.Attempts = s.RetryAttempts
	}
	if s.RetryDelayMillis > 0 {
		policy.Delay = time.Duration(s.RetryDelayMillis) * time.Millisecond
	}
	return policy
}

// DefaultConfig returns the configuration fleetgit runs with absent any
// fleetgit.yaml file.
func DefaultConfig() *Config {
	return &Config{
		Sync: SyncConfig{
			TargetPath:       ".",
			Parallel:         4,
			IncludeArchived:  false,
			IncludeForks:     false,
			IncludePrivate:   true,
			RetryAttempts:    gitcmd.DefaultRetryPolicy.Attempts,
			RetryDelayMillis: int(gitcmd.DefaultRetryPolicy.Delay / time.Millisecond),
		},
	}
}

// Load reads and parses the configuration file at path, then applies
// environment-variable token overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadDefault looks for a fleetgit config file in the working directory
// and the user's config home, in that order, falling back to
// DefaultConfig (with env overrides applied) if none exists.
func LoadDefault() (*Config, error) {
	locations := []string{
		"fleetgit.yaml",
		".fleetgit.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "fleetgit", "config.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return Load(loc)
		}
	}

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}
	if token := os.Getenv("GITLAB_TOKEN"); token != "" {
		c.GitLab.Token = token
	}
	if token := os.Getenv("GITEA_TOKEN"); token != "" {
		c.Gitea.Token = token
	}
}
