// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitea

import (
	"testing"
)

func TestNewProvider(t *testing.T) {
	provider := NewProvider("test-token", "https://gitea.example.com")

	if provider.Name() != "gitea" {
		t.Errorf("Name() = %q, want %q", provider.Name(), "gitea")
	}
	if provider.token != "test-token" {
		t.Errorf("token = %q, want %q", provider.token, "test-token")
	}
	if provider.client == nil {
		t.Error("client should not be nil")
	}
}

func TestNewProvider_EmptyToken(t *testing.T) {
	provider := NewProvider("", "https://gitea.example.com")

	if provider.client == nil {
		t.Error("client should not be nil even with empty token")
	}
}

func TestProvider_SetToken(t *testing.T) {
	provider := NewProvider("initial-token", "https://gitea.example.com")

	if err := provider.SetToken("new-token"); err != nil {
		t.Errorf("SetToken failed: %v", err)
	}
	if provider.token != "new-token" {
		t.Errorf("token = %q, want %q", provider.token, "new-token")
	}
}

func TestProvider_ValidateToken_EmptyToken(t *testing.T) {
	provider := NewProvider("", "https://gitea.example.com")

	valid, err := provider.ValidateToken(nil)
	if err != nil {
		t.Errorf("ValidateToken returned error: %v", err)
	}
	if valid {
		t.Error("ValidateToken should return false for empty token")
	}
}

func TestProvider_Name(t *testing.T) {
	provider := NewProvider("token", "")

	if provider.Name() != "gitea" {
		t.Errorf("Name() = %q, want %q", provider.Name(), "gitea")
	}
}
