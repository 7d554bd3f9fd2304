package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct-123")
	t.Setenv("CLOUDFLARE_API_TOKEN", "token-abc")
	t.Setenv("CLOUDFLARE_KV_NAMESPACE_ID", "ns-456")
	t.Setenv("CLOUDFLARE_API_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HTTP_TIMEOUT", "")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AccountID != "acct-123" {
		t.Errorf("AccountID = %q, want acct-123", cfg.AccountID)
	}
	if cfg.APIToken != "token-abc" {
		t.Errorf("APIToken = %q, want token-abc", cfg.APIToken)
	}
	if cfg.NamespaceID != "ns-456" {
		t.Errorf("NamespaceID = %q, want ns-456", cfg.NamespaceID)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want default %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
}

func TestLoadMissingVariables(t *testing.T) {
	tests := []struct {
		name        string
		unset       []string
		wantMissing []string
	}{
		{
			"all missing",
			[]string{"CLOUDFLARE_ACCOUNT_ID", "CLOUDFLARE_API_TOKEN", "CLOUDFLARE_KV_NAMESPACE_ID"},
			[]string{"CLOUDFLARE_ACCOUNT_ID", "CLOUDFLARE_API_TOKEN", "CLOUDFLARE_KV_NAMESPACE_ID"},
		},
		{
			"token missing",
			[]string{"CLOUDFLARE_API_TOKEN"},
			[]string{"CLOUDFLARE_API_TOKEN"},
		},
		{
			"namespace missing",
			[]string{"CLOUDFLARE_KV_NAMESPACE_ID"},
			[]string{"CLOUDFLARE_KV_NAMESPACE_ID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for _, name := range tt.unset {
				t.Setenv(name, "")
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load succeeded, want error for missing variables")
			}

			for _, name := range tt.wantMissing {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error %q does not name missing variable %s", err, name)
				}
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLOUDFLARE_API_BASE_URL", "https://proxy.internal/client/v4/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Trailing slash is trimmed so URL joining stays predictable.
	if cfg.APIBaseURL != "https://proxy.internal/client/v4" {
		t.Errorf("APIBaseURL = %q, want trimmed override", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want default 30s on unparseable value", cfg.HTTPTimeout)
	}
}
