package config

import "testing"

func setCreds(t *testing.T) {
	t.Helper()
	t.Setenv("SF_USERNAME", "admin@example.com")
	t.Setenv("SF_PASSWORD", "hunter2")
	t.Setenv("SF_CLIENT_ID", "client-id")
	t.Setenv("SF_CLIENT_SECRET", "client-secret")
}

func TestLoadDefaults(t *testing.T) {
	setCreds(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Salesforce.LoginURL != "https://login.salesforce.com" {
		t.Fatalf("login url = %q", cfg.Salesforce.LoginURL)
	}
	if cfg.Salesforce.APIVersion != "59.0" {
		t.Fatalf("api version = %q", cfg.Salesforce.APIVersion)
	}
	if cfg.HTTPAddr != "" {
		t.Fatalf("http addr should default empty (stdio), got %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	setCreds(t)
	t.Setenv("SF_LOGIN_URL", "https://test.salesforce.com")
	t.Setenv("MCP_HTTP_ADDR", ":8080")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Salesforce.LoginURL != "https://test.salesforce.com" {
		t.Fatalf("login url = %q", cfg.Salesforce.LoginURL)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("SF_USERNAME", "")
	t.Setenv("SF_PASSWORD", "")
	t.Setenv("SF_CLIENT_ID", "")
	t.Setenv("SF_CLIENT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("want error for missing credentials")
	}
}
