package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "API_REQUEST_TIMEOUT", "DATABASE_PATH", "DASHBOARD_PAGE_SIZE", "DASHBOARD_DATE_RANGE", "API_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Api.BaseURL != "http://localhost:5000/api/v1" {
		t.Errorf("unexpected base url %q", cfg.Api.BaseURL)
	}
	if cfg.Api.RequestTimeout != 60*time.Second {
		t.Errorf("unexpected request timeout %v", cfg.Api.RequestTimeout)
	}
	if cfg.Api.Token != "" {
		t.Errorf("unexpected api token %q", cfg.Api.Token)
	}
	if cfg.Database.Path != "banglapay.db" {
		t.Errorf("unexpected database path %q", cfg.Database.Path)
	}
	if cfg.Dashboard.PageSize != 10 || cfg.Dashboard.DateRange != "7" {
		t.Errorf("unexpected dashboard defaults %+v", cfg.Dashboard)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("API_REQUEST_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid base url")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://wallet.example.com/api/v1")
	t.Setenv("DASHBOARD_PAGE_SIZE", "25")
	t.Setenv("LOG_DEVELOPMENT", "true")
	t.Setenv("API_TOKEN", "tok-ci")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Api.BaseURL != "https://wallet.example.com/api/v1" {
		t.Errorf("unexpected base url %q", cfg.Api.BaseURL)
	}
	if cfg.Api.Token != "tok-ci" {
		t.Errorf("expected api token tok-ci, got %q", cfg.Api.Token)
	}
	if cfg.Dashboard.PageSize != 25 {
		t.Errorf("expected page size 25, got %d", cfg.Dashboard.PageSize)
	}
	if !cfg.Logging.Development {
		t.Error("expected development logging")
	}
}
