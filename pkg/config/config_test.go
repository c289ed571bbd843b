package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LAZYSPENDER_API_URL", "")
	t.Setenv("LAZYSPENDER_OWNER", "")
	t.Setenv("LAZYSPENDER_PAGE_SIZE", "")
	t.Setenv("LAZYSPENDER_ACCOUNTS", "")

	cfg, err := Load("/nonexistent-but-ignored-without-arg")
	if err == nil {
		t.Fatal("expected error for explicit missing .env path")
	}

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %s", cfg.APIURL)
	}
	if cfg.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", cfg.PageSize)
	}
	if cfg.Currency != "PHP" {
		t.Errorf("Currency = %s, want PHP", cfg.Currency)
	}
}

func TestLoadParsesAccountsList(t *testing.T) {
	t.Setenv("LAZYSPENDER_ACCOUNTS", "Cash, Bank ,,Savings")
	t.Setenv("LAZYSPENDER_PAGE_SIZE", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Accounts) != 3 || cfg.Accounts[1] != "Bank" {
		t.Errorf("Accounts = %v", cfg.Accounts)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("LAZYSPENDER_PAGE_SIZE", "twenty")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer page size")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{APIURL: "http://localhost:8080"}

	if err := cfg.Validate("apiUrl"); err != nil {
		t.Errorf("Validate(apiUrl) = %v, want nil", err)
	}
	if err := cfg.Validate("apiUrl", "owner"); err == nil {
		t.Error("Validate(owner) = nil, want missing-field error")
	}
}
