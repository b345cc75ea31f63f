package config

import (
	"testing"
	"time"
)

func clearIGDBEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"IGDB_CLIENT_ID", "IGDB_CLIENT_SECRET", "TWITCH_CLIENT_ID", "TWITCH_CLIENT_SECRET"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearIGDBEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Errorf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.IGDB.TokenURL != "https://id.twitch.tv/oauth2/token" {
		t.Errorf("TokenURL = %q", cfg.IGDB.TokenURL)
	}
	if cfg.IGDB.APIURL != "https://api.igdb.com/v4" {
		t.Errorf("APIURL = %q", cfg.IGDB.APIURL)
	}
	if cfg.IGDB.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.IGDB.CacheTTL)
	}
	if cfg.IGDB.SearchTimeout != 15*time.Second || cfg.IGDB.MultiTimeout != 10*time.Second || cfg.IGDB.ListTimeout != 20*time.Second {
		t.Errorf("timeouts = %v/%v/%v", cfg.IGDB.SearchTimeout, cfg.IGDB.MultiTimeout, cfg.IGDB.ListTimeout)
	}
	if cfg.IGDB.Configured() {
		t.Error("no credentials should mean not configured")
	}
}

func TestLoad_MissingCredentialsIsNotAnError(t *testing.T) {
	clearIGDBEnv(t)

	if _, err := Load(); err != nil {
		t.Fatalf("a credential-less deployment must still boot: %v", err)
	}
}

func TestLoad_TwitchFallbackCredentials(t *testing.T) {
	clearIGDBEnv(t)
	t.Setenv("TWITCH_CLIENT_ID", "tw-id")
	t.Setenv("TWITCH_CLIENT_SECRET", "tw-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IGDB.ClientID != "tw-id" || cfg.IGDB.ClientSecret != "tw-secret" {
		t.Errorf("credentials = %q/%q, want the TWITCH_* fallback", cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)
	}
	if !cfg.IGDB.Configured() {
		t.Error("fallback credentials should mark the proxy configured")
	}
}

func TestLoad_IGDBVarsWinOverTwitch(t *testing.T) {
	clearIGDBEnv(t)
	t.Setenv("IGDB_CLIENT_ID", "igdb-id")
	t.Setenv("TWITCH_CLIENT_ID", "tw-id")
	t.Setenv("IGDB_CLIENT_SECRET", "igdb-secret")
	t.Setenv("TWITCH_CLIENT_SECRET", "tw-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IGDB.ClientID != "igdb-id" || cfg.IGDB.ClientSecret != "igdb-secret" {
		t.Errorf("credentials = %q/%q, want the IGDB_* values", cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)
	}
}

func TestLoad_APIURLTrailingSlashTrimmed(t *testing.T) {
	clearIGDBEnv(t)
	t.Setenv("IGDB_API_URL", "https://api.igdb.com/v4/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IGDB.APIURL != "https://api.igdb.com/v4" {
		t.Errorf("APIURL = %q", cfg.IGDB.APIURL)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero cache ttl", "IGDB_CACHE_TTL", "0s"},
		{"negative rate", "RATE_RPS", "-1"},
		{"zero burst", "RATE_BURST", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearIGDBEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s should fail validation", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_GinModeNormalization(t *testing.T) {
	clearIGDBEnv(t)
	t.Setenv("GIN_MODE", "weird")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q, want release fallback", cfg.GinMode)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"api", "/api"},
		{"/api/v1/", "/api/v1"},
		{"  /api/v2  ", "/api/v2"},
	}
	for _, tc := range cases {
		if got := normalizeBasePath(tc.in); got != tc.want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
