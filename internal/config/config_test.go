package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// TestLoad_Defaults verifies every default when nothing is set.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Addr:          ":8080",
		Env:           EnvDevelopment,
		ContactDelay:  1500 * time.Millisecond,
		SessionTTL:    24 * time.Hour,
		RateLimit:     10,
		SlowRequestMs: 200,
		LogLevel:      slog.LevelInfo,
		MailFrom:      "SymptoWise <noreply@symptowise.com>",
		SupportInbox:  "support@symptowise.com",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Production() {
		t.Error("default config should not be production")
	}
}

// TestLoad_Overrides verifies that variables replace defaults.
func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{
		"SYMPTOWISE_ADDR":             "127.0.0.1:9000",
		"SYMPTOWISE_ENV":              "production",
		"SYMPTOWISE_CSRF_KEY":         strings.Repeat("0f", 32),
		"SYMPTOWISE_CONTACT_DELAY_MS": "0",
		"SYMPTOWISE_SESSION_TTL":      "30m",
		"SYMPTOWISE_RATE_LIMIT":       "50",
		"SYMPTOWISE_LOG_LEVEL":        "DEBUG",
		"SYMPTOWISE_RESEND_KEY":       "re_test",
		"SYMPTOWISE_SUPPORT_INBOX":    "help@example.com",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Production() {
		t.Error("Production() = false")
	}
	if cfg.ContactDelay != 0 {
		t.Errorf("ContactDelay = %v, want 0", cfg.ContactDelay)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.RateLimit != 50 {
		t.Errorf("RateLimit = %d, want 50", cfg.RateLimit)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.SupportInbox != "help@example.com" || cfg.ResendKey != "re_test" {
		t.Errorf("relay settings = %q %q", cfg.SupportInbox, cfg.ResendKey)
	}
}

// TestLoad_Invalid verifies that every bad variable is reported.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad env", map[string]string{"SYMPTOWISE_ENV": "staging"}, "SYMPTOWISE_ENV"},
		{"negative delay", map[string]string{"SYMPTOWISE_CONTACT_DELAY_MS": "-5"}, "SYMPTOWISE_CONTACT_DELAY_MS"},
		{"bad ttl", map[string]string{"SYMPTOWISE_SESSION_TTL": "forever"}, "SYMPTOWISE_SESSION_TTL"},
		{"zero rate", map[string]string{"SYMPTOWISE_RATE_LIMIT": "0"}, "SYMPTOWISE_RATE_LIMIT"},
		{"bad level", map[string]string{"SYMPTOWISE_LOG_LEVEL": "loud"}, "SYMPTOWISE_LOG_LEVEL"},
		{"prod without key", map[string]string{"SYMPTOWISE_ENV": "production"}, "SYMPTOWISE_CSRF_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(envMap(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

// TestLoad_ReportsAllErrors verifies errors are joined rather than first-only.
func TestLoad_ReportsAllErrors(t *testing.T) {
	_, err := Load(envMap(map[string]string{
		"SYMPTOWISE_ENV":       "qa",
		"SYMPTOWISE_LOG_LEVEL": "chatty",
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"SYMPTOWISE_ENV", "SYMPTOWISE_LOG_LEVEL"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}
