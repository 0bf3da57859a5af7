package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the server configuration assembled from SYMPTOWISE_* variables.
type Config struct {
	Addr          string
	Env           string
	CSRFKeyHex    string // validated by web.ParseCSRFKey
	ContactDelay  time.Duration
	SessionTTL    time.Duration
	RateLimit     int // requests per second per IP
	SlowRequestMs int
	LogLevel      slog.Level

	ResendKey    string
	MailFrom     string
	SupportInbox string
}

// Production reports whether the server runs with production settings.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads the configuration through getenv (os.Getenv in main).
// PRE: getenv is non-nil
// POST: returns a Config with defaults applied, or an error naming every invalid variable
func Load(getenv func(string) string) (Config, error) {
	var errs []error
	envOrDefault := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}
	intVar := func(key string, fallback int) int {
		raw := envOrDefault(key, strconv.Itoa(fallback))
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw))
			return fallback
		}
		return n
	}

	cfg := Config{
		Addr:          envOrDefault("SYMPTOWISE_ADDR", ":8080"),
		Env:           envOrDefault("SYMPTOWISE_ENV", EnvDevelopment),
		CSRFKeyHex:    getenv("SYMPTOWISE_CSRF_KEY"),
		ContactDelay:  time.Duration(intVar("SYMPTOWISE_CONTACT_DELAY_MS", 1500)) * time.Millisecond,
		RateLimit:     intVar("SYMPTOWISE_RATE_LIMIT", 10),
		SlowRequestMs: intVar("SYMPTOWISE_SLOW_REQUEST_MS", 200),
		ResendKey:     getenv("SYMPTOWISE_RESEND_KEY"),
		MailFrom:      envOrDefault("SYMPTOWISE_RESEND_FROM", "SymptoWise <noreply@symptowise.com>"),
		SupportInbox:  envOrDefault("SYMPTOWISE_SUPPORT_INBOX", "support@symptowise.com"),
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("SYMPTOWISE_ENV must be %s or %s, got %q", EnvDevelopment, EnvProduction, cfg.Env))
	}

	ttlRaw := envOrDefault("SYMPTOWISE_SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("SYMPTOWISE_SESSION_TTL must be a positive duration, got %q", ttlRaw))
		ttl = 24 * time.Hour
	}
	cfg.SessionTTL = ttl

	if cfg.RateLimit == 0 {
		errs = append(errs, errors.New("SYMPTOWISE_RATE_LIMIT must be at least 1"))
	}

	levelRaw := envOrDefault("SYMPTOWISE_LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelRaw)); err != nil {
		errs = append(errs, fmt.Errorf("SYMPTOWISE_LOG_LEVEL must be debug, info, warn or error, got %q", levelRaw))
	}

	if cfg.Production() && cfg.CSRFKeyHex == "" {
		errs = append(errs, errors.New("SYMPTOWISE_CSRF_KEY is required in production"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
