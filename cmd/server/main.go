package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contentAdapter "symptowise/internal/adapters/content"
	emailPkg "symptowise/internal/adapters/email"
	web "symptowise/internal/adapters/http"
	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/adapters/http/perf"
	"symptowise/internal/config"
	"symptowise/internal/domain/analysis"
	"symptowise/internal/domain/symptom"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	setupLogging(cfg)

	csrfKey, err := web.ParseCSRFKey(cfg.CSRFKeyHex, cfg.Production())
	if err != nil {
		log.Fatalf("invalid SYMPTOWISE_CSRF_KEY: %v", err)
	}

	site, err := contentAdapter.Load()
	if err != nil {
		log.Fatalf("failed to load site copy: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Visitor sessions live only in memory; expired ones are swept every few minutes.
	sessions := middleware.NewSessionStore(cfg.SessionTTL)
	go sessions.RunSweeper(ctx, 5*time.Minute)

	// Configure the contact relay
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.MailFrom)
		slog.Info("contact_relay_configured", "provider", "resend", "inbox", cfg.SupportInbox)
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Production() {
			slog.Warn("contact_relay_disabled", "hint", "set SYMPTOWISE_RESEND_KEY to forward contact messages")
		} else {
			slog.Info("contact_relay_configured", "provider", "noop")
		}
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	web.RateLimitPerSecond = cfg.RateLimit
	handler := web.NewMux(ctx, web.Deps{
		Site:          site,
		Catalog:       symptom.DefaultCatalog(),
		Analyzer:      analysis.NewMockAnalyzer(),
		Sessions:      sessions,
		Sender:        sender,
		MailFrom:      cfg.MailFrom,
		SupportInbox:  cfg.SupportInbox,
		ContactDelay:  cfg.ContactDelay,
		CSRFKey:       csrfKey,
		Production:    cfg.Production(),
		SlowRequestMs: cfg.SlowRequestMs,
	}, collector)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_failed", "error", err.Error())
	}
}

// setupLogging installs the default slog handler: text for development, JSON for production.
func setupLogging(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if cfg.Production() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
