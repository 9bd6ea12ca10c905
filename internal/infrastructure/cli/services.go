package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/recheck-dev/recheck/internal/application"
	"github.com/recheck-dev/recheck/internal/domain/audit"
	"github.com/recheck-dev/recheck/internal/infrastructure/api"
	"github.com/recheck-dev/recheck/internal/infrastructure/auditlog"
	"github.com/recheck-dev/recheck/internal/infrastructure/config"
)

// loadConfig resolves the effective configuration from file, env and
// flags, flags winning.
func loadConfig() (config.Config, error) {
	path := flagConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if flagServerURL != "" {
		cfg.ServerURL = flagServerURL
	}
	if flagSource != "" {
		cfg.SourceFilter = flagSource
	}
	return cfg, nil
}

// buildClient creates the REST client for the configured server.
func buildClient(cfg config.Config) (*api.Client, error) {
	return api.New(cfg.ServerURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithRetry(cfg.RetryAttempts, 0),
		api.WithUserAgent("recheck/"+Version),
	)
}

// buildService wires client, audit sink and logger into a session
// service. The returned cleanup closes the log file, if any.
func buildService(cfg config.Config) (*application.SessionService, func(), error) {
	client, err := buildClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger, cleanup := buildLogger(cfg)
	sessionID := uuid.NewString()

	opts := []application.Option{
		application.WithLogger(logger),
		application.WithSourceFilter(cfg.SourceFilter),
		application.WithSessionID(sessionID),
	}

	if cfg.AuditLogPath != "" {
		sink, err := auditlog.NewFileLogger(cfg.AuditLogPath, sessionID)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open audit log: %w", err)
		}
		opts = append(opts, application.WithAudit(sink))
	}

	svc, err := application.NewSessionService(client, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// buildLogger returns a slog logger writing to the configured file, or
// a discard logger when none is set. Logging to stderr would corrupt
// the TUI.
func buildLogger(cfg config.Config) (*slog.Logger, func()) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", cfg.LogFile, err)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}

var _ audit.Logger = (*auditlog.FileLogger)(nil)
