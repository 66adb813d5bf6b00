package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"scrapedesk/internal/adapters/backend"
	"scrapedesk/internal/adapters/localstorage"
	"scrapedesk/internal/adapters/terminal"
	"scrapedesk/internal/config"
	"scrapedesk/internal/core/ports"
	"scrapedesk/internal/service"
)

// newSession loads the layered config, applies flags on top and wires a
// session against the configured backend.
func newSession(cmd *cobra.Command) (*service.Session, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cfg, err
	}
	if err := config.Override(&cfg, flagConfig); err != nil {
		return nil, cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.Level(),
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	timeout, _ := cfg.RequestTimeout()
	client, err := backend.NewClient(backend.Options{
		BaseURL: cfg.BaseURL,
		Timeout: timeout,
	})
	if err != nil {
		return nil, cfg, err
	}

	var storage ports.Storage
	if cfg.DataDir != "" {
		storage = localstorage.NewLocalStorage(cfg.DataDir)
	}

	session := service.NewSession(service.SessionOptions{
		Backend:  client,
		Storage:  storage,
		Notifier: terminal.NewNotifier(cmd.ErrOrStderr()),
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
	})
	session.Fields.Username = cfg.Username
	session.Fields.Password = cfg.Password

	logger.Debug("session ready", "base_url", cfg.BaseURL, "data_dir", cfg.DataDir)
	return session, cfg, nil
}
