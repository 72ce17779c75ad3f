package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/vparedes/menuadmin/internal/admin"
	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/backend/failover"
	"github.com/vparedes/menuadmin/internal/backend/memory"
	"github.com/vparedes/menuadmin/internal/backend/rest"
	"github.com/vparedes/menuadmin/internal/config"
	"github.com/vparedes/menuadmin/internal/devstate"
	"github.com/vparedes/menuadmin/internal/domain"
	"github.com/vparedes/menuadmin/internal/i18n"
	"github.com/vparedes/menuadmin/internal/logging"
	"github.com/vparedes/menuadmin/internal/web"
	"github.com/vparedes/menuadmin/internal/web/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, cleanup, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	dev := devstate.New(cfg.StateDir)
	msgs := i18n.NewPrinter(cfg.Locale)
	toasts := web.NewToastQueue()
	refresh := web.NewRefreshHub()

	var ctrl *admin.Controller
	client := failover.New(newPrimary(cfg, logger), dev, logger,
		failover.WithNotify(func(ev failover.Event) { ctrl.FallbackNotify()(ev) }))

	// The delete confirmation happens in the browser before the request is
	// made, so server-side confirm is a pass-through.
	ctrl = admin.New(client, dev, toasts, msgs, logger, nil, refresh.Notify)

	ctx := context.Background()
	if err := ctrl.Start(ctx); err != nil {
		logger.Warn("realtime menu feed unavailable, pages still refresh on demand", "error", err)
	}
	defer func() {
		if err := ctrl.Close(); err != nil {
			logger.Error("failed to release menu subscription", "error", err)
		}
	}()

	server := web.NewServer(ctrl, dev, toasts, refresh, templates.FS, cfg.Locale, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newPrimary(cfg *config.Config, logger *slog.Logger) backend.Client {
	if cfg.BackendURL == "" {
		logger.Info("no backend configured, serving in-memory demo data")
		demo := memory.NewSeeded(domain.SampleMenu())
		demo.SetSignedIn(true)
		return demo
	}
	logger.Info("using hosted menu backend", "url", cfg.BackendURL)
	return rest.New(cfg.BackendURL, cfg.BackendAPIKey, cfg.BackendToken)
}
