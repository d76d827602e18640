package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/court-review/configs"
	"github.com/codex-k8s/court-review/internal/app"
	"github.com/codex-k8s/court-review/internal/audit"
	"github.com/codex-k8s/court-review/internal/config"
	"github.com/codex-k8s/court-review/internal/constants"
	"github.com/codex-k8s/court-review/internal/courtapi"
	"github.com/codex-k8s/court-review/internal/dsl"
	"github.com/codex-k8s/court-review/internal/log"
	"github.com/codex-k8s/court-review/internal/metrics"
	"github.com/codex-k8s/court-review/internal/render"
	"github.com/codex-k8s/court-review/internal/runtime"
	"github.com/codex-k8s/court-review/internal/templates"
	"github.com/codex-k8s/court-review/internal/timeutil"
	"github.com/codex-k8s/court-review/internal/workflow"
)

func main() {
	embeddedConfig := flag.String("embedded-config", "", "Use an embedded config, e.g. "+configs.DefaultName)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	var rendered []byte
	if *embeddedConfig != "" {
		rendered, err = configs.Rendered(*embeddedConfig)
	} else {
		rendered, err = render.RenderFile(cfg.ConfigPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "render config failed: %v\n", err)
		os.Exit(1)
	}

	dslCfg, err := dsl.Load(rendered)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse config failed: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol in stdio mode.
	logger := log.New(cfg.LogLevel)
	if dslCfg.Server.Transport == constants.TransportStdio {
		logger = log.NewWithWriter(cfg.LogLevel, os.Stderr)
	}

	templateBundle, err := templates.Load(cfg.Lang)
	if err != nil {
		logger.Error("load templates failed", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	auditLogger, history, closeAudit, err := openAudit(baseCtx, cfg.AuditDB, logger)
	if err != nil {
		logger.Error("open audit store failed", "error", err)
		os.Exit(1)
	}
	defer closeAudit()

	queueMetrics := metrics.New()
	client := &courtapi.Client{
		BaseURL: dslCfg.API.BaseURL,
		Headers: dslCfg.API.Headers,
		Timeout: timeutil.ParseDurationOrDefault(dslCfg.API.Timeout, 0),
		Limiter: courtapi.NewLimiter(dslCfg.API.RatePerMinute),
		Logger:  logger,
	}
	view := workflow.New(client, workflow.Options{
		PageSizes:       dslCfg.View.PageSizes,
		DefaultPageSize: dslCfg.View.DefaultPageSize,
		Messages:        templateBundle,
		Logger:          logger,
		Audit:           auditLogger,
		Metrics:         queueMetrics,
	})

	builder := runtime.Builder{
		Logger:    logger,
		View:      view,
		Templates: templateBundle,
	}
	if history != nil {
		builder.History = history
	}
	server, err := builder.Build(dslCfg)
	if err != nil {
		logger.Error("build server failed", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	// A failed first load is kept in the view and reported to clients.
	_ = view.Load(baseCtx)
	if interval := timeutil.ParseDurationOrDefault(dslCfg.View.ResyncInterval, 0); interval > 0 {
		go view.Run(baseCtx, interval)
	}

	switch dslCfg.Server.Transport {
	case constants.TransportStdio:
		err = server.Run(baseCtx, &mcp.StdioTransport{})
	default:
		err = runHTTP(baseCtx, cfg, dslCfg, server, view, queueMetrics, logger)
	}
	if err != nil {
		logger.Error("runtime error", "error", err)
		closeAudit()
		os.Exit(1)
	}
}

func openAudit(ctx context.Context, path string, logger *slog.Logger) (audit.Logger, *audit.SQLiteStore, func(), error) {
	stdLogger := audit.New(logger)
	if path == "" {
		return stdLogger, nil, func() {}, nil
	}
	store, err := audit.OpenSQLite(ctx, path, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("close audit store failed", "error", err)
		}
	}
	return audit.Multi{stdLogger, store}, store, closeFn, nil
}

func runHTTP(ctx context.Context, envCfg config.Config, dslCfg *dsl.Config, server *mcp.Server, view *workflow.View, queueMetrics *metrics.Metrics, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: dslCfg.Server.HTTP.Stateless,
	})

	extra := map[string]http.Handler{}
	if dslCfg.Server.HTTP.MetricsPath != "" {
		extra[dslCfg.Server.HTTP.MetricsPath] = queueMetrics.Handler()
	}

	var shutdownTimeout time.Duration
	if dslCfg.Server.ShutdownTimeout == "" {
		shutdownTimeout = envCfg.ShutdownTimeout
	}
	application, err := app.New(ctx, dslCfg.Server, handler, logger, app.Options{
		Extra:           extra,
		ReadyCheck:      view.Loaded,
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
