package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/castwave/castwave/internal/bootstrap"
	"github.com/castwave/castwave/internal/config"
	"github.com/castwave/castwave/internal/logging"
	"github.com/castwave/castwave/internal/monitor"
	"github.com/castwave/castwave/internal/version"
)

func main() {
	optionsPath := flag.String("config", "castwave.yaml", "path to the process options file")
	confDir := flag.String("conf", "", "configuration directory (overrides the options file)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	info := version.Get()
	if *showVersion {
		fmt.Println("castwave", info.String())
		return
	}

	opts, err := bootstrap.Load(*optionsPath)
	if err != nil {
		slog.Error("failed to load process options", "path", *optionsPath, "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(opts.LogLevel)}))
	slog.SetDefault(logger)

	slog.Info("castwave starting", "version", info.String(), "options", *optionsPath)

	backend := logging.NewBackend()
	defer backend.Close()
	mon := monitor.New()
	manager := config.New(backend, mon)

	base := opts.ConfigDir
	if *confDir != "" {
		base = *confDir
	}
	if base == "" {
		base = config.DefaultBase()
	}

	if err := manager.Load(base); err != nil {
		slog.Error("failed to load configuration", "conf", base, "err", err)
		os.Exit(1)
	}
	slog.Info("configuration loaded", "conf", base, "server_id", manager.ServerID())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", mon.Handler())
		srv := &http.Server{Addr: opts.MetricsAddr, Handler: mux}
		go func() {
			slog.Info("metrics endpoint listening", "addr", opts.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server stopped", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Event-driven logger reloads, with a periodic check as fallback for
	// filesystems where fsnotify is unreliable. The mtime gate inside the
	// manager keeps the two from double-applying.
	go func() {
		if err := config.WatchLoggerConfig(ctx, manager, config.Paths{Base: base}, logger); err != nil {
			slog.Error("logger configuration watcher failed; periodic checks remain active", "err", err)
		}
	}()

	// SIGHUP re-runs the full configuration sequence.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("castwave shutting down")
			return

		case <-hup:
			if err := manager.Reload(); err != nil {
				slog.Error("configuration reload failed; keeping previous configuration", "err", err)
				continue
			}
			slog.Info("configuration reloaded", "server_id", manager.ServerID())

		case <-ticker.C:
			if err := manager.CheckLoggerConfig(); err != nil {
				slog.Error("logger configuration reload failed; keeping previous log settings", "err", err)
			}
		}
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
