package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/config"
	"github.com/hamed0406/pingwatch/internal/display"
	"github.com/hamed0406/pingwatch/internal/httpapi"
	"github.com/hamed0406/pingwatch/internal/logging"
	"github.com/hamed0406/pingwatch/internal/monitor"
	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/probe"
	"github.com/hamed0406/pingwatch/internal/status"
)

func main() {
	paths := config.FromEnv()

	cfg, cfgErr := config.Load(paths.ConfigFile)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "warn: %v (notifications disabled)\n", cfgErr)
	}
	if paths.LogDir != "" {
		cfg.LogDir = paths.LogDir
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	if cfgErr != nil {
		logger.Warn("config_load_failed", zap.String("file", paths.ConfigFile), zap.Error(cfgErr))
	}

	hosts, err := config.LoadHosts(paths.HostsFile)
	if err != nil {
		logger.Error("hosts_load_failed", zap.String("file", paths.HostsFile), zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	store := status.New(cfg.Slack.DownThreshold)
	checker := buildChecker(cfg.Probe)

	var notifier notify.Notifier
	if s := notify.NewSlack(cfg.Slack); s != nil {
		notifier = notify.Multi{s}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.API.Addr != "" {
		api := httpapi.NewServer(logger, store)
		srv := &http.Server{Addr: cfg.API.Addr, Handler: api.Router(cfg.API.RPM, cfg.API.Burst)}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.API.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("api_serve_error", zap.Error(err))
			}
		}()
		go func() {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	orch := &monitor.Orchestrator{
		Logger:   logger,
		Store:    store,
		Checker:  checker,
		Notifier: notifier,
		Display: &display.Renderer{
			Store:         store,
			Out:           os.Stdout,
			Interval:      cfg.RefreshDuration,
			ProbeInterval: cfg.IntervalDuration,
			HostCount:     len(hosts),
			Notifications: notifier != nil,
			Clear:         true,
		},
		Hosts:       hosts,
		Interval:    cfg.IntervalDuration,
		Timeout:     cfg.Probe.TimeoutDuration,
		GracePeriod: 5 * time.Second,
	}

	logger.Info("monitoring_started",
		zap.Int("hosts", len(hosts)),
		zap.Duration("interval", cfg.IntervalDuration),
		zap.String("probe", cfg.Probe.Type),
		zap.Bool("notifications", notifier != nil),
	)
	fmt.Printf("monitoring %d hosts every %s (Ctrl+C to stop)\n", len(hosts), cfg.IntervalDuration)

	_ = orch.Run(ctx)

	logger.Info("monitoring_stopped")
	fmt.Println("\nstopped")
}

func buildChecker(pc config.ProbeConfig) probe.Checker {
	switch pc.Type {
	case "tcp":
		return probe.NewTCPChecker(pc.Port, pc.TimeoutDuration)
	case "http":
		return probe.NewHTTPChecker(pc.TimeoutDuration)
	default:
		return probe.NewICMPChecker(pc.PacketTimeoutDuration, pc.Privileged)
	}
}
