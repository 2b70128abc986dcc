package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/probe"
	"github.com/hamed0406/pingwatch/internal/status"
)

// Orchestrator supervises one HostMonitor per host plus the display loop.
// Cancelling the ctx passed to Run requests shutdown; Run lets in-flight
// iterations finish and returns after at most GracePeriod.
type Orchestrator struct {
	Logger   *zap.Logger
	Store    *status.Store
	Checker  probe.Checker
	Notifier notify.Notifier
	Display  interface {
		Run(ctx context.Context)
	}
	Hosts       []string
	Interval    time.Duration
	Timeout     time.Duration
	GracePeriod time.Duration
}

func (o *Orchestrator) Run(ctx context.Context) error {
	grace := o.GracePeriod
	if grace <= 0 {
		grace = 5 * time.Second
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, host := range o.Hosts {
		m := &HostMonitor{
			Host:     host,
			Checker:  o.Checker,
			Store:    o.Store,
			Notifier: o.Notifier,
			Logger:   o.Logger,
			Interval: o.Interval,
			Timeout:  o.Timeout,
		}
		g.Go(func() error {
			m.Run(gctx)
			return nil
		})
	}
	if o.Display != nil {
		g.Go(func() error {
			o.Display.Run(gctx)
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	// shutdown requested: wait for the loops, but only so long
	select {
	case err := <-done:
		return err
	case <-time.After(grace):
		o.Logger.Warn("shutdown_grace_elapsed", zap.Duration("grace", grace))
		return ctx.Err()
	}
}
