package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/probe"
	"github.com/hamed0406/pingwatch/internal/status"
)

const notifyTimeout = 10 * time.Second

// HostMonitor drives one host's probe loop: probe, apply the observation to
// the store, dispatch whatever alert the gate hands back, sleep. Iterations
// are strictly sequential; the loop never stops on a probe failure.
type HostMonitor struct {
	Host     string
	Checker  probe.Checker
	Store    *status.Store
	Notifier notify.Notifier
	Logger   *zap.Logger
	Interval time.Duration
	Timeout  time.Duration
}

// Run loops until ctx is cancelled.
func (m *HostMonitor) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		m.runOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.Interval):
		}
	}
}

func (m *HostMonitor) runOnce(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, m.Timeout)
	out := m.Checker.Check(cctx, m.Host)
	cancel()

	ev := m.Store.Apply(m.Host, out.Success, time.Now())

	m.Logger.Debug("host_checked",
		zap.String("host", m.Host),
		zap.Bool("alive", out.Success),
		zap.Float64("latency_ms", out.LatencyMS),
		zap.String("reason", out.Message),
	)

	if ev == nil {
		return
	}
	m.Logger.Info("alert_due",
		zap.String("host", ev.Host),
		zap.Bool("alive", ev.Alive),
		zap.Bool("mention", ev.IncludeMention),
		zap.Int("failures", ev.FailureCount),
	)
	if m.Notifier == nil {
		return
	}

	// Delivery runs off the loop: a slow or failing webhook must not delay
	// the next probe or touch the store.
	e := *ev
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := m.Notifier.Notify(nctx, e); err != nil {
			m.Logger.Warn("notify_failed", zap.String("host", e.Host), zap.Error(err))
		} else {
			m.Logger.Info("notify_sent", zap.String("host", e.Host), zap.Bool("alive", e.Alive))
		}
	}()
}
