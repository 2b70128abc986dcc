package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/probe"
	"github.com/hamed0406/pingwatch/internal/status"
)

// scriptedChecker replays a per-host sequence of outcomes, repeating the
// last one once the script runs out.
type scriptedChecker struct {
	mu      sync.Mutex
	scripts map[string][]bool
	pos     map[string]int
}

func newScriptedChecker(scripts map[string][]bool) *scriptedChecker {
	return &scriptedChecker{scripts: scripts, pos: map[string]int{}}
}

func (c *scriptedChecker) Check(ctx context.Context, host string) probe.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	script := c.scripts[host]
	i := c.pos[host]
	if i >= len(script) {
		i = len(script) - 1
	} else {
		c.pos[host]++
	}
	ok := false
	if i >= 0 {
		ok = script[i]
	}
	return probe.Result{Success: ok, LatencyMS: 1, Message: "scripted"}
}

type chanNotifier struct {
	events chan domain.AlertEvent
}

func (n *chanNotifier) Notify(ctx context.Context, ev domain.AlertEvent) error {
	n.events <- ev
	return nil
}

func collect(t *testing.T, ch chan domain.AlertEvent, n int) []domain.AlertEvent {
	t.Helper()
	out := make([]domain.AlertEvent, 0, n)
	for len(out) < n {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d/%d (got %+v)", len(out)+1, n, out)
		}
	}
	return out
}

func newMonitor(host string, chk probe.Checker, st *status.Store, nt *chanNotifier) *HostMonitor {
	return &HostMonitor{
		Host:     host,
		Checker:  chk,
		Store:    st,
		Notifier: nt,
		Logger:   zap.NewNop(),
		Interval: time.Millisecond,
		Timeout:  100 * time.Millisecond,
	}
}

func TestHostMonitor_OutageAndRecoverySequence(t *testing.T) {
	// threshold 2: fail, fail -> one down alert with mention; success -> one
	// recovery; steady success -> nothing more
	st := status.New(2)
	chk := newScriptedChecker(map[string][]bool{
		"10.0.0.1": {false, false, true, true},
	})
	nt := &chanNotifier{events: make(chan domain.AlertEvent, 8)}
	m := newMonitor("10.0.0.1", chk, st, nt)

	for i := 0; i < 4; i++ {
		m.runOnce(context.Background())
	}

	// delivery is asynchronous, so match events by kind rather than order
	evs := collect(t, nt.events, 2)
	var down, rec domain.AlertEvent
	for _, ev := range evs {
		if ev.Alive {
			rec = ev
		} else {
			down = ev
		}
	}
	if down.Host != "10.0.0.1" || rec.Host != "10.0.0.1" {
		t.Fatalf("expected one down and one recovery event, got %+v", evs)
	}
	if down.Alive || !down.IncludeMention || down.FailureCount != 2 {
		t.Fatalf("down alert wrong: %+v", down)
	}
	if !rec.Alive || rec.IncludeMention {
		t.Fatalf("recovery alert wrong: %+v", rec)
	}

	select {
	case ev := <-nt.events:
		t.Fatalf("unexpected extra event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHostMonitor_HostsDoNotInterfere(t *testing.T) {
	st := status.New(2)
	chk := newScriptedChecker(map[string][]bool{
		"10.0.0.1": {false, false, true},
		"10.0.0.2": {true, true, true},
	})
	nt := &chanNotifier{events: make(chan domain.AlertEvent, 8)}
	m1 := newMonitor("10.0.0.1", chk, st, nt)
	m2 := newMonitor("10.0.0.2", chk, st, nt)

	for i := 0; i < 3; i++ {
		m1.runOnce(context.Background())
		m2.runOnce(context.Background())
	}

	evs := collect(t, nt.events, 2)
	for _, ev := range evs {
		if ev.Host != "10.0.0.1" {
			t.Fatalf("host 10.0.0.2 must stay silent, got %+v", ev)
		}
	}

	rows := st.Snapshot()
	if len(rows) != 2 {
		t.Fatalf("want 2 hosts in store, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Failures != 0 || !r.Alive {
			t.Fatalf("unexpected final state: %+v", r)
		}
	}
}

func TestHostMonitor_ProbeFailureNeverStopsTheLoop(t *testing.T) {
	st := status.New(1000) // never alerts
	chk := newScriptedChecker(map[string][]bool{"h": {false}})
	m := newMonitor("h", chk, st, nil)
	m.Notifier = nil

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}

	rows := st.Snapshot()
	if len(rows) != 1 || rows[0].Failures < 2 {
		t.Fatalf("expected several failing iterations, got %+v", rows)
	}
}
