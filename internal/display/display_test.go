package display

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/pingwatch/internal/status"
)

func TestRenderOnce_TableShape(t *testing.T) {
	st := status.New(3)
	at := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	st.Apply("beta", true, at)
	st.Apply("alpha", false, at)
	st.Apply("alpha", false, at)

	var buf bytes.Buffer
	r := &Renderer{
		Store:         st,
		Out:           &buf,
		Interval:      time.Second,
		ProbeInterval: 5 * time.Second,
		HostCount:     2,
		Notifications: true,
	}
	r.renderOnce()
	out := buf.String()

	if !strings.Contains(out, "hosts: 2") || !strings.Contains(out, "notifications: on") {
		t.Fatalf("header wrong:\n%s", out)
	}
	// failing host sorts first
	alphaIdx := strings.Index(out, "alpha")
	betaIdx := strings.Index(out, "beta")
	if alphaIdx < 0 || betaIdx < 0 || alphaIdx > betaIdx {
		t.Fatalf("ordering wrong:\n%s", out)
	}
	if !strings.Contains(out, "NG") || !strings.Contains(out, "OK") {
		t.Fatalf("state markers missing:\n%s", out)
	}

	// rows are host, marker, fails, date, time
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		switch fields[0] {
		case "beta":
			if fields[1] != "OK" || fields[2] != "-" {
				t.Fatalf("beta row wrong: %q", line)
			}
		case "alpha":
			if fields[1] != "NG" || fields[2] != "2" {
				t.Fatalf("alpha row wrong: %q", line)
			}
		}
	}
}

func TestRenderOnce_SkipsEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Store: status.New(3), Out: &buf, Interval: time.Second}
	r.renderOnce()
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty store, got %q", buf.String())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Store: status.New(3), Out: &buf, Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("renderer did not stop")
	}
}
