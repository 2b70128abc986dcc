package display

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/hamed0406/pingwatch/internal/status"
)

const clearScreen = "\x1b[2J\x1b[H"

// Renderer periodically writes the status table to Out. It only ever reads
// the store; a failed write is dropped and monitoring is unaffected.
type Renderer struct {
	Store         *status.Store
	Out           io.Writer
	Interval      time.Duration
	ProbeInterval time.Duration
	HostCount     int
	Notifications bool
	Clear         bool // emit an ANSI clear before each frame
}

func (r *Renderer) Run(ctx context.Context) {
	if r.Interval <= 0 {
		r.Interval = 2 * time.Second
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.renderOnce()
		}
	}
}

func (r *Renderer) renderOnce() {
	rows := r.Store.Snapshot()
	if len(rows) == 0 {
		// nothing observed yet
		return
	}

	var b bytes.Buffer
	if r.Clear {
		b.WriteString(clearScreen)
	}

	notif := "off"
	if r.Notifications {
		notif = "on"
	}
	fmt.Fprintf(&b, "pingwatch  hosts: %d  interval: %s  notifications: %s\n\n",
		r.HostCount, r.ProbeInterval, notif)

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HOST\tSTATE\tFAILS\tLAST CHECK")
	for _, st := range rows {
		mark := "OK"
		if !st.Alive {
			mark = "NG"
		}
		fails := "-"
		if st.Failures > 0 {
			fails = strconv.Itoa(st.Failures)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			st.Host, mark, fails, st.CheckedAt.Format("2006-01-02 15:04:05"))
	}
	_ = tw.Flush()

	b.WriteString("\n[Ctrl+C to stop]\n")
	_, _ = r.Out.Write(b.Bytes())
}
