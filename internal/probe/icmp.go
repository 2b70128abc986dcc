package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ICMPChecker sends a single ICMP echo request per probe. Privileged selects
// raw sockets; leave it false to use unprivileged UDP datagram pings (needs
// net.ipv4.ping_group_range on Linux).
type ICMPChecker struct {
	PacketTimeout time.Duration
	Privileged    bool
}

func NewICMPChecker(packetTimeout time.Duration, privileged bool) *ICMPChecker {
	if packetTimeout <= 0 {
		packetTimeout = 2 * time.Second
	}
	return &ICMPChecker{PacketTimeout: packetTimeout, Privileged: privileged}
}

func (c *ICMPChecker) Check(ctx context.Context, host string) Result {
	start := time.Now()

	p, err := probing.NewPinger(host)
	if err != nil {
		// resolution failure counts as unreachable
		return Result{Success: false, Message: err.Error()}
	}
	p.Count = 1
	p.Timeout = c.PacketTimeout
	p.SetPrivileged(c.Privileged)

	if err := p.RunWithContext(ctx); err != nil {
		return Result{Success: false, Message: err.Error(), LatencyMS: sinceMS(start)}
	}

	stats := p.Statistics()
	if stats.PacketsRecv == 0 {
		return Result{Success: false, Message: "no echo reply", LatencyMS: sinceMS(start)}
	}
	return Result{
		Success:   true,
		Message:   "echo reply",
		LatencyMS: stats.AvgRtt.Seconds() * 1000,
	}
}
