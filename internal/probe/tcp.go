package probe

import (
	"context"
	"net"
	"time"
)

// TCPChecker probes by completing a TCP handshake on a fixed port. Useful on
// networks that filter ICMP.
type TCPChecker struct {
	Port   string
	Dialer *net.Dialer
}

func NewTCPChecker(port string, timeout time.Duration) *TCPChecker {
	if port == "" {
		port = "22"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &TCPChecker{
		Port:   port,
		Dialer: &net.Dialer{Timeout: timeout},
	}
}

func (c *TCPChecker) Check(ctx context.Context, host string) Result {
	start := time.Now()
	conn, err := c.Dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, c.Port))
	if err != nil {
		return Result{Success: false, Message: err.Error(), LatencyMS: sinceMS(start)}
	}
	_ = conn.Close()
	return Result{Success: true, Message: "connected", LatencyMS: sinceMS(start)}
}
