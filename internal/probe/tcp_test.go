package probe

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestTCPChecker_UpWhenListening(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	_, port, _ := net.SplitHostPort(ln.Addr().String())
	c := NewTCPChecker(port, 2*time.Second)
	res := c.Check(context.Background(), "127.0.0.1")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestTCPChecker_DownWhenClosed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	ln.Close()

	c := NewTCPChecker(port, 1*time.Second)
	res := c.Check(context.Background(), "127.0.0.1")
	if res.Success {
		t.Fatalf("expected failure on closed port, got %+v", res)
	}
}

func TestNewTCPChecker_Defaults(t *testing.T) {
	c := NewTCPChecker("", 0)
	if c.Port != "22" {
		t.Fatalf("default port wrong: %s", c.Port)
	}
	if c.Dialer.Timeout != 3*time.Second {
		t.Fatalf("default timeout wrong: %v", c.Dialer.Timeout)
	}
}
