package probe

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// HTTPChecker probes with a GET request; 2xx/3xx counts as alive. Hosts
// without a scheme are probed as http://host.
type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPChecker) Check(ctx context.Context, host string) Result {
	target := host
	if !strings.Contains(target, "://") {
		target = "http://" + target
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return Result{Success: false, Message: err.Error(), LatencyMS: sinceMS(start)}
	}
	defer resp.Body.Close()

	success := resp.StatusCode >= 200 && resp.StatusCode < 400
	return Result{
		Success:   success,
		Message:   resp.Status,
		LatencyMS: sinceMS(start),
	}
}
