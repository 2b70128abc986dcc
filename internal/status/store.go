package status

import (
	"sort"
	"sync"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// record is one host's full state: the observed liveness plus the outage
// episode bookkeeping. Everything here changes together under Store.mu.
type record struct {
	alive       bool
	checkedAt   time.Time
	failures    int
	mentionSent bool
}

// Store is the single source of truth for host liveness. Monitors write it,
// the display and the status API read it. The notification gate lives inside
// Apply so a record and its episode state can never be observed half-updated.
type Store struct {
	mu        sync.Mutex
	threshold int
	hosts     map[string]*record
}

func New(threshold int) *Store {
	if threshold < 1 {
		threshold = 1
	}
	return &Store{
		threshold: threshold,
		hosts:     make(map[string]*record),
	}
}

// Apply records one probe observation and runs the gate transition. It
// returns a non-nil event exactly when an alert is due: a down alert the
// moment the failure streak reaches the threshold, a recovery alert on the
// first success after a streak that had reached it. Streaks that never reach
// the threshold come and go silently.
func (s *Store) Apply(host string, alive bool, at time.Time) *domain.AlertEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.hosts[host]
	if r == nil {
		r = &record{}
		s.hosts[host] = r
	}

	var ev *domain.AlertEvent
	if !alive {
		r.failures++
		if r.failures == s.threshold {
			ev = &domain.AlertEvent{
				Host:           host,
				Alive:          false,
				At:             at,
				IncludeMention: !r.mentionSent,
				FailureCount:   r.failures,
			}
			r.mentionSent = true
		}
		// past the threshold: stay silent while the host keeps failing
	} else {
		// The pre-reset count decides the recovery notice. It is the single
		// source of truth for "this episode had reached the threshold".
		if r.failures >= s.threshold {
			ev = &domain.AlertEvent{Host: host, Alive: true, At: at}
		}
		r.failures = 0
		r.mentionSent = false
	}

	r.alive = alive
	r.checkedAt = at
	return ev
}

// Snapshot returns a consistent copy of every observed host, not-alive hosts
// first, then alphabetical. Failing hosts surface at the top of the table.
func (s *Store) Snapshot() []domain.HostStatus {
	s.mu.Lock()
	out := make([]domain.HostStatus, 0, len(s.hosts))
	for h, r := range s.hosts {
		out = append(out, domain.HostStatus{
			Host:      h,
			Alive:     r.alive,
			Failures:  r.failures,
			CheckedAt: r.checkedAt,
		})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Alive != out[j].Alive {
			return !out[i].Alive
		}
		return out[i].Host < out[j].Host
	})
	return out
}
