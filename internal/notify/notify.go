package notify

import (
	"context"

	"go.uber.org/multierr"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Notifier delivers an alert event to a human-facing channel.
type Notifier interface {
	Notify(ctx context.Context, ev domain.AlertEvent) error
}

// Multi fans one event out to several notifiers and reports every delivery
// error, not just the first.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev domain.AlertEvent) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Notify(ctx, ev))
	}
	return err
}
