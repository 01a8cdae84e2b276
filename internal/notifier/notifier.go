// Package notifier delivers triggered alerts to people.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"StockSentinel/internal/model"
)

// Notifier sends the triggered rows of a report somewhere.
// Implementations must not be called with an empty slice.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, rows []model.NotifierRow) error
}

// Multi fans a notification out to several notifiers and keeps going when one fails.
type Multi struct {
	Notifiers []Notifier
	Log       zerolog.Logger
}

// NewMulti creates a fan-out notifier.
func NewMulti(log zerolog.Logger, ns ...Notifier) *Multi {
	return &Multi{Notifiers: ns, Log: log}
}

func (m *Multi) Name() string { return "multi" }

// Notify sends rows to every notifier. It does nothing when rows is empty.
func (m *Multi) Notify(ctx context.Context, rows []model.NotifierRow) error {
	if len(rows) == 0 {
		m.Log.Info().Msg("no alerts triggered, nothing to send")
		return nil
	}
	var errs []error
	for _, n := range m.Notifiers {
		if err := n.Notify(ctx, rows); err != nil {
			m.Log.Error().Err(err).Str("notifier", n.Name()).Msg("notification failed")
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		m.Log.Info().Str("notifier", n.Name()).Int("alerts", len(rows)).Msg("notification sent")
	}
	return errors.Join(errs...)
}

// Len returns the number of configured notifiers.
func (m *Multi) Len() int { return len(m.Notifiers) }
