package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Millisecond * 250
)

type Manager interface {
	Tick(context.Context) error
}

// SimDriver runs the simulation loop: every tick it calls each manager in
// order on the one goroutine that owns the world. A manager error is logged
// and the tick carries on; a single bad tick never stops the simulation.
type SimDriver struct {
	tickLength time.Duration
	managers   []Manager
	observe    func(time.Duration)
}

func NewSimDriver(managers []Manager, opts ...SimDriverOpt) *SimDriver {
	d := &SimDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *SimDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

func (d *SimDriver) Tick(ctx context.Context) {
	start := time.Now()

	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			slog.ErrorContext(ctx, "manager tick failed", "error", err)
		}
	}

	if d.observe != nil {
		d.observe(time.Since(start))
	}
}
