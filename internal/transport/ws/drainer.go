package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/battleshipgame-go/internal/events"
)

// DefaultDrainInterval is how often queued events are delivered
const DefaultDrainInterval = 200 * time.Millisecond

// Drainer is the periodic delivery task. Each tick pops every queued
// event and hands it to the hub, outside the registry lock, so delivery
// never blocks game mutations.
type Drainer struct {
	queue    *events.Queue
	hub      *Hub
	interval time.Duration
	logger   *slog.Logger
}

// NewDrainer creates a Drainer. A non-positive interval falls back to the
// default.
func NewDrainer(queue *events.Queue, hub *Hub, interval time.Duration, logger *slog.Logger) *Drainer {
	if interval <= 0 {
		interval = DefaultDrainInterval
	}
	return &Drainer{
		queue:    queue,
		hub:      hub,
		interval: interval,
		logger:   logger.With(slog.String("component", "drainer")),
	}
}

// Run delivers queued events on a fixed interval until the context is
// cancelled. Delivery order within one tick matches enqueue order.
func (d *Drainer) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("event drainer started", slog.Duration("interval", d.interval))

	for {
		select {
		case <-ticker.C:
			d.Tick()
		case <-ctx.Done():
			// Flush whatever is left so shutdown does not eat events
			d.Tick()
			d.logger.Info("event drainer stopped")
			return
		}
	}
}

// Tick delivers every event queued at the start of the cycle
func (d *Drainer) Tick() {
	for _, ev := range d.queue.Drain() {
		d.hub.Deliver(ev)
	}
}
