package registry

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"
)

// Sweeper periodically scans the registry for connections whose stream went
// terminal without the removal hook firing. It is a defensive backstop; on a
// healthy registry every pass is a no-op.
type Sweeper struct {
	registry *Registry
	interval time.Duration
}

// NewSweeper creates a sweeper over the given registry.
func NewSweeper(r *Registry, interval time.Duration) *Sweeper {
	return &Sweeper{registry: r, interval: interval}
}

// Run blocks, sweeping on every tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	zlog.Logger.Info().Dur("interval", s.interval).Msg("connection sweeper started")

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("connection sweeper stopped")
			return
		case <-ticker.C:
			s.registry.Sweep()
		}
	}
}
