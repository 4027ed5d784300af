package reminder

import (
	"context"
	"time"

	"github.com/julianstephens/daychain/internal/constants"
)

// Poller calls a function on a fixed cadence until its context is cancelled.
type Poller struct {
	Interval time.Duration
	// Now is the clock source; time.Now when nil.
	Now func() time.Time
}

// NewPoller returns a poller ticking at interval, or the default cadence when
// interval is not positive.
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}
	return &Poller{Interval: interval}
}

// Run calls tick once right away and then on every interval. It returns the
// context error once ctx is done.
func (p *Poller) Run(ctx context.Context, tick func(now time.Time)) error {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	interval := p.Interval
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	tick(now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick(now())
		}
	}
}
