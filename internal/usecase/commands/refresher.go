package commands

import (
	"context"
	"log/slog"
	"time"
)

// Refresher reloads the working set on a fixed interval and, when enabled,
// persists the expired status of overdue quotes after each reload.
type Refresher struct {
	cmds          QuoteCommands
	interval      time.Duration
	persistExpiry bool
	logger        *slog.Logger
}

func NewRefresher(cmds QuoteCommands, interval time.Duration, persistExpiry bool, logger *slog.Logger) *Refresher {
	return &Refresher{
		cmds:          cmds,
		interval:      interval,
		persistExpiry: persistExpiry,
		logger:        logger,
	}
}

// Run blocks until ctx is done. A non-positive interval disables the loop.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick runs one refresh cycle. Failures are logged; the next tick retries.
func (r *Refresher) Tick(ctx context.Context) {
	n, err := r.cmds.RefreshQuotes(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("scheduled quote refresh failed", "error", err)
		}
		return
	}
	r.logger.Debug("quotes refreshed", "count", n)

	if !r.persistExpiry {
		return
	}
	if _, err := r.cmds.ExpireOverdue(ctx); err != nil && ctx.Err() == nil {
		r.logger.Warn("expiring overdue quotes failed", "error", err)
	}
}
