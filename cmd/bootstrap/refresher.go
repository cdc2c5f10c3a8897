package bootstrap

import (
	"context"
	"log/slog"

	"supplier-quotes/internal/pkg/config"
	"supplier-quotes/internal/usecase/commands"

	"go.uber.org/fx"
)

var RefresherModule = fx.Module("refresher",
	fx.Invoke(StartRefresher),
)

// StartRefresher loads the working set once at startup, then keeps it fresh
// in the background.
func StartRefresher(lc fx.Lifecycle, cfg config.Config, cmds commands.QuoteCommands, logger *slog.Logger) {
	r := commands.NewRefresher(cmds, cfg.Quote.RefreshInterval, cfg.Quote.PersistExpiry, logger)
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			n, err := cmds.RefreshQuotes(ctx)
			if err != nil {
				// not fatal: the store loads lazily and the next tick retries
				logger.Warn("initial quote load failed", "error", err)
			} else {
				logger.Info("quotes loaded", "count", n, "backend", cfg.Quote.Backend)
			}
			go func() {
				defer close(done)
				r.Run(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
