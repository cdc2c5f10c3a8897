package bootstrap

import (
	"context"
	"log/slog"

	"supplier-quotes/internal/infra/events"
	"supplier-quotes/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Invoke(StartEventForwarder),
)

// StartEventForwarder publishes store events to Redis when REDIS_ADDR is set.
func StartEventForwarder(lc fx.Lifecycle, cfg config.Config, source events.Source, logger *slog.Logger) {
	if !cfg.Redis.Enabled() {
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var closeClient func() error

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			rdb, err := events.ConnectRedis(ctx, cfg.Redis)
			if err != nil {
				cancel()
				return err
			}
			closeClient = rdb.Close

			fwd := events.NewForwarder(source, rdb, cfg.Redis.Channel, logger)
			go func() {
				defer close(done)
				fwd.Run(runCtx)
			}()
			logger.Info("forwarding quote events", "addr", cfg.Redis.Addr, "channel", cfg.Redis.Channel)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			if closeClient != nil {
				return closeClient()
			}
			return nil
		},
	})
}
