package components

import (
	"fmt"
	"log/slog"

	"supplier-quotes/internal/infra/events"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/config"
	"supplier-quotes/internal/usecase/commands"
	"supplier-quotes/internal/usecase/queries"
	"supplier-quotes/internal/usecase/shared"
	"supplier-quotes/internal/usecase/store"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			NewQuoteStore,
			fx.As(new(commands.QuoteStore)),
			fx.As(new(queries.QuoteReader)),
			fx.As(new(events.Source)),
		),
	),
)

func NewQuoteStore(backend shared.QuoteBackend, cfg config.Config, clk clock.Clock, logger *slog.Logger) (*store.QuoteStore, error) {
	var scope shared.QuoteFilter
	if raw := cfg.Quote.ScopeDealID; raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid QUOTE_SCOPE_DEAL_ID %q: %w", raw, err)
		}
		scope.DealID = &id
	}
	return store.NewQuoteStore(backend, scope, clk, logger), nil
}
