package components

import (
	"log/slog"

	"supplier-quotes/internal/infra/memstore"
	"supplier-quotes/internal/infra/pgquery"
	"supplier-quotes/internal/infra/repository"
	"supplier-quotes/internal/infra/uow"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewQuoteBackend,
	),
)

// NewQuoteBackend selects the backing store: Postgres when a pool was
// opened, otherwise the seeded in-memory backend.
func NewQuoteBackend(pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) shared.QuoteBackend {
	if pool == nil {
		logger.Info("serving quotes from the in-memory backend")
		return memstore.NewBackend(clk, memstore.SampleQuotes())
	}
	return repository.NewQuoteRepository(pgquery.New(), uow.NewPostgresUoW(pool, logger), clk, logger)
}
