package repository

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/infra"
	"supplier-quotes/internal/infra/db"
	"supplier-quotes/internal/infra/pgquery"
	"supplier-quotes/internal/infra/repository/converter"
	"supplier-quotes/internal/infra/uow"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/pkg/pgconv"
	"supplier-quotes/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type QuoteQueries interface {
	ListQuoteRows(ctx context.Context, db db.DBTX, dealID pgtype.UUID) ([]pgquery.QuoteRow, error)
	GetQuoteRow(ctx context.Context, db db.DBTX, id pgtype.UUID) (pgquery.QuoteRow, error)
	GetQuoteRowForUpdate(ctx context.Context, db db.DBTX, id pgtype.UUID) (pgquery.QuoteRow, error)
	UpdateQuoteRow(ctx context.Context, db db.DBTX, arg pgquery.UpdateQuoteRowParams) (int64, error)
	InsertQuoteRow(ctx context.Context, db db.DBTX, arg pgquery.InsertQuoteRowParams) error
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// QuoteRepository is the Postgres quote backend.
type QuoteRepository struct {
	queries QuoteQueries
	uow     uow.UnitOfWork
	clock   clock.Clock
	logger  *slog.Logger
}

var _ shared.QuoteBackend = (*QuoteRepository)(nil)

func NewQuoteRepository(queries QuoteQueries, uow uow.UnitOfWork, clk clock.Clock, logger *slog.Logger) *QuoteRepository {
	return &QuoteRepository{
		queries: queries,
		uow:     uow,
		clock:   clk,
		logger:  logger,
	}
}

func (r *QuoteRepository) FetchAll(ctx context.Context, filter shared.QuoteFilter) ([]*quote.Quote, error) {
	dealID := pgtype.UUID{}
	if filter.DealID != nil {
		dealID = pgconv.UUIDToPgtype(*filter.DealID)
	}

	var rows []pgquery.QuoteRow
	err := r.uow.WithDB(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		rows, err = r.queries.ListQuoteRows(ctx, tx, dealID)
		return err
	})
	if err != nil {
		return nil, r.wrap("failed to list quotes", err)
	}

	quotes := make([]*quote.Quote, 0, len(rows))
	for _, row := range rows {
		q, err := converter.RowToQuote(row)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindCorruptRow, "failed to decode quote row", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// PersistCreate inserts the quote and reads it back joined with its deal and supplier.
func (r *QuoteRepository) PersistCreate(ctx context.Context, q *quote.Quote) (*quote.Quote, error) {
	params, err := converter.QuoteToInsertParams(q)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode quote", err)
	}

	var created *quote.Quote
	err = r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := r.queries.InsertQuoteRow(ctx, tx, params); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgForeignKeyViolation:
					return quote.ErrUnknownReference
				case pgUniqueViolation:
					return quote.ErrDuplicateQuote
				}
			}
			return err
		}
		row, err := r.queries.GetQuoteRow(ctx, tx, params.ID)
		if err != nil {
			return err
		}
		created, err = converter.RowToQuote(row)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindCorruptRow, "failed to decode quote row", err)
		}
		return nil
	})
	if err != nil {
		return nil, r.wrap("failed to create quote", err)
	}
	return created, nil
}

// PersistUpdate locks the row, applies the patch to the stored record and writes it back.
func (r *QuoteRepository) PersistUpdate(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error) {
	var updated *quote.Quote
	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		row, err := r.queries.GetQuoteRowForUpdate(ctx, tx, pgconv.UUIDToPgtype(id))
		if err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr(r.logger, infra.KindNotFound, "quote not found", nil)
			}
			return err
		}
		current, err := converter.RowToQuote(row)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindCorruptRow, "failed to decode quote row", err)
		}

		next, err := current.Apply(p, r.clock.Now())
		if err != nil {
			return err
		}

		params, err := converter.QuoteToUpdateParams(next)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode quote", err)
		}
		n, err := r.queries.UpdateQuoteRow(ctx, tx, params)
		if err != nil {
			return err
		}
		if n == 0 {
			return infra.WrapRepoErr(r.logger, infra.KindNotFound, "quote not found", nil)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, r.wrap("failed to update quote", err)
	}
	return updated, nil
}

// wrap leaves domain outcomes and already classified errors untouched.
func (r *QuoteRepository) wrap(msg string, err error) error {
	var repoErr infra.RepositoryError
	switch {
	case errors.As(err, &repoErr),
		errs.Is(err, errs.ErrValidationFailure),
		errs.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	case isUnavailable(err):
		return infra.WrapRepoErr(r.logger, infra.KindUnavailable, msg, err)
	default:
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}
}

func isUnavailable(err error) bool {
	if errs.Is(err, uow.ErrTransactionBegin) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.Timeout(err)
}
