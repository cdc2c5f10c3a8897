package commands

import (
	"context"
	"log/slog"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/actor"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound = errs.Mark(errs.New("quote not found"), errs.ErrQuoteNotFound)
	ErrEmptyPatch    = errs.Mark(errs.New("no fields to update"), errs.ErrValidationFailure)
)

// QuoteStore is the part of the quote store the lifecycle needs.
type QuoteStore interface {
	List(ctx context.Context, dealID *uuid.UUID) ([]*quote.Quote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*quote.Quote, bool, error)
	Create(ctx context.Context, a quote.Attributes) (*quote.Quote, error)
	Update(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error)
	Refresh(ctx context.Context) ([]*quote.Quote, error)
}

type QuoteCommands interface {
	CreateQuote(ctx context.Context, a quote.Attributes) (*quote.Quote, error)
	Accept(ctx context.Context, id uuid.UUID) (*quote.Quote, error)
	Reject(ctx context.Context, id uuid.UUID, reason *string) (*quote.Quote, error)
	UpdateQuote(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error)
	ExpireOverdue(ctx context.Context) (int, error)
	RefreshQuotes(ctx context.Context) (int, error)
}

type quoteUseCaseImpl struct {
	store  QuoteStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewQuoteUseCase(store QuoteStore, clk clock.Clock, logger *slog.Logger) QuoteCommands {
	return &quoteUseCaseImpl{store: store, clock: clk, logger: logger}
}

// CreateQuote records a supplier response against a deal. New quotes always
// start pending.
func (uc *quoteUseCaseImpl) CreateQuote(ctx context.Context, a quote.Attributes) (*quote.Quote, error) {
	if a.Status != "" && a.Status != quote.StatusPending {
		return nil, quote.ErrStatusNotEditable
	}

	created, err := uc.store.Create(ctx, a)
	if err != nil {
		return nil, errs.Wrap(err, "create quote")
	}
	uc.logger.Info("quote created",
		"quote_id", created.ID().String(),
		"deal_id", created.DealID().String(),
		"supplier_id", created.Supplier().ID.String(),
		"actor", actor.String(ctx))
	return created, nil
}

// Accept requires the quote to be actionable: pending and not past its
// validity date. A stale pending quote has to be rejected or expired instead.
func (uc *quoteUseCaseImpl) Accept(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if current.Status() == quote.StatusPending && current.IsExpired(now) {
		return nil, quote.ErrQuoteExpired
	}
	next, err := current.Accept(now)
	if err != nil {
		return nil, err
	}

	updated, err := uc.store.Update(ctx, id, quote.TransitionPatch(current, next))
	if err != nil {
		return nil, errs.Wrap(err, "accept quote")
	}
	uc.logger.Info("quote accepted",
		"quote_id", id.String(),
		"deal_id", updated.DealID().String(),
		"actor", actor.String(ctx))
	return updated, nil
}

// Reject only requires the quote to be pending. The reason replaces the notes.
func (uc *quoteUseCaseImpl) Reject(ctx context.Context, id uuid.UUID, reason *string) (*quote.Quote, error) {
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := current.Reject(reason, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	updated, err := uc.store.Update(ctx, id, quote.TransitionPatch(current, next))
	if err != nil {
		return nil, errs.Wrap(err, "reject quote")
	}
	uc.logger.Info("quote rejected",
		"quote_id", id.String(),
		"deal_id", updated.DealID().String(),
		"with_reason", updated.Notes() != nil,
		"actor", actor.String(ctx))
	return updated, nil
}

// UpdateQuote applies direct corrections. Status is owned by Accept and Reject.
func (uc *quoteUseCaseImpl) UpdateQuote(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error) {
	if p.Status != nil || p.ExpectedStatus != nil {
		return nil, quote.ErrStatusNotEditable
	}
	if p.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	updated, err := uc.store.Update(ctx, id, p)
	if err != nil {
		return nil, errs.Wrap(err, "update quote")
	}
	uc.logger.Info("quote edited",
		"quote_id", id.String(),
		"actor", actor.String(ctx))
	return updated, nil
}

// ExpireOverdue persists the expired status for pending quotes past their
// validity date. Quotes decided concurrently are skipped. It returns the
// number of quotes expired and the first failure, after trying all of them.
func (uc *quoteUseCaseImpl) ExpireOverdue(ctx context.Context) (int, error) {
	all, err := uc.store.List(ctx, nil)
	if err != nil {
		return 0, err
	}

	now := uc.clock.Now()
	expired := 0
	var firstErr error
	for _, q := range all {
		next, derr := q.Expire(now)
		if derr != nil {
			continue
		}
		if _, uerr := uc.store.Update(ctx, q.ID(), quote.TransitionPatch(q, next)); uerr != nil {
			if errs.Is(uerr, errs.ErrInvalidTransition) {
				continue
			}
			if firstErr == nil {
				firstErr = errs.Wrap(uerr, "expire quote "+q.ID().String())
			}
			continue
		}
		expired++
	}

	if expired > 0 {
		uc.logger.Info("expired overdue quotes", "count", expired)
	}
	return expired, firstErr
}

func (uc *quoteUseCaseImpl) RefreshQuotes(ctx context.Context) (int, error) {
	quotes, err := uc.store.Refresh(ctx)
	if err != nil {
		return 0, err
	}
	return len(quotes), nil
}

// load falls back to one refresh so quotes recorded since the last refresh are found.
func (uc *quoteUseCaseImpl) load(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	q, ok, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		return q, nil
	}

	if _, err := uc.store.Refresh(ctx); err != nil {
		return nil, err
	}
	q, ok, err = uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuoteNotFound
	}
	return q, nil
}
