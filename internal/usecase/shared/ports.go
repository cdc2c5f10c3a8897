package shared

import (
	"context"

	"supplier-quotes/internal/domain/quote"

	"github.com/google/uuid"
)

// QuoteFilter scopes a fetch. A nil DealID means every deal.
type QuoteFilter struct {
	DealID *uuid.UUID
}

func (f QuoteFilter) Matches(q *quote.Quote) bool {
	return f.DealID == nil || q.DealID() == *f.DealID
}

// QuoteBackend is the backing quote store. Both calls may fail transiently;
// implementations mark such failures with errs.ErrQuoteNotAvailable.
type QuoteBackend interface {
	FetchAll(ctx context.Context, filter QuoteFilter) ([]*quote.Quote, error)
	// PersistCreate stores a validated quote and returns it with its deal and
	// supplier filled in. Unknown references fail with quote.ErrUnknownReference.
	PersistCreate(ctx context.Context, q *quote.Quote) (*quote.Quote, error)
	// PersistUpdate fails with errs.ErrQuoteNotFound for an unknown id.
	PersistUpdate(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error)
}
