// Package memstore provides an in-memory quote backend for local runs and tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/usecase/shared"

	"github.com/google/uuid"
)

var _ shared.QuoteBackend = (*Backend)(nil)

var ErrUnavailable = errs.Mark(errs.New("in-memory backend switched offline"), errs.ErrQuoteNotAvailable)

// Backend keeps quotes in a map guarded by a mutex. Records are immutable
// values, so handing them out needs no copying.
type Backend struct {
	mu        sync.RWMutex
	quotes    map[uuid.UUID]*quote.Quote
	deals     map[uuid.UUID]quote.DealRef
	suppliers map[uuid.UUID]quote.SupplierRef
	clock   clock.Clock
	latency time.Duration
	offline bool
}

type Option func(*Backend)

// WithLatency delays every call, honouring context cancellation.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) { b.latency = d }
}

func NewBackend(clk clock.Clock, seed []*quote.Quote, opts ...Option) *Backend {
	b := &Backend{
		quotes:    make(map[uuid.UUID]*quote.Quote, len(seed)),
		deals:     make(map[uuid.UUID]quote.DealRef),
		suppliers: make(map[uuid.UUID]quote.SupplierRef),
		clock:     clk,
	}
	for _, q := range seed {
		b.quotes[q.ID()] = q
		b.deals[q.DealID()] = q.Deal()
		b.suppliers[q.Supplier().ID] = q.Supplier()
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetOffline makes subsequent calls fail with ErrUnavailable until reset.
func (b *Backend) SetOffline(offline bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offline = offline
}

func (b *Backend) FetchAll(ctx context.Context, filter shared.QuoteFilter) ([]*quote.Quote, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.offline {
		return nil, ErrUnavailable
	}
	out := make([]*quote.Quote, 0, len(b.quotes))
	for _, q := range b.quotes {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// PersistCreate only knows the deals and suppliers referenced by the seed.
func (b *Backend) PersistCreate(ctx context.Context, q *quote.Quote) (*quote.Quote, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.offline {
		return nil, ErrUnavailable
	}
	if _, exists := b.quotes[q.ID()]; exists {
		return nil, quote.ErrDuplicateQuote
	}
	a := q.Attributes()
	deal, ok := b.deals[a.Deal.ID]
	if !ok {
		return nil, quote.ErrUnknownReference
	}
	supplier, ok := b.suppliers[a.Supplier.ID]
	if !ok {
		return nil, quote.ErrUnknownReference
	}
	a.Deal = deal
	a.Supplier = supplier
	created := quote.Reconstruct(a)
	b.quotes[created.ID()] = created
	return created, nil
}

func (b *Backend) PersistUpdate(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.offline {
		return nil, ErrUnavailable
	}
	current, ok := b.quotes[id]
	if !ok {
		return nil, errs.Mark(errs.New("quote "+id.String()+" not found"), errs.ErrQuoteNotFound)
	}
	next, err := current.Apply(p, b.clock.Now())
	if err != nil {
		return nil, err
	}
	b.quotes[id] = next
	return next, nil
}

func (b *Backend) wait(ctx context.Context) error {
	if b.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(b.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
