package store

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/usecase/shared"

	"github.com/google/uuid"
)

// snapshot is never modified after it is published.
type snapshot struct {
	byID    map[uuid.UUID]*quote.Quote
	ordered []*quote.Quote
	loaded  bool
}

var emptySnapshot = &snapshot{byID: map[uuid.UUID]*quote.Quote{}}

// QuoteStore holds the working set of quotes for one scope.
//
// Readers load the current snapshot without locking. Writers build a new
// snapshot under mu and swap it in; mu is never held across backend calls.
type QuoteStore struct {
	backend shared.QuoteBackend
	scope   shared.QuoteFilter
	clock   clock.Clock
	logger  *slog.Logger

	current atomic.Pointer[snapshot]

	mu         sync.Mutex
	lastGen    uint64               // last refresh generation handed out
	appliedGen uint64               // generation of the snapshot in current
	seq        uint64               // completed updates
	updateSeq  map[uuid.UUID]uint64 // completion seq of the latest update per quote

	subsMu    sync.RWMutex
	subs      map[int]chan Event
	nextSubID int
}

func NewQuoteStore(backend shared.QuoteBackend, scope shared.QuoteFilter, clk clock.Clock, logger *slog.Logger) *QuoteStore {
	s := &QuoteStore{
		backend:   backend,
		scope:     scope,
		clock:     clk,
		logger:    logger,
		updateSeq: make(map[uuid.UUID]uint64),
		subs:      make(map[int]chan Event),
	}
	s.current.Store(emptySnapshot)
	return s
}

func (s *QuoteStore) Scope() shared.QuoteFilter {
	return s.scope
}

// List returns the working set, optionally narrowed to one deal, most recent
// quote date first. The first call loads the working set from the backend.
func (s *QuoteStore) List(ctx context.Context, dealID *uuid.UUID) ([]*quote.Quote, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if dealID == nil {
		out := make([]*quote.Quote, len(snap.ordered))
		copy(out, snap.ordered)
		return out, nil
	}
	out := make([]*quote.Quote, 0, len(snap.ordered))
	for _, q := range snap.ordered {
		if q.DealID() == *dealID {
			out = append(out, q)
		}
	}
	return out, nil
}

// GetByID reports absence with ok == false; err is only set when the working
// set could not be loaded.
func (s *QuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*quote.Quote, bool, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, false, err
	}
	q, ok := snap.byID[id]
	return q, ok, nil
}

// Update validates and persists a patch, then swaps the returned record in.
// Once the backend has accepted the write the record is applied even if ctx
// is done, so the working set never lags behind a completed mutation.
func (s *QuoteStore) Update(ctx context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.backend.PersistUpdate(ctx, id, p)
	if err != nil {
		return nil, classify(err, "persist quote update")
	}
	if updated == nil {
		return nil, errs.Mark(errs.New("backend returned no record"), errs.ErrQuoteNotAvailable)
	}

	next, seq := s.apply(updated)

	s.logger.Debug("quote updated",
		"quote_id", id.String(),
		"status", updated.Status().String(),
		"seq", seq)

	s.publish(Event{
		Type:    EventUpdated,
		QuoteID: id,
		Quote:   updated,
		Count:   len(next.ordered),
		At:      s.clock.Now(),
	})
	return updated, nil
}

// Create validates a new quote, persists it and adds the stored record to the
// working set. A missing id is generated and the status defaults to pending.
func (s *QuoteStore) Create(ctx context.Context, a quote.Attributes) (*quote.Quote, error) {
	q, err := quote.NewQuote(a, s.clock.Now())
	if err != nil {
		return nil, err
	}

	created, err := s.backend.PersistCreate(ctx, q)
	if err != nil {
		return nil, classify(err, "persist new quote")
	}
	if created == nil {
		return nil, errs.Mark(errs.New("backend returned no record"), errs.ErrQuoteNotAvailable)
	}

	next, seq := s.apply(created)

	s.logger.Debug("quote created",
		"quote_id", created.ID().String(),
		"deal_id", created.DealID().String(),
		"seq", seq)

	s.publish(Event{
		Type:    EventCreated,
		QuoteID: created.ID(),
		Quote:   created,
		Count:   len(next.ordered),
		At:      s.clock.Now(),
	})
	return created, nil
}

// apply swaps a record the backend just wrote into the working set. Writes
// that race on one id can finish out of commit order, so a record older than
// the one already held is not swapped in.
func (s *QuoteStore) apply(q *quote.Quote) (*snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.updateSeq[q.ID()] = s.seq
	cur := s.current.Load()
	if held, ok := cur.byID[q.ID()]; ok && q.UpdatedAt().Before(held.UpdatedAt()) {
		s.logger.Debug("keeping newer quote record",
			"quote_id", q.ID().String(),
			"held_updated_at", held.UpdatedAt(),
			"write_updated_at", q.UpdatedAt())
		return cur, s.seq
	}
	next := cur.with(q, s.scope)
	s.current.Store(next)
	return next, s.seq
}

// Refresh re-fetches the working set and replaces it atomically.
//
// The result is dropped when ctx is done by the time the fetch returns, or
// when a refresh that started later has already been applied. Records whose
// update completed after this refresh started are kept as they are, since the
// fetch may predate them.
func (s *QuoteStore) Refresh(ctx context.Context) ([]*quote.Quote, error) {
	s.mu.Lock()
	s.lastGen++
	gen := s.lastGen
	startSeq := s.seq
	s.mu.Unlock()

	records, err := s.backend.FetchAll(ctx, s.scope)
	if err != nil {
		return nil, classify(err, "fetch quotes")
	}
	if err := ctx.Err(); err != nil {
		s.logger.Debug("discarding refresh result", "generation", gen, "reason", err.Error())
		return nil, err
	}

	s.mu.Lock()
	if gen <= s.appliedGen {
		cur := s.current.Load()
		s.mu.Unlock()
		s.logger.Debug("discarding stale refresh result", "generation", gen)
		return cur.list(), nil
	}

	cur := s.current.Load()
	byID := make(map[uuid.UUID]*quote.Quote, len(records))
	for _, r := range records {
		if r == nil || !s.scope.Matches(r) {
			continue
		}
		byID[r.ID()] = r
	}
	for id, seq := range s.updateSeq {
		if seq <= startSeq {
			// the fetch already reflects this update
			delete(s.updateSeq, id)
			continue
		}
		if kept, ok := cur.byID[id]; ok {
			byID[id] = kept
		}
	}
	next := newSnapshot(byID)
	s.appliedGen = gen
	s.current.Store(next)
	s.mu.Unlock()

	s.logger.Debug("quote working set refreshed", "generation", gen, "count", len(next.ordered))

	s.publish(Event{
		Type:       EventRefreshed,
		Count:      len(next.ordered),
		Generation: gen,
		At:         s.clock.Now(),
	})
	return next.list(), nil
}

func (s *QuoteStore) ensureLoaded(ctx context.Context) (*snapshot, error) {
	snap := s.current.Load()
	if snap.loaded {
		return snap, nil
	}
	if _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.current.Load(), nil
}

func newSnapshot(byID map[uuid.UUID]*quote.Quote) *snapshot {
	ordered := make([]*quote.Quote, 0, len(byID))
	for _, q := range byID {
		ordered = append(ordered, q)
	}
	sortByRecency(ordered)
	return &snapshot{byID: byID, ordered: ordered, loaded: true}
}

// with returns a copy of s with q replacing any record of the same id.
func (s *snapshot) with(q *quote.Quote, scope shared.QuoteFilter) *snapshot {
	byID := make(map[uuid.UUID]*quote.Quote, len(s.byID)+1)
	for id, existing := range s.byID {
		byID[id] = existing
	}
	if scope.Matches(q) {
		byID[q.ID()] = q
	} else {
		delete(byID, q.ID())
	}
	next := newSnapshot(byID)
	next.loaded = s.loaded
	return next
}

func (s *snapshot) list() []*quote.Quote {
	out := make([]*quote.Quote, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// sortByRecency orders by quote date descending, then quote number, then id.
func sortByRecency(qs []*quote.Quote) {
	sort.Slice(qs, func(i, j int) bool {
		a, b := qs[i], qs[j]
		if !a.QuoteDate().Equal(b.QuoteDate()) {
			return a.QuoteDate().After(b.QuoteDate())
		}
		if a.Number() != b.Number() {
			return a.Number() < b.Number()
		}
		return a.ID().String() < b.ID().String()
	})
}

// classify keeps typed outcomes intact and treats anything else from the
// backend as the store being unreachable.
func classify(err error, msg string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errs.Is(err, errs.ErrQuoteNotFound),
		errs.Is(err, errs.ErrQuoteNotAvailable),
		errs.Is(err, errs.ErrInvalidTransition),
		errs.Is(err, errs.ErrValidationFailure):
		return errs.Wrap(err, msg)
	default:
		return errs.Mark(errs.Wrap(err, msg), errs.ErrQuoteNotAvailable)
	}
}
