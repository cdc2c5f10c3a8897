package queries

import (
	"context"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrQuoteNotFound = errs.Mark(errs.New("quote not found"), errs.ErrQuoteNotFound)

type DealView struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Stage string    `json:"stage"`
}

type SupplierView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

type QuoteItemView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// QuoteView carries both the stored status and the date-derived expiry.
type QuoteView struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"quote_number"`
	QuoteDate    time.Time       `json:"quote_date"`
	ValidUntil   *time.Time      `json:"valid_until,omitempty"`
	Status       string          `json:"status"`
	IsExpired    bool            `json:"is_expired"`
	IsActionable bool            `json:"is_actionable"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
	Deal         DealView        `json:"deal"`
	Supplier     SupplierView    `json:"supplier"`
	Items        []QuoteItemView `json:"items"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ComparisonEntryView struct {
	Rank              int             `json:"rank"`
	Quote             *QuoteView      `json:"quote"`
	PriceDelta        decimal.Decimal `json:"price_delta"`
	PriceDeltaPercent decimal.Decimal `json:"price_delta_percent"`
	IsBestPrice       bool            `json:"is_best_price"`
	IsBestBadge       bool            `json:"is_best_badge"`
}

type ComparisonView struct {
	DealID      uuid.UUID             `json:"deal_id"`
	HasData     bool                  `json:"has_data"`
	Count       int                   `json:"count"`
	Lowest      decimal.Decimal       `json:"lowest"`
	Highest     decimal.Decimal       `json:"highest"`
	Average     decimal.Decimal       `json:"average"`
	BestQuoteID *uuid.UUID            `json:"best_quote_id,omitempty"`
	Entries     []ComparisonEntryView `json:"entries"`
}

type MetricsView struct {
	DealID       *uuid.UUID      `json:"deal_id,omitempty"`
	Total        int             `json:"total"`
	Pending      int             `json:"pending"`
	Accepted     int             `json:"accepted"`
	Rejected     int             `json:"rejected"`
	Expired      int             `json:"expired"`
	TotalValue   decimal.Decimal `json:"total_value"`
	AverageValue decimal.Decimal `json:"average_value"`
}

// ListFilter narrows List. Status matches the stored status; nil means all.
// A zero Limit without a cursor returns every match.
type ListFilter struct {
	DealID *uuid.UUID
	Status *quote.Status
	Cursor *Cursor
	Limit  int
}

// QuoteReader is the read side of the quote store.
type QuoteReader interface {
	List(ctx context.Context, dealID *uuid.UUID) ([]*quote.Quote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*quote.Quote, bool, error)
}

type QuoteQueries interface {
	List(ctx context.Context, filter ListFilter) ([]*QuoteView, *Cursor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*QuoteView, error)
	CompareDeal(ctx context.Context, dealID uuid.UUID) (*ComparisonView, error)
	Metrics(ctx context.Context, dealID *uuid.UUID) (*MetricsView, error)
}

type quoteQueriesImpl struct {
	reader QuoteReader
	clock  clock.Clock
}

func NewQuoteQueries(reader QuoteReader, clk clock.Clock) QuoteQueries {
	return &quoteQueriesImpl{reader: reader, clock: clk}
}

func (q *quoteQueriesImpl) List(ctx context.Context, filter ListFilter) ([]*QuoteView, *Cursor, error) {
	all, err := q.reader.List(ctx, filter.DealID)
	if err != nil {
		return nil, nil, err
	}

	rows := all
	if filter.Status != nil {
		rows = make([]*quote.Quote, 0, len(all))
		for _, r := range all {
			if r.Status() == *filter.Status {
				rows = append(rows, r)
			}
		}
	}

	paged := filter.Limit > 0 || (filter.Cursor != nil && filter.Cursor.After != "")
	var next *Cursor
	if paged {
		start := 0
		if filter.Cursor != nil && filter.Cursor.After != "" {
			afterDate, afterID, derr := DecodeAfterCursor(filter.Cursor.After)
			if derr != nil {
				return nil, nil, errs.Wrap(ErrInvalidCursor, derr.Error())
			}
			start = startAfter(rows, afterDate, afterID)
		}
		limit := ValidateLimit(filter.Limit)
		end := min(start+limit, len(rows))
		if end < len(rows) {
			last := rows[end-1]
			next = &Cursor{After: EncodeAfterCursor(last.QuoteDate(), last.ID())}
		}
		rows = rows[start:end]
	}

	now := q.clock.Now()
	views := make([]*QuoteView, len(rows))
	for i, r := range rows {
		views[i] = ToQuoteView(r, now)
	}
	return views, next, nil
}

func (q *quoteQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*QuoteView, error) {
	r, ok, err := q.reader.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuoteNotFound
	}
	return ToQuoteView(r, q.clock.Now()), nil
}

func (q *quoteQueriesImpl) CompareDeal(ctx context.Context, dealID uuid.UUID) (*ComparisonView, error) {
	rows, err := q.reader.List(ctx, &dealID)
	if err != nil {
		return nil, err
	}

	c := quote.Compare(rows)
	now := q.clock.Now()
	view := &ComparisonView{
		DealID:  dealID,
		HasData: c.HasData(),
		Count:   c.Count,
		Lowest:  c.Lowest,
		Highest: c.Highest,
		Average: c.Average,
		Entries: make([]ComparisonEntryView, len(c.Ranked)),
	}
	if c.Best != nil {
		id := c.Best.ID()
		view.BestQuoteID = &id
	}
	for i, r := range c.Ranked {
		view.Entries[i] = ComparisonEntryView{
			Rank:              r.Rank,
			Quote:             ToQuoteView(r.Quote, now),
			PriceDelta:        r.PriceDelta,
			PriceDeltaPercent: r.PriceDeltaPercent.Round(2),
			IsBestPrice:       r.IsBestPrice,
			IsBestBadge:       r.IsBestBadge,
		}
	}
	return view, nil
}

func (q *quoteQueriesImpl) Metrics(ctx context.Context, dealID *uuid.UUID) (*MetricsView, error) {
	rows, err := q.reader.List(ctx, dealID)
	if err != nil {
		return nil, err
	}

	s := quote.Summarize(rows)
	return &MetricsView{
		DealID:       dealID,
		Total:        s.Total,
		Pending:      s.Pending,
		Accepted:     s.Accepted,
		Rejected:     s.Rejected,
		Expired:      s.Expired,
		TotalValue:   s.TotalValue,
		AverageValue: s.AverageValue.Round(2),
	}, nil
}

func ToQuoteView(q *quote.Quote, now time.Time) *QuoteView {
	a := q.Attributes()
	items := make([]QuoteItemView, len(a.Items))
	for i, it := range a.Items {
		items[i] = QuoteItemView{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		}
	}
	return &QuoteView{
		ID:           a.ID,
		Number:       a.Number,
		QuoteDate:    a.QuoteDate,
		ValidUntil:   a.ValidUntil,
		Status:       a.Status.String(),
		IsExpired:    q.IsExpired(now),
		IsActionable: q.IsActionable(now),
		Subtotal:     a.Subtotal,
		Tax:          a.Tax,
		Total:        a.Total,
		Currency:     a.Currency,
		Deal:         DealView{ID: a.Deal.ID, Title: a.Deal.Title, Stage: a.Deal.Stage},
		Supplier:     SupplierView{ID: a.Supplier.ID, Name: a.Supplier.Name, City: a.Supplier.City},
		Items:        items,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// startAfter finds the row after the cursor. When the cursor row is gone the
// page resumes at the first strictly older quote.
func startAfter(rows []*quote.Quote, afterDate time.Time, afterID uuid.UUID) int {
	for i, r := range rows {
		if r.ID() == afterID {
			return i + 1
		}
	}
	for i, r := range rows {
		if r.QuoteDate().Before(afterDate) {
			return i
		}
	}
	return len(rows)
}
