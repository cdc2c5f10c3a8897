//go:build unit || e2e

package builder

import (
	"time"

	"supplier-quotes/internal/domain/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	DefaultDealID     = uuid.MustParse("a0000000-0000-0000-0000-000000000001")
	DefaultSupplierID = uuid.MustParse("b0000000-0000-0000-0000-000000000001")
	DefaultNow        = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
)

type QuoteBuilder struct {
	ID         uuid.UUID
	Number     string
	QuoteDate  time.Time
	ValidUntil *time.Time
	Status     quote.Status
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Currency   string
	Deal       quote.DealRef
	Supplier   quote.SupplierRef
	Items      []quote.Item
	Notes      *string
	Now        time.Time
}

func NewQuoteBuilder() *QuoteBuilder {
	validUntil := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	notes := "Best price guaranteed"
	return &QuoteBuilder{
		ID:         uuid.New(),
		Number:     "Q-2024-001",
		QuoteDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		ValidUntil: &validUntil,
		Status:     quote.StatusPending,
		Subtotal:   decimal.NewFromInt(45000),
		Tax:        decimal.NewFromInt(4500),
		Total:      decimal.NewFromInt(49500),
		Currency:   "USD",
		Deal: quote.DealRef{
			ID:    DefaultDealID,
			Title: "Downtown Office Complex",
			Stage: "negotiation",
		},
		Supplier: quote.SupplierRef{
			ID:   DefaultSupplierID,
			Name: "Steel Works Inc",
			City: "Chicago",
		},
		Items: []quote.Item{
			{
				ID:        uuid.New(),
				Name:      "Steel Beams",
				Quantity:  decimal.NewFromInt(100),
				UnitPrice: decimal.NewFromInt(450),
				Total:     decimal.NewFromInt(45000),
			},
		},
		Notes: &notes,
		Now:   DefaultNow,
	}
}

func (b *QuoteBuilder) With(mutate func(*QuoteBuilder)) *QuoteBuilder {
	mutate(b)
	return b
}

func (b *QuoteBuilder) WithTotal(total int64) *QuoteBuilder {
	b.Subtotal = decimal.NewFromInt(total)
	b.Tax = decimal.Zero
	b.Total = decimal.NewFromInt(total)
	return b
}

func (b *QuoteBuilder) WithStatus(s quote.Status) *QuoteBuilder {
	b.Status = s
	return b
}

func (b *QuoteBuilder) WithDeal(id uuid.UUID) *QuoteBuilder {
	b.Deal.ID = id
	return b
}

func (b *QuoteBuilder) WithNumber(n string) *QuoteBuilder {
	b.Number = n
	return b
}

func (b *QuoteBuilder) WithQuoteDate(t time.Time) *QuoteBuilder {
	b.QuoteDate = t
	return b
}

func (b *QuoteBuilder) WithValidUntil(t *time.Time) *QuoteBuilder {
	b.ValidUntil = t
	return b
}

func (b *QuoteBuilder) WithNotes(n *string) *QuoteBuilder {
	b.Notes = n
	return b
}

func (b *QuoteBuilder) Attributes() quote.Attributes {
	return quote.Attributes{
		ID:         b.ID,
		Number:     b.Number,
		QuoteDate:  b.QuoteDate,
		ValidUntil: b.ValidUntil,
		Status:     b.Status,
		Subtotal:   b.Subtotal,
		Tax:        b.Tax,
		Total:      b.Total,
		Currency:   b.Currency,
		Deal:       b.Deal,
		Supplier:   b.Supplier,
		Items:      b.Items,
		Notes:      b.Notes,
		CreatedAt:  b.Now,
		UpdatedAt:  b.Now,
	}
}

// Build methods
func (b *QuoteBuilder) BuildDomain() (*quote.Quote, error) {
	return quote.NewQuote(b.Attributes(), b.Now)
}

// Build skips validation, like a record read back from storage.
func (b *QuoteBuilder) Build() *quote.Quote {
	return quote.Reconstruct(b.Attributes())
}

// BuildTotals builds one reconstructed quote per total, in order, for the default deal.
func BuildTotals(totals ...int64) []*quote.Quote {
	out := make([]*quote.Quote, len(totals))
	for i, t := range totals {
		out[i] = NewQuoteBuilder().WithTotal(t).Build()
	}
	return out
}
