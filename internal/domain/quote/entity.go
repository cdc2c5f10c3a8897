package quote

import (
	"strings"
	"time"

	"supplier-quotes/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus     = errs.Mark(errs.New("invalid quote status"), errs.ErrValidationFailure)
	ErrInvalidCurrency   = errs.Mark(errs.New("currency must be a 3-letter ISO code"), errs.ErrValidationFailure)
	ErrNegativeAmount    = errs.Mark(errs.New("monetary amount cannot be negative"), errs.ErrValidationFailure)
	ErrNegativeQuantity  = errs.Mark(errs.New("item quantity cannot be negative"), errs.ErrValidationFailure)
	ErrEmptyItemName     = errs.Mark(errs.New("item name cannot be empty"), errs.ErrValidationFailure)
	ErrEmptyNumber       = errs.Mark(errs.New("quote number cannot be empty"), errs.ErrValidationFailure)
	ErrTotalMismatch     = errs.Mark(errs.New("total must equal subtotal plus tax"), errs.ErrValidationFailure)
	ErrMissingDeal       = errs.Mark(errs.New("quote must reference a deal"), errs.ErrValidationFailure)
	ErrMissingSupplier   = errs.Mark(errs.New("quote must reference a supplier"), errs.ErrValidationFailure)
	ErrStatusNotEditable = errs.Mark(errs.New("status can only change through accept or reject"), errs.ErrValidationFailure)
	ErrUnknownReference  = errs.Mark(errs.New("deal or supplier does not exist"), errs.ErrValidationFailure)
	ErrDuplicateQuote    = errs.Mark(errs.New("quote already exists"), errs.ErrValidationFailure)

	ErrAlreadyDecided = errs.Mark(errs.New("quote is no longer pending"), errs.ErrInvalidTransition)
	ErrQuoteExpired   = errs.Mark(errs.New("quote has expired"), errs.ErrInvalidTransition)
	ErrNotYetExpired  = errs.Mark(errs.New("quote is still within its validity date"), errs.ErrInvalidTransition)
	ErrStatusChanged  = errs.Mark(errs.New("quote status changed concurrently"), errs.ErrInvalidTransition)
)

// Attributes is the flat form of a quote used to construct, persist and render it.
type Attributes struct {
	ID         uuid.UUID
	Number     string
	QuoteDate  time.Time
	ValidUntil *time.Time
	Status     Status
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Currency   string
	Deal       DealRef
	Supplier   SupplierRef
	Items      []Item
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Quote is immutable once built; every change produces a new value.
type Quote struct {
	id         uuid.UUID
	number     string
	quoteDate  time.Time
	validUntil *time.Time
	status     Status
	subtotal   decimal.Decimal
	tax        decimal.Decimal
	total      decimal.Decimal
	currency   string
	deal       DealRef
	supplier   SupplierRef
	items      []Item
	notes      *string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewQuote records a supplier response. Amounts are validated here, not on read.
func NewQuote(a Attributes, now time.Time) (*Quote, error) {
	if strings.TrimSpace(a.Number) == "" {
		return nil, ErrEmptyNumber
	}
	if a.Deal.ID == uuid.Nil {
		return nil, ErrMissingDeal
	}
	if a.Supplier.ID == uuid.Nil {
		return nil, ErrMissingSupplier
	}
	if err := validateAmounts(a.Subtotal, a.Tax, a.Total); err != nil {
		return nil, err
	}
	if !a.Subtotal.Add(a.Tax).Equal(a.Total) {
		return nil, ErrTotalMismatch
	}
	if err := validateItems(a.Items); err != nil {
		return nil, err
	}
	currency, err := NormalizeCurrency(a.Currency)
	if err != nil {
		return nil, err
	}

	status := a.Status
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	id := a.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	quoteDate := a.QuoteDate
	if quoteDate.IsZero() {
		quoteDate = now
	}

	a.ID = id
	a.Number = strings.TrimSpace(a.Number)
	a.QuoteDate = quoteDate
	a.Status = status
	a.Currency = currency
	a.CreatedAt = now
	a.UpdatedAt = now
	return Reconstruct(a), nil
}

// Reconstruct rebuilds a stored quote without validation.
func Reconstruct(a Attributes) *Quote {
	return &Quote{
		id:         a.ID,
		number:     a.Number,
		quoteDate:  a.QuoteDate,
		validUntil: copyTime(a.ValidUntil),
		status:     a.Status,
		subtotal:   a.Subtotal,
		tax:        a.Tax,
		total:      a.Total,
		currency:   a.Currency,
		deal:       a.Deal,
		supplier:   a.Supplier,
		items:      copyItems(a.Items),
		notes:      copyString(a.Notes),
		createdAt:  a.CreatedAt,
		updatedAt:  a.UpdatedAt,
	}
}

func (q *Quote) Attributes() Attributes {
	return Attributes{
		ID:         q.id,
		Number:     q.number,
		QuoteDate:  q.quoteDate,
		ValidUntil: copyTime(q.validUntil),
		Status:     q.status,
		Subtotal:   q.subtotal,
		Tax:        q.tax,
		Total:      q.total,
		Currency:   q.currency,
		Deal:       q.deal,
		Supplier:   q.supplier,
		Items:      copyItems(q.items),
		Notes:      copyString(q.notes),
		CreatedAt:  q.createdAt,
		UpdatedAt:  q.updatedAt,
	}
}

func (q *Quote) ID() uuid.UUID             { return q.id }
func (q *Quote) Number() string            { return q.number }
func (q *Quote) QuoteDate() time.Time      { return q.quoteDate }
func (q *Quote) ValidUntil() *time.Time    { return copyTime(q.validUntil) }
func (q *Quote) Status() Status            { return q.status }
func (q *Quote) Subtotal() decimal.Decimal { return q.subtotal }
func (q *Quote) Tax() decimal.Decimal      { return q.tax }
func (q *Quote) Total() decimal.Decimal    { return q.total }
func (q *Quote) Currency() string          { return q.currency }
func (q *Quote) Deal() DealRef             { return q.deal }
func (q *Quote) DealID() uuid.UUID         { return q.deal.ID }
func (q *Quote) Supplier() SupplierRef     { return q.supplier }
func (q *Quote) Items() []Item             { return copyItems(q.items) }
func (q *Quote) Notes() *string            { return copyString(q.notes) }
func (q *Quote) CreatedAt() time.Time      { return q.createdAt }
func (q *Quote) UpdatedAt() time.Time      { return q.updatedAt }

// IsExpired is date-derived and ignores the stored status.
func (q *Quote) IsExpired(now time.Time) bool {
	return q.validUntil != nil && q.validUntil.Before(now)
}

// IsActionable gates accept: the quote must be pending and not past its validity date.
func (q *Quote) IsActionable(now time.Time) bool {
	return q.status == StatusPending && !q.IsExpired(now)
}

// HasConsistentTotal reports whether the stored total matches subtotal plus tax.
func (q *Quote) HasConsistentTotal() bool {
	return q.subtotal.Add(q.tax).Equal(q.total)
}

func (q *Quote) clone() *Quote {
	return Reconstruct(q.Attributes())
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
