package request

import (
	"strings"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

var ErrInvalidDate = errs.Mark(errs.New("dates must use the YYYY-MM-DD format"), errs.ErrValidationFailure)

type RejectQuoteRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=1000"`
}

type QuoteItemRequest struct {
	ID        *uuid.UUID       `json:"id"`
	Name      string           `json:"name" binding:"required,max=200"`
	Quantity  decimal.Decimal  `json:"quantity" swaggertype:"string"`
	UnitPrice decimal.Decimal  `json:"unit_price" swaggertype:"string"`
	Total     *decimal.Decimal `json:"total" swaggertype:"string"`
}

// CreateQuoteRequest records a supplier response. Status is always pending.
type CreateQuoteRequest struct {
	DealID     uuid.UUID          `json:"deal_id" swaggertype:"string" format:"uuid"`
	SupplierID uuid.UUID          `json:"supplier_id" swaggertype:"string" format:"uuid"`
	Number     string             `json:"quote_number" binding:"max=50"`
	QuoteDate  *string            `json:"quote_date" example:"2024-01-15"`
	ValidUntil *string            `json:"valid_until" example:"2024-02-15"`
	Subtotal   decimal.Decimal    `json:"subtotal" swaggertype:"string"`
	Tax        decimal.Decimal    `json:"tax" swaggertype:"string"`
	Total      decimal.Decimal    `json:"total" swaggertype:"string"`
	Currency   string             `json:"currency" binding:"omitempty,len=3"`
	Notes      *string            `json:"notes" binding:"omitempty,max=2000"`
	Items      []QuoteItemRequest `json:"items" binding:"omitempty,dive"`
}

// ToAttributes leaves a missing quote date for the domain to default.
func (r *CreateQuoteRequest) ToAttributes() (quote.Attributes, error) {
	a := quote.Attributes{
		Number:   r.Number,
		Subtotal: r.Subtotal,
		Tax:      r.Tax,
		Total:    r.Total,
		Currency: r.Currency,
		Deal:     quote.DealRef{ID: r.DealID},
		Supplier: quote.SupplierRef{ID: r.SupplierID},
		Notes:    r.Notes,
	}
	if a.Currency == "" {
		a.Currency = quote.DefaultCurrency
	}
	if r.QuoteDate != nil {
		d, err := parseDate(*r.QuoteDate)
		if err != nil {
			return quote.Attributes{}, err
		}
		a.QuoteDate = d
	}
	if r.ValidUntil != nil {
		d, err := parseDate(*r.ValidUntil)
		if err != nil {
			return quote.Attributes{}, err
		}
		a.ValidUntil = &d
	}
	if len(r.Items) > 0 {
		a.Items = make([]quote.Item, len(r.Items))
		for i, it := range r.Items {
			a.Items[i] = it.toDomain()
		}
	}
	return a, nil
}

// UpdateQuoteRequest edits monetary fields and line items. Status is not
// editable here; use the accept and reject endpoints.
type UpdateQuoteRequest struct {
	Number     *string             `json:"quote_number" binding:"omitempty,min=1,max=50"`
	QuoteDate  *string             `json:"quote_date" example:"2024-01-15"`
	ValidUntil patch.Field[string] `json:"valid_until" swaggertype:"string" example:"2024-02-15"`
	Subtotal   *decimal.Decimal    `json:"subtotal" swaggertype:"string"`
	Tax        *decimal.Decimal    `json:"tax" swaggertype:"string"`
	Total      *decimal.Decimal    `json:"total" swaggertype:"string"`
	Currency   *string             `json:"currency" binding:"omitempty,len=3"`
	Notes      patch.Field[string] `json:"notes" swaggertype:"string"`
	Items      *[]QuoteItemRequest `json:"items" binding:"omitempty,dive"`
	Status     *string             `json:"status"`
}

func (r *UpdateQuoteRequest) ToPatch() (quote.Patch, error) {
	if r.Status != nil {
		return quote.Patch{}, quote.ErrStatusNotEditable
	}

	p := quote.Patch{
		Number:   r.Number,
		Subtotal: r.Subtotal,
		Tax:      r.Tax,
		Total:    r.Total,
		Currency: r.Currency,
		Notes:    r.Notes,
	}

	if r.QuoteDate != nil {
		d, err := parseDate(*r.QuoteDate)
		if err != nil {
			return quote.Patch{}, err
		}
		p.QuoteDate = &d
	}

	if r.ValidUntil.IsSet() {
		if v := r.ValidUntil.Value(); v == nil {
			p.ValidUntil = patch.Null[time.Time]()
		} else {
			d, err := parseDate(*v)
			if err != nil {
				return quote.Patch{}, err
			}
			p.ValidUntil = patch.Set(d)
		}
	}

	if r.Items != nil {
		items := make([]quote.Item, len(*r.Items))
		for i, it := range *r.Items {
			items[i] = it.toDomain()
		}
		p.Items = &items
	}
	return p, nil
}

// toDomain fills a missing id and total; the computed total is quantity times unit price.
func (r QuoteItemRequest) toDomain() quote.Item {
	item := quote.Item{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(r.Name),
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
	}
	if r.ID != nil {
		item.ID = *r.ID
	}
	item.Total = patch.Coalesce(r.Total, item.LineTotal())
	return item
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
