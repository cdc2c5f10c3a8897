package quote

import (
	"strings"
	"time"

	"supplier-quotes/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

// Patch is a partial update. Nil pointers and unset fields leave the record as is.
type Patch struct {
	Number     *string
	QuoteDate  *time.Time
	ValidUntil patch.Field[time.Time]
	Subtotal   *decimal.Decimal
	Tax        *decimal.Decimal
	Total      *decimal.Decimal
	Currency   *string
	Notes      patch.Field[string]
	Items      *[]Item
	Status     *Status

	// ExpectedStatus makes the update conditional on the stored status.
	ExpectedStatus *Status
}

func (p Patch) IsEmpty() bool {
	return p.Number == nil && p.QuoteDate == nil && !p.ValidUntil.IsSet() &&
		p.Subtotal == nil && p.Tax == nil && p.Total == nil && p.Currency == nil &&
		!p.Notes.IsSet() && p.Items == nil && p.Status == nil
}

// Validate checks the patch on its own, before any record is loaded.
func (p Patch) Validate() error {
	if p.Number != nil && strings.TrimSpace(*p.Number) == "" {
		return ErrEmptyNumber
	}
	for _, a := range []*decimal.Decimal{p.Subtotal, p.Tax, p.Total} {
		if a != nil && a.IsNegative() {
			return ErrNegativeAmount
		}
	}
	if p.Subtotal != nil && p.Tax != nil && p.Total != nil &&
		!p.Subtotal.Add(*p.Tax).Equal(*p.Total) {
		return ErrTotalMismatch
	}
	if p.Currency != nil {
		if _, err := NormalizeCurrency(*p.Currency); err != nil {
			return err
		}
	}
	if p.Items != nil {
		if err := validateItems(*p.Items); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.ExpectedStatus != nil && !p.ExpectedStatus.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

func (p Patch) touchesAmounts() bool {
	return p.Subtotal != nil || p.Tax != nil || p.Total != nil
}

// Apply merges the patch into a copy of q. q itself is left untouched.
func (q *Quote) Apply(p Patch, now time.Time) (*Quote, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ExpectedStatus != nil && *p.ExpectedStatus != q.status {
		return nil, ErrStatusChanged
	}

	a := q.Attributes()
	if p.Number != nil {
		a.Number = strings.TrimSpace(*p.Number)
	}
	a.QuoteDate = patch.Coalesce(p.QuoteDate, a.QuoteDate)
	a.ValidUntil = p.ValidUntil.Or(a.ValidUntil)
	a.Subtotal = patch.Coalesce(p.Subtotal, a.Subtotal)
	a.Tax = patch.Coalesce(p.Tax, a.Tax)
	a.Total = patch.Coalesce(p.Total, a.Total)
	if p.Currency != nil {
		// already validated above
		a.Currency, _ = NormalizeCurrency(*p.Currency)
	}
	a.Notes = p.Notes.Or(a.Notes)
	if p.Items != nil {
		a.Items = copyItems(*p.Items)
	}
	a.Status = patch.Coalesce(p.Status, a.Status)
	a.UpdatedAt = now

	// records that were already inconsistent still take non-monetary edits
	if p.touchesAmounts() && !a.Subtotal.Add(a.Tax).Equal(a.Total) {
		return nil, ErrTotalMismatch
	}

	return Reconstruct(a), nil
}

// TransitionPatch turns the result of a lifecycle method into a patch that
// only lands while the stored status still equals current's.
func TransitionPatch(current, next *Quote) Patch {
	from := current.status
	status := next.status
	p := Patch{
		Status:         &status,
		ExpectedStatus: &from,
	}
	if !sameString(current.notes, next.notes) {
		p.Notes = patch.FromPtr(next.notes)
	}
	return p
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
