package quote

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

// NormalizeCurrency upper-cases a 3-letter ISO code. Empty input yields the default.
func NormalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return DefaultCurrency, nil
	}
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return c, nil
}

// DealRef is a weak reference to the owning deal, denormalized for display.
type DealRef struct {
	ID    uuid.UUID
	Title string
	Stage string
}

// SupplierRef is a weak reference to the quoting supplier.
type SupplierRef struct {
	ID   uuid.UUID
	Name string
	City string
}

// Item is one quote line. The stored Total is authoritative for display.
type Item struct {
	ID        uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if i.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	if i.UnitPrice.IsNegative() || i.Total.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func validateAmounts(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

func validateItems(items []Item) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func copyItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
