package converter

import (
	"encoding/json"
	"fmt"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/infra/pgquery"
	"supplier-quotes/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// itemJSON is the shape of one element of the quotes.items JSONB column.
type itemJSON struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// RowToQuote rebuilds a quote without validating it; stored data is taken as is.
func RowToQuote(row pgquery.QuoteRow) (*quote.Quote, error) {
	subtotal, err := pgconv.DecimalFromNumeric(row.Subtotal)
	if err != nil {
		return nil, fmt.Errorf("subtotal: %w", err)
	}
	tax, err := pgconv.DecimalFromNumeric(row.TaxAmount)
	if err != nil {
		return nil, fmt.Errorf("tax_amount: %w", err)
	}
	total, err := pgconv.DecimalFromNumeric(row.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("total_amount: %w", err)
	}
	items, err := ItemsFromJSON(row.Items)
	if err != nil {
		return nil, err
	}

	return quote.Reconstruct(quote.Attributes{
		ID:         uuid.UUID(row.ID.Bytes),
		Number:     row.QuoteNumber,
		QuoteDate:  pgconv.DateFromPgtype(row.QuoteDate),
		ValidUntil: pgconv.DatePtrFromPgtype(row.ValidUntil),
		Status:     quote.Status(row.Status),
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Currency:   row.Currency,
		Deal: quote.DealRef{
			ID:    uuid.UUID(row.DealID.Bytes),
			Title: row.DealTitle,
			Stage: pgconv.StringFromPgtype(row.DealStage),
		},
		Supplier: quote.SupplierRef{
			ID:   uuid.UUID(row.SupplierID.Bytes),
			Name: row.SupplierName,
			City: pgconv.StringFromPgtype(row.SupplierCity),
		},
		Items:     items,
		Notes:     pgconv.StringPtrFromPgtype(row.Notes),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func QuoteToUpdateParams(q *quote.Quote) (pgquery.UpdateQuoteRowParams, error) {
	items, err := ItemsToJSON(q.Items())
	if err != nil {
		return pgquery.UpdateQuoteRowParams{}, err
	}
	return pgquery.UpdateQuoteRowParams{
		ID:          pgconv.UUIDToPgtype(q.ID()),
		QuoteNumber: q.Number(),
		QuoteDate:   pgconv.DateToPgtype(q.QuoteDate()),
		ValidUntil:  pgconv.DatePtrToPgtype(q.ValidUntil()),
		Status:      q.Status().String(),
		Subtotal:    pgconv.DecimalToNumeric(q.Subtotal()),
		TaxAmount:   pgconv.DecimalToNumeric(q.Tax()),
		TotalAmount: pgconv.DecimalToNumeric(q.Total()),
		Currency:    q.Currency(),
		Items:       items,
		Notes:       pgconv.StringPtrToPgtype(q.Notes()),
		UpdatedAt:   pgconv.TimeToPgtype(q.UpdatedAt()),
	}, nil
}

func QuoteToInsertParams(q *quote.Quote) (pgquery.InsertQuoteRowParams, error) {
	items, err := ItemsToJSON(q.Items())
	if err != nil {
		return pgquery.InsertQuoteRowParams{}, err
	}
	return pgquery.InsertQuoteRowParams{
		ID:          pgconv.UUIDToPgtype(q.ID()),
		QuoteNumber: q.Number(),
		QuoteDate:   pgconv.DateToPgtype(q.QuoteDate()),
		ValidUntil:  pgconv.DatePtrToPgtype(q.ValidUntil()),
		Status:      q.Status().String(),
		Subtotal:    pgconv.DecimalToNumeric(q.Subtotal()),
		TaxAmount:   pgconv.DecimalToNumeric(q.Tax()),
		TotalAmount: pgconv.DecimalToNumeric(q.Total()),
		Currency:    q.Currency(),
		Items:       items,
		Notes:       pgconv.StringPtrToPgtype(q.Notes()),
		DealID:      pgconv.UUIDToPgtype(q.DealID()),
		SupplierID:  pgconv.UUIDToPgtype(q.Supplier().ID),
		CreatedAt:   pgconv.TimeToPgtype(q.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(q.UpdatedAt()),
	}, nil
}

// ItemsFromJSON accepts NULL and empty arrays alike.
func ItemsFromJSON(raw []byte) ([]quote.Item, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var decoded []itemJSON
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	items := make([]quote.Item, 0, len(decoded))
	for _, it := range decoded {
		items = append(items, quote.Item{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return items, nil
}

func ItemsToJSON(items []quote.Item) ([]byte, error) {
	encoded := make([]itemJSON, 0, len(items))
	for _, it := range items {
		encoded = append(encoded, itemJSON(it))
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	return raw, nil
}
