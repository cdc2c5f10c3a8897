package pgquery

import (
	"context"

	"supplier-quotes/internal/infra/db"

	"github.com/jackc/pgx/v5/pgtype"
)

const quoteColumns = `
	q.id, q.quote_number, q.quote_date, q.valid_until, q.status,
	q.subtotal, q.tax_amount, q.total_amount, q.currency, q.items, q.notes,
	q.created_at, q.updated_at,
	d.id, d.title, d.stage,
	s.id, s.name, s.city
FROM quotes q
JOIN deals d ON d.id = q.deal_id
JOIN suppliers s ON s.id = q.supplier_id`

// QuoteRow is a quote joined with its deal and supplier.
type QuoteRow struct {
	ID           pgtype.UUID
	QuoteNumber  string
	QuoteDate    pgtype.Date
	ValidUntil   pgtype.Date
	Status       string
	Subtotal     pgtype.Numeric
	TaxAmount    pgtype.Numeric
	TotalAmount  pgtype.Numeric
	Currency     string
	Items        []byte
	Notes        pgtype.Text
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
	DealID       pgtype.UUID
	DealTitle    string
	DealStage    pgtype.Text
	SupplierID   pgtype.UUID
	SupplierName string
	SupplierCity pgtype.Text
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuoteRow(row rowScanner) (QuoteRow, error) {
	var r QuoteRow
	err := row.Scan(
		&r.ID,
		&r.QuoteNumber,
		&r.QuoteDate,
		&r.ValidUntil,
		&r.Status,
		&r.Subtotal,
		&r.TaxAmount,
		&r.TotalAmount,
		&r.Currency,
		&r.Items,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.DealID,
		&r.DealTitle,
		&r.DealStage,
		&r.SupplierID,
		&r.SupplierName,
		&r.SupplierCity,
	)
	return r, err
}

const listQuoteRows = `SELECT` + quoteColumns + `
WHERE ($1::uuid IS NULL OR q.deal_id = $1::uuid)
ORDER BY q.quote_date DESC, q.quote_number`

// ListQuoteRows returns every quote, or those of one deal when dealID is valid.
func (q *Queries) ListQuoteRows(ctx context.Context, db db.DBTX, dealID pgtype.UUID) ([]QuoteRow, error) {
	rows, err := db.Query(ctx, listQuoteRows, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []QuoteRow
	for rows.Next() {
		r, err := scanQuoteRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getQuoteRow = `SELECT` + quoteColumns + `
WHERE q.id = $1`

func (q *Queries) GetQuoteRow(ctx context.Context, db db.DBTX, id pgtype.UUID) (QuoteRow, error) {
	return scanQuoteRow(db.QueryRow(ctx, getQuoteRow, id))
}

const getQuoteRowForUpdate = `SELECT` + quoteColumns + `
WHERE q.id = $1
FOR UPDATE OF q`

func (q *Queries) GetQuoteRowForUpdate(ctx context.Context, db db.DBTX, id pgtype.UUID) (QuoteRow, error) {
	return scanQuoteRow(db.QueryRow(ctx, getQuoteRowForUpdate, id))
}

const updateQuoteRow = `UPDATE quotes SET
	quote_number = $2,
	quote_date   = $3,
	valid_until  = $4,
	status       = $5,
	subtotal     = $6,
	tax_amount   = $7,
	total_amount = $8,
	currency     = $9,
	items        = $10,
	notes        = $11,
	updated_at   = $12
WHERE id = $1`

type UpdateQuoteRowParams struct {
	ID          pgtype.UUID
	QuoteNumber string
	QuoteDate   pgtype.Date
	ValidUntil  pgtype.Date
	Status      string
	Subtotal    pgtype.Numeric
	TaxAmount   pgtype.Numeric
	TotalAmount pgtype.Numeric
	Currency    string
	Items       []byte
	Notes       pgtype.Text
	UpdatedAt   pgtype.Timestamptz
}

// UpdateQuoteRow returns the number of rows touched.
func (q *Queries) UpdateQuoteRow(ctx context.Context, db db.DBTX, arg UpdateQuoteRowParams) (int64, error) {
	tag, err := db.Exec(ctx, updateQuoteRow,
		arg.ID,
		arg.QuoteNumber,
		arg.QuoteDate,
		arg.ValidUntil,
		arg.Status,
		arg.Subtotal,
		arg.TaxAmount,
		arg.TotalAmount,
		arg.Currency,
		arg.Items,
		arg.Notes,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const insertQuoteRow = `INSERT INTO quotes (
	id, quote_number, quote_date, valid_until, status,
	subtotal, tax_amount, total_amount, currency, items, notes,
	deal_id, supplier_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

type InsertQuoteRowParams struct {
	ID          pgtype.UUID
	QuoteNumber string
	QuoteDate   pgtype.Date
	ValidUntil  pgtype.Date
	Status      string
	Subtotal    pgtype.Numeric
	TaxAmount   pgtype.Numeric
	TotalAmount pgtype.Numeric
	Currency    string
	Items       []byte
	Notes       pgtype.Text
	DealID      pgtype.UUID
	SupplierID  pgtype.UUID
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) InsertQuoteRow(ctx context.Context, db db.DBTX, arg InsertQuoteRowParams) error {
	_, err := db.Exec(ctx, insertQuoteRow,
		arg.ID,
		arg.QuoteNumber,
		arg.QuoteDate,
		arg.ValidUntil,
		arg.Status,
		arg.Subtotal,
		arg.TaxAmount,
		arg.TotalAmount,
		arg.Currency,
		arg.Items,
		arg.Notes,
		arg.DealID,
		arg.SupplierID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
