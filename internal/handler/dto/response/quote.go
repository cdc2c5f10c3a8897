package response

import (
	"time"

	"supplier-quotes/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type DealResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Stage string    `json:"stage"`
}

type SupplierResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

type QuoteItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
}

type QuoteResponse struct {
	ID           uuid.UUID           `json:"id"`
	Number       string              `json:"quote_number"`
	QuoteDate    string              `json:"quote_date" example:"2024-01-15"`
	ValidUntil   *string             `json:"valid_until" example:"2024-02-15"`
	Status       string              `json:"status" enums:"pending,accepted,rejected,expired"`
	IsExpired    bool                `json:"is_expired"`
	IsActionable bool                `json:"is_actionable"`
	Subtotal     decimal.Decimal     `json:"subtotal" swaggertype:"string"`
	Tax          decimal.Decimal     `json:"tax" swaggertype:"string"`
	Total        decimal.Decimal     `json:"total" swaggertype:"string"`
	Currency     string              `json:"currency"`
	Deal         DealResponse        `json:"deal"`
	Supplier     SupplierResponse    `json:"supplier"`
	Items        []QuoteItemResponse `json:"items"`
	Notes        *string             `json:"notes"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type QuoteListResponse struct {
	Quotes     []*QuoteResponse `json:"quotes"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

type ComparisonEntryResponse struct {
	Rank              int             `json:"rank"`
	Quote             *QuoteResponse  `json:"quote"`
	PriceDelta        decimal.Decimal `json:"price_delta" swaggertype:"string"`
	PriceDeltaPercent decimal.Decimal `json:"price_delta_percent" swaggertype:"string"`
	IsBestPrice       bool            `json:"is_best_price"`
	IsBestBadge       bool            `json:"is_best_badge"`
}

type ComparisonResponse struct {
	DealID      uuid.UUID                 `json:"deal_id"`
	HasData     bool                      `json:"has_data"`
	Count       int                       `json:"count"`
	Lowest      decimal.Decimal           `json:"lowest" swaggertype:"string"`
	Highest     decimal.Decimal           `json:"highest" swaggertype:"string"`
	Average     decimal.Decimal           `json:"average" swaggertype:"string"`
	BestQuoteID *uuid.UUID                `json:"best_quote_id,omitempty"`
	Entries     []ComparisonEntryResponse `json:"entries"`
}

type MetricsResponse struct {
	DealID       *uuid.UUID      `json:"deal_id,omitempty"`
	Total        int             `json:"total"`
	Pending      int             `json:"pending"`
	Accepted     int             `json:"accepted"`
	Rejected     int             `json:"rejected"`
	Expired      int             `json:"expired"`
	TotalValue   decimal.Decimal `json:"total_value" swaggertype:"string"`
	AverageValue decimal.Decimal `json:"average_value" swaggertype:"string"`
}

type RefreshResponse struct {
	Count int `json:"count"`
}

// dates travel as YYYY-MM-DD; copier fills the remaining fields by name
var dateConverters = []copier.TypeConverter{
	{
		SrcType: time.Time{},
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			return src.(time.Time).Format(time.DateOnly), nil
		},
	},
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	resp := &QuoteResponse{}
	_ = copier.CopyWithOption(resp, v, copier.Option{Converters: dateConverters})
	if resp.Items == nil {
		resp.Items = []QuoteItemResponse{}
	}
	return resp
}

func FromQuoteViews(views []*queries.QuoteView, next *queries.Cursor) *QuoteListResponse {
	out := &QuoteListResponse{Quotes: make([]*QuoteResponse, len(views))}
	for i, v := range views {
		out.Quotes[i] = FromQuoteView(v)
	}
	if next != nil && next.After != "" {
		after := next.After
		out.NextCursor = &after
	}
	return out
}

func FromComparisonView(v *queries.ComparisonView) *ComparisonResponse {
	resp := &ComparisonResponse{
		DealID:      v.DealID,
		HasData:     v.HasData,
		Count:       v.Count,
		Lowest:      v.Lowest,
		Highest:     v.Highest,
		Average:     v.Average,
		BestQuoteID: v.BestQuoteID,
		Entries:     make([]ComparisonEntryResponse, len(v.Entries)),
	}
	for i, e := range v.Entries {
		resp.Entries[i] = ComparisonEntryResponse{
			Rank:              e.Rank,
			Quote:             FromQuoteView(e.Quote),
			PriceDelta:        e.PriceDelta,
			PriceDeltaPercent: e.PriceDeltaPercent,
			IsBestPrice:       e.IsBestPrice,
			IsBestBadge:       e.IsBestBadge,
		}
	}
	return resp
}

func FromMetricsView(v *queries.MetricsView) *MetricsResponse {
	resp := &MetricsResponse{}
	_ = copier.Copy(resp, v)
	return resp
}
