//go:build unit

package response_test

import (
	"encoding/json"
	"testing"

	"supplier-quotes/internal/handler/dto/response"
	"supplier-quotes/internal/usecase/queries"
	"supplier-quotes/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuoteView(t *testing.T) {
	q := builder.NewQuoteBuilder().Build()
	view := queries.ToQuoteView(q, builder.DefaultNow)

	resp := response.FromQuoteView(view)

	assert.Equal(t, q.ID(), resp.ID)
	assert.Equal(t, "Q-2024-001", resp.Number)
	assert.Equal(t, "2024-01-10", resp.QuoteDate)
	require.NotNil(t, resp.ValidUntil)
	assert.Equal(t, "2024-02-15", *resp.ValidUntil)
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, resp.IsActionable)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(49500)))
	assert.Equal(t, "Downtown Office Complex", resp.Deal.Title)
	assert.Equal(t, "Chicago", resp.Supplier.City)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Steel Beams", resp.Items[0].Name)
	assert.Equal(t, view.CreatedAt, resp.CreatedAt)
}

func TestFromQuoteView_JSON(t *testing.T) {
	q := builder.NewQuoteBuilder().WithValidUntil(nil).WithNotes(nil).With(func(b *builder.QuoteBuilder) {
		b.Items = nil
	}).Build()

	raw, err := json.Marshal(response.FromQuoteView(queries.ToQuoteView(q, builder.DefaultNow)))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "49500", decoded["total"])
	assert.Nil(t, decoded["valid_until"])
	assert.Nil(t, decoded["notes"])
	assert.Equal(t, []any{}, decoded["items"])
}

func TestFromMetricsView(t *testing.T) {
	dealID := builder.DefaultDealID
	view := &queries.MetricsView{
		DealID:       &dealID,
		Total:        4,
		Pending:      3,
		Accepted:     1,
		TotalValue:   decimal.NewFromInt(161150),
		AverageValue: decimal.RequireFromString("40287.5"),
	}

	resp := response.FromMetricsView(view)
	assert.Equal(t, &dealID, resp.DealID)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 3, resp.Pending)
	assert.True(t, resp.AverageValue.Equal(decimal.RequireFromString("40287.5")))
}

func TestFromQuoteViews(t *testing.T) {
	view := queries.ToQuoteView(builder.NewQuoteBuilder().Build(), builder.DefaultNow)

	resp := response.FromQuoteViews([]*queries.QuoteView{view}, &queries.Cursor{After: "abc"})
	require.Len(t, resp.Quotes, 1)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, "abc", *resp.NextCursor)

	empty := response.FromQuoteViews(nil, nil)
	assert.NotNil(t, empty.Quotes)
	assert.Nil(t, empty.NextCursor)
}
