//go:build unit

package request_test

import (
	"encoding/json"
	"testing"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/handler/dto/request"
	"supplier-quotes/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) request.UpdateQuoteRequest {
	t.Helper()
	var req request.UpdateQuoteRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func TestUpdateQuoteRequest_ToPatch(t *testing.T) {
	t.Run("amounts and dates", func(t *testing.T) {
		req := decode(t, `{"subtotal":"1000","tax":100,"total":"1100","quote_date":"2024-01-20","valid_until":"2024-03-01"}`)

		p, err := req.ToPatch()
		require.NoError(t, err)
		assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(1000)))
		assert.True(t, p.Tax.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), *p.QuoteDate)
		require.True(t, p.ValidUntil.IsSet())
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *p.ValidUntil.Value())
		assert.False(t, p.Notes.IsSet())
	})

	t.Run("explicit nulls clear nullable fields", func(t *testing.T) {
		req := decode(t, `{"valid_until":null,"notes":null}`)

		p, err := req.ToPatch()
		require.NoError(t, err)
		assert.True(t, p.ValidUntil.IsSet())
		assert.Nil(t, p.ValidUntil.Value())
		assert.True(t, p.Notes.IsSet())
		assert.Nil(t, p.Notes.Value())
	})

	t.Run("items get ids and computed totals", func(t *testing.T) {
		req := decode(t, `{"items":[{"name":" Rebar ","quantity":3,"unit_price":"2.50"}]}`)

		p, err := req.ToPatch()
		require.NoError(t, err)
		require.NotNil(t, p.Items)
		items := *p.Items
		require.Len(t, items, 1)
		assert.Equal(t, "Rebar", items[0].Name)
		assert.True(t, items[0].Total.Equal(decimal.RequireFromString("7.5")))
		assert.NotEqual(t, [16]byte{}, [16]byte(items[0].ID))
	})

	t.Run("status is not editable", func(t *testing.T) {
		req := decode(t, `{"status":"accepted"}`)

		_, err := req.ToPatch()
		assert.True(t, errs.Is(err, quote.ErrStatusNotEditable))
	})

	t.Run("bad date", func(t *testing.T) {
		req := decode(t, `{"quote_date":"15/01/2024"}`)

		_, err := req.ToPatch()
		assert.True(t, errs.Is(err, errs.ErrValidationFailure))
	})
}
