//go:build unit

package quote_test

import (
	"testing"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		want := quote.Summary{TotalValue: decimal.Zero, AverageValue: decimal.Zero}
		assert.Empty(t, cmp.Diff(want, quote.Summarize(nil), decimalEqual))
		assert.Empty(t, cmp.Diff(want, quote.Summarize([]*quote.Quote{}), decimalEqual))
	})

	t.Run("counts by stored status", func(t *testing.T) {
		quotes := []*quote.Quote{
			builder.NewQuoteBuilder().WithTotal(49500).Build(),
			builder.NewQuoteBuilder().WithTotal(30800).WithStatus(quote.StatusAccepted).Build(),
			builder.NewQuoteBuilder().WithTotal(68200).WithStatus(quote.StatusRejected).Build(),
			builder.NewQuoteBuilder().WithTotal(20350).Build(),
			builder.NewQuoteBuilder().WithTotal(60500).WithStatus(quote.StatusExpired).Build(),
		}

		want := quote.Summary{
			Total:        5,
			Pending:      2,
			Accepted:     1,
			Rejected:     1,
			Expired:      1,
			TotalValue:   decimal.NewFromInt(229350),
			AverageValue: decimal.NewFromInt(45870),
		}
		assert.Empty(t, cmp.Diff(want, quote.Summarize(quotes), decimalEqual))
	})

	t.Run("negative totals pass through", func(t *testing.T) {
		quotes := []*quote.Quote{
			builder.NewQuoteBuilder().WithTotal(-100).Build(),
			builder.NewQuoteBuilder().WithTotal(300).Build(),
		}

		s := quote.Summarize(quotes)
		assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(200)))
		assert.True(t, s.AverageValue.Equal(decimal.NewFromInt(100)))
	})

	t.Run("idempotent", func(t *testing.T) {
		quotes := builder.BuildTotals(49500, 30800, 68200)
		first := quote.Summarize(quotes)
		second := quote.Summarize(quotes)
		assert.Empty(t, cmp.Diff(first, second, decimalEqual))
	})
}
