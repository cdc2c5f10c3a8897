package quote

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RankedQuote is one row of a comparison. IsBestPrice holds for every quote
// tied at the lowest total; IsBestBadge holds for exactly one of them.
type RankedQuote struct {
	Quote             *Quote
	Rank              int
	PriceDelta        decimal.Decimal
	PriceDeltaPercent decimal.Decimal
	IsBestPrice       bool
	IsBestBadge       bool
}

type Comparison struct {
	Ranked  []RankedQuote
	Best    *Quote
	Lowest  decimal.Decimal
	Highest decimal.Decimal
	Average decimal.Decimal
	Count   int
}

func (c Comparison) HasData() bool {
	return c.Count > 0
}

// Compare ranks quotes by total, cheapest first. Equal totals keep input order.
// The caller is expected to pass quotes of a single deal.
func Compare(quotes []*Quote) Comparison {
	sorted := make([]*Quote, 0, len(quotes))
	for _, q := range quotes {
		if q != nil {
			sorted = append(sorted, q)
		}
	}
	if len(sorted) == 0 {
		return Comparison{}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].total.LessThan(sorted[j].total)
	})

	best := sorted[0]
	lowest := best.total
	highest := best.total
	sum := decimal.Zero

	ranked := make([]RankedQuote, len(sorted))
	for i, q := range sorted {
		delta := q.total.Sub(lowest)
		pct := decimal.Zero
		if lowest.IsPositive() {
			pct = delta.Div(lowest).Mul(hundred)
		}
		ranked[i] = RankedQuote{
			Quote:             q,
			Rank:              i + 1,
			PriceDelta:        delta,
			PriceDeltaPercent: pct,
			IsBestPrice:       delta.IsZero(),
			IsBestBadge:       i == 0,
		}
		if q.total.GreaterThan(highest) {
			highest = q.total
		}
		sum = sum.Add(q.total)
	}

	return Comparison{
		Ranked:  ranked,
		Best:    best,
		Lowest:  lowest,
		Highest: highest,
		Average: sum.Div(decimal.NewFromInt(int64(len(sorted)))),
		Count:   len(sorted),
	}
}
