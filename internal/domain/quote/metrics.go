package quote

import "github.com/shopspring/decimal"

// Summary is a rollup over any quote collection, counted by stored status.
type Summary struct {
	Total        int
	Pending      int
	Accepted     int
	Rejected     int
	Expired      int
	TotalValue   decimal.Decimal
	AverageValue decimal.Decimal
}

// Summarize is pure. Values are passed through as stored, negative totals included.
func Summarize(quotes []*Quote) Summary {
	s := Summary{TotalValue: decimal.Zero, AverageValue: decimal.Zero}
	for _, q := range quotes {
		if q == nil {
			continue
		}
		s.Total++
		switch q.status {
		case StatusPending:
			s.Pending++
		case StatusAccepted:
			s.Accepted++
		case StatusRejected:
			s.Rejected++
		case StatusExpired:
			s.Expired++
		}
		s.TotalValue = s.TotalValue.Add(q.total)
	}
	if s.Total > 0 {
		s.AverageValue = s.TotalValue.Div(decimal.NewFromInt(int64(s.Total)))
	}
	return s
}
