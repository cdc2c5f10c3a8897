package memstore

import (
	"fmt"
	"time"

	"supplier-quotes/internal/domain/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	DowntownDealID    = uuid.MustParse("d1000000-0000-0000-0000-000000000001")
	ResidentialDealID = uuid.MustParse("d2000000-0000-0000-0000-000000000002")
)

var (
	downtown = quote.DealRef{ID: DowntownDealID, Title: "Downtown Tower Project", Stage: "Negotiation"}
	phase2   = quote.DealRef{ID: ResidentialDealID, Title: "Residential Complex Phase 2", Stage: "Proposal"}
)

type seedItem struct {
	name      string
	quantity  int64
	unitPrice int64
	total     int64
}

type seedQuote struct {
	n          int
	date       string
	validUntil string
	status     quote.Status
	subtotal   int64
	tax        int64
	deal       quote.DealRef
	supplier   string
	city       string
	notes      string
	items      []seedItem
}

var samples = []seedQuote{
	{1, "2024-01-15", "2024-02-15", quote.StatusPending, 45000, 4500, downtown, "BuildRight Materials", "Chicago",
		"Includes installation and 1-year warranty",
		[]seedItem{{"Steel Beams (Grade A)", 100, 250, 25000}, {"Concrete Mix (Premium)", 50, 400, 20000}}},
	{2, "2024-01-10", "2024-02-10", quote.StatusAccepted, 28000, 2800, downtown, "ElectroPro Supplies", "Detroit",
		"Best price guaranteed",
		[]seedItem{{"Electrical Wiring Kit", 200, 80, 16000}, {"Circuit Breakers", 40, 300, 12000}}},
	{3, "2024-01-08", "2024-01-20", quote.StatusRejected, 62000, 6200, phase2, "CoolAir Systems", "Phoenix",
		"Price too high compared to competitors",
		[]seedItem{{"HVAC System Complete", 1, 45000, 45000}, {"Ductwork Installation", 1, 17000, 17000}}},
	{4, "2024-01-18", "2024-03-18", quote.StatusPending, 18500, 1850, downtown, "WaterWorks Pro", "Houston",
		"Bulk discount applied",
		[]seedItem{{"Plumbing Fixtures Set", 25, 400, 10000}, {"PVC Piping (100m)", 17, 500, 8500}}},
	{5, "2024-01-20", "2024-02-28", quote.StatusPending, 55000, 5500, downtown, "SteelMax Industries", "Pittsburgh",
		"Premium grade materials with extended warranty",
		[]seedItem{{"Steel Beams (Grade A)", 120, 260, 31200}, {"Reinforcement Bars", 200, 119, 23800}}},
}

// SampleID returns the stable id of the n-th sample quote (1-based).
func SampleID(n int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("quote-%d", n)))
}

// SampleQuotes returns the construction sample data set: five quotes across two deals.
func SampleQuotes() []*quote.Quote {
	out := make([]*quote.Quote, 0, len(samples))
	itemSeq := 0
	for _, s := range samples {
		quoteDate := mustDate(s.date)
		validUntil := mustDate(s.validUntil)
		notes := s.notes

		items := make([]quote.Item, 0, len(s.items))
		for _, it := range s.items {
			itemSeq++
			items = append(items, quote.Item{
				ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("item-%d", itemSeq))),
				Name:      it.name,
				Quantity:  decimal.NewFromInt(it.quantity),
				UnitPrice: decimal.NewFromInt(it.unitPrice),
				Total:     decimal.NewFromInt(it.total),
			})
		}

		subtotal := decimal.NewFromInt(s.subtotal)
		tax := decimal.NewFromInt(s.tax)
		out = append(out, quote.Reconstruct(quote.Attributes{
			ID:         SampleID(s.n),
			Number:     fmt.Sprintf("Q-2024-%03d", s.n),
			QuoteDate:  quoteDate,
			ValidUntil: &validUntil,
			Status:     s.status,
			Subtotal:   subtotal,
			Tax:        tax,
			Total:      subtotal.Add(tax),
			Currency:   quote.DefaultCurrency,
			Deal:       s.deal,
			Supplier: quote.SupplierRef{
				ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("supplier-"+s.supplier)),
				Name: s.supplier,
				City: s.city,
			},
			Items:     items,
			Notes:     &notes,
			CreatedAt: quoteDate,
			UpdatedAt: quoteDate,
		}))
	}
	return out
}

func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
