package pdf

import (
	"bytes"
	"fmt"
	"time"

	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/usecase/queries"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const dateLayout = "Jan 02, 2006"

// Generator renders a quote as an A4 document with the core Helvetica font.
type Generator struct {
	clock clock.Clock
}

func NewGenerator(clk clock.Clock) *Generator {
	return &Generator{clock: clk}
}

func (g *Generator) Generate(v *queries.QuoteView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quote "+v.Number, true)
	pdf.SetAuthor(v.Supplier.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Quote "+v.Number))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Date: %s", v.QuoteDate.Format(dateLayout))))
	pdf.Ln(6)
	if v.ValidUntil != nil {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Valid until: %s", v.ValidUntil.Format(dateLayout))))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, tr(fmt.Sprintf("Status: %s", statusLabel(v))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Supplier: %s, %s", v.Supplier.Name, v.Supplier.City)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Deal: %s (%s)", v.Deal.Title, v.Deal.Stage)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Total", "B", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range v.Items {
		pdf.CellFormat(100, 6, tr(trim(it.Name, 55)), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, it.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, money(it.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, money(it.Total), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(4)
	g.totalLine(pdf, "Subtotal", money(v.Subtotal), false)
	g.totalLine(pdf, "Tax", money(v.Tax), false)
	g.totalLine(pdf, "Total", fmt.Sprintf("%s %s", money(v.Total), v.Currency), true)

	if v.Notes != nil && *v.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr("Notes: "+*v.Notes), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", g.clock.Now().UTC().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) totalLine(pdf *gofpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 11)
	pdf.CellFormat(155, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, value, "", 0, "R", false, 0, "")
	pdf.Ln(7)
}

func statusLabel(v *queries.QuoteView) string {
	if v.IsExpired && v.Status == "pending" {
		return "pending (past validity date)"
	}
	return v.Status
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func trim(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "..."
}
