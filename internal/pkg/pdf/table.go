// Package pdf renders simple tabular reports.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Table is a titled grid. Widths are column widths in millimetres; they default to an even
// split of the printable width when empty.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Widths   []float64
	Rows     [][]string
}

const (
	pageMargin = 10.0
	rowHeight  = 7.0
)

// Render lays out t on A4 landscape pages, repeating the header row on every page.
func Render(t Table) ([]byte, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	pageWidth, pageHeight := pdf.GetPageSize()
	widths := t.Widths
	if len(widths) != len(t.Headers) {
		widths = make([]float64, len(t.Headers))
		for i := range widths {
			widths[i] = (pageWidth - 2*pageMargin) / float64(len(t.Headers))
		}
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, t.Title)
	pdf.Ln(10)
	if t.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, t.Subtitle)
		pdf.Ln(10)
	}
	header()

	if len(t.Rows) == 0 {
		pdf.CellFormat(sum(widths), rowHeight, "No records", "1", 1, "C", false, 0, "")
	}

	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			header()
		}
		for i := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
