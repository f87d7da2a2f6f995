package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the heat annexure as a landscape A4 PDF. The grid always
// carries the full heat column set; series "21" rows leave the unused
// columns blank so every annexure has the same shape.
func WritePDF(w io.Writer, d *Data) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Title ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 9, d.Company, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "HEAT ANNEXTURE - ACTUATOR", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Header band ──────────────────────────────────────────────────────────
	o := d.Order
	header := [][2]string{
		{"Item Code:", o.ItemCode},
		{"Size:", d.SizeDescription()},
		{"Qty:", o.OrderQty},
		{"Date:", d.GeneratedAt.Format("02-01-2006")},
		{"Customer:", o.Customer},
		{"SO Number:", o.SalesOrderNo},
	}
	labelW := contentW * 0.12
	valueW := contentW*0.5 - labelW
	for i := 0; i < len(header); i += 2 {
		left, right := header[i], header[i+1]
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 6, left[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(valueW, 6, left[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 6, right[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(valueW, 6, right[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Grid ─────────────────────────────────────────────────────────────────
	headers := append([]string{"Sr No", "Actuator Serial"}, heatColumns...)
	headers = append(headers, "Assembler")
	widths := make([]float64, len(headers))
	widths[0] = contentW * 0.05
	rest := (contentW - widths[0]) / float64(len(headers)-1)
	for i := 1; i < len(widths); i++ {
		widths[i] = rest
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range d.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, fmt.Sprintf("%d", row.SrNo), row.SerialNo)
		cells = append(cells, row.Values...)
		for len(cells) < len(headers)-1 {
			cells = append(cells, "")
		}
		cells = append(cells, row.Assembler)
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6.5, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// SavePDF writes the annexure under dir as Heat_Report_{order_no}.pdf and
// returns the file path, creating dir if needed.
func SavePDF(dir string, d *Data) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("report: create storage dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("Heat_Report_%s.pdf", d.Order.OrderNo))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create file: %w", err)
	}
	defer f.Close()
	if err := WritePDF(f, d); err != nil {
		return "", fmt.Errorf("report: write pdf: %w", err)
	}
	return path, nil
}
