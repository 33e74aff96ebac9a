package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/basura/basura-api/internal/model"
)

const (
	fontName       = "Helvetica"
	fixedColsWidth = 115.0
	pageWidth      = 267.0
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the report as a landscape A4 table, one row per property.
func (g *Generator) Generate(report model.EntryReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Waste collection report"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Client: %s (%s)", safeValue(report.Client.ClientName), report.Client.ClientID)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Period: %s", formatPeriod(report.PeriodStart, report.PeriodEnd))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Entries: %d", report.TotalEntries), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	headers := append([]string{"Property", "Borough", "Street", "Entries"}, report.Attributes...)
	widths := columnWidths(len(report.Attributes))
	drawTableRow(pdf, tr, headers, widths, true)

	for _, group := range report.Groups {
		row := []string{group.PropertyID, group.BoroughName, group.StreetName, fmt.Sprintf("%d", group.EntryCount)}
		for _, attribute := range report.Attributes {
			row = append(row, formatWeight(group.Totals[attribute]))
		}
		drawTableRow(pdf, tr, row, widths, false)
	}

	total := []string{"Total", "", "", fmt.Sprintf("%d", report.TotalEntries)}
	for _, attribute := range report.Attributes {
		total = append(total, formatWeight(report.Totals[attribute]))
	}
	drawTableRow(pdf, tr, total, widths, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnWidths(attributes int) []float64 {
	widths := []float64{30, 35, 35, 15}
	if attributes == 0 {
		return widths
	}
	each := (pageWidth - fixedColsWidth) / float64(attributes)
	for i := 0; i < attributes; i++ {
		widths = append(widths, each)
	}
	return widths
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatPeriod(start, end string) string {
	if start == "" || end == "" {
		return "all entries"
	}
	return fmt.Sprintf("%s to %s", start, end)
}

func formatWeight(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
