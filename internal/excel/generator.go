package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/basura/basura-api/internal/model"
)

const summarySheet = "Summary"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet followed by one detail sheet per property.
func (g *Generator) Generate(report model.EntryReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{strings.ToLower(summarySheet): {}}
	for _, group := range report.Groups {
		sheetName := buildSheetName(group.PropertyID, usedNames)
		usedNames[strings.ToLower(sheetName)] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, report, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.EntryReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Client")
	set("B1", report.Client.ClientName)
	set("A2", "Client ID")
	set("B2", report.Client.ClientID)
	set("A3", "Period start")
	set("B3", formatPeriod(report.PeriodStart))
	set("A4", "Period end")
	set("B4", formatPeriod(report.PeriodEnd))
	set("A5", "Entries")
	set("B5", report.TotalEntries)

	tableRow := 7
	headers := append([]string{"Property", "Borough", "Street", "Entries"}, report.Attributes...)
	writeRow(file, sheet, tableRow, headers)

	for i, group := range report.Groups {
		row := []interface{}{group.PropertyID, group.BoroughName, group.StreetName, group.EntryCount}
		for _, attribute := range report.Attributes {
			row = append(row, formatWeight(group.Totals[attribute]))
		}
		writeRow(file, sheet, tableRow+1+i, row)
	}

	totalRow := []interface{}{"Total", "", "", report.TotalEntries}
	for _, attribute := range report.Attributes {
		totalRow = append(totalRow, formatWeight(report.Totals[attribute]))
	}
	writeRow(file, sheet, tableRow+1+len(report.Groups), totalRow)

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "C", 28)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.EntryReport, group model.PropertyGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Property")
	set("B1", group.PropertyID)
	set("A2", "Borough")
	set("B2", group.BoroughName)
	set("A3", "Street")
	set("B3", group.StreetName)
	set("A4", "Entries")
	set("B4", group.EntryCount)

	tableRow := 6
	headers := append([]string{"Timestamp", "Collected by", "Chute present"}, report.Attributes...)
	writeRow(file, sheet, tableRow, headers)

	for i, entry := range group.Entries {
		row := []interface{}{entry.Timestamp, entry.CreatedBy, entry.ChutePresent}
		for _, attribute := range report.Attributes {
			if weight, ok := model.Weight(entry.GarbageAttributes[attribute]); ok {
				row = append(row, formatWeight(weight))
			} else {
				row = append(row, "")
			}
		}
		writeRow(file, sheet, tableRow+1+i, row)
	}

	_ = file.SetColWidth(sheet, "A", "A", 22)
	_ = file.SetColWidth(sheet, "B", "C", 16)
	return nil
}

func writeRow[T any](file *excelize.File, sheet string, row int, values []T) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = file.SetCellValue(sheet, cell, value)
	}
}

const maxSheetName = 31

// buildSheetName returns a sheet name for propertyID that is not in used.
// used is keyed by lower-cased name since sheet names are case-insensitive.
func buildSheetName(propertyID string, used map[string]struct{}) string {
	base := truncateRunes(sanitizeSheetName(propertyID), maxSheetName)

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[strings.ToLower(nameCandidate)]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		nameCandidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.Trim(strings.TrimSpace(replacer.Replace(value)), "'")
	value = strings.TrimSpace(value)
	if value == "" {
		return "Property"
	}
	return value
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimRight(string(runes[:limit]), "' ")
}

func formatPeriod(value string) string {
	if value == "" {
		return "all"
	}
	return value
}

func formatWeight(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
