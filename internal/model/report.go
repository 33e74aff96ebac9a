package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

type PropertyGroup struct {
	PropertyID  string
	BoroughName string
	StreetName  string
	EntryCount  int64
	Totals      map[string]float64
	Entries     []Entry
}

type EntryReport struct {
	Client       Client
	PeriodStart  string
	PeriodEnd    string
	Attributes   []string
	TotalEntries int64
	Totals       map[string]float64
	Groups       []PropertyGroup
}

// Weight reads a garbage weight as sent by collectors. Devices send numbers,
// older ones send numeric strings.
func Weight(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
