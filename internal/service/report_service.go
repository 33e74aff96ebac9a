package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/basura/basura-api/internal/model"
)

type ReportGenerator interface {
	Generate(report model.EntryReport) ([]byte, error)
}

type ReportService struct {
	clients ClientRepository
	entries EntryRepository
	excel   ReportGenerator
	pdf     ReportGenerator
}

type ExportInput struct {
	ClientID    string
	StartDate   string
	EndDate     string
	PropertyIDs []string
	Format      model.ReportFormat
	Principal   model.Principal
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

func NewReportService(clients ClientRepository, entries EntryRepository, excel, pdf ReportGenerator) *ReportService {
	return &ReportService{
		clients: clients,
		entries: entries,
		excel:   excel,
		pdf:     pdf,
	}
}

func (s *ReportService) Export(ctx context.Context, input ExportInput) (*ExportResult, error) {
	generator, contentType, err := s.generatorFor(input.Format)
	if err != nil {
		return nil, err
	}

	report, err := s.BuildReport(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := generator.Generate(*report)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", input.Format, err)
	}

	return &ExportResult{
		FileName:    buildFileName(*report, input.Format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// BuildReport groups the client's entries by property and totals every garbage attribute.
func (s *ReportService) BuildReport(ctx context.Context, input ExportInput) (*model.EntryReport, error) {
	if err := authorizeClient(ctx, s.clients, input.Principal, input.ClientID); err != nil {
		return nil, err
	}

	client, err := s.clients.Get(ctx, input.ClientID)
	if err != nil {
		return nil, translateClientError(err)
	}

	filter, err := clientEntryFilter(input.ClientID, ClientEntriesQuery{
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		PropertyIDs: input.PropertyIDs,
	})
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, newError(ErrNoRecords, "No entries found for the selected period")
	}

	report := &model.EntryReport{
		Client:       *client,
		TotalEntries: int64(len(entries)),
		Totals:       map[string]float64{},
	}
	if filter.HasRange() {
		report.PeriodStart = input.StartDate
		report.PeriodEnd = input.EndDate
	}

	groups := map[string]*model.PropertyGroup{}
	attributes := map[string]struct{}{}
	for _, entry := range entries {
		group, ok := groups[entry.PropertyID]
		if !ok {
			group = &model.PropertyGroup{
				PropertyID:  entry.PropertyID,
				BoroughName: entry.BoroughName,
				StreetName:  entry.StreetName,
				Totals:      map[string]float64{},
			}
			groups[entry.PropertyID] = group
		}
		group.EntryCount++
		group.Entries = append(group.Entries, entry)

		for name, value := range entry.GarbageAttributes {
			attributes[name] = struct{}{}
			weight, ok := model.Weight(value)
			if !ok {
				continue
			}
			group.Totals[name] += weight
			report.Totals[name] += weight
		}
	}

	for name := range attributes {
		report.Attributes = append(report.Attributes, name)
	}
	sort.Strings(report.Attributes)

	for _, group := range groups {
		report.Groups = append(report.Groups, *group)
	}
	sort.Slice(report.Groups, func(i, j int) bool {
		return report.Groups[i].PropertyID < report.Groups[j].PropertyID
	})

	return report, nil
}

func (s *ReportService) generatorFor(format model.ReportFormat) (ReportGenerator, string, error) {
	switch format {
	case model.ReportFormatXLSX:
		return s.excel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case model.ReportFormatPDF:
		return s.pdf, "application/pdf", nil
	default:
		return nil, "", newError(ErrInvalidInput, "invalid format")
	}
}

func translateClientError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return newError(ErrNotFound, "Client not found")
	}
	return err
}

func buildFileName(report model.EntryReport, format model.ReportFormat) string {
	target := sanitizeFileName(report.Client.ClientID)
	period := "all"
	if report.PeriodStart != "" && report.PeriodEnd != "" {
		period = strings.ReplaceAll(report.PeriodStart, "-", "") + "-" + strings.ReplaceAll(report.PeriodEnd, "-", "")
	}
	return fmt.Sprintf("entries-%s-%s.%s", target, period, format)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
