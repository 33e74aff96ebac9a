package excel

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/basura/basura-api/internal/model"
)

func sampleReport() model.EntryReport {
	return model.EntryReport{
		Client:       model.Client{ClientID: "CLI00001", ClientName: "Acme"},
		PeriodStart:  "2024-01-01",
		PeriodEnd:    "2024-01-31",
		Attributes:   []string{"paper", "plastic"},
		TotalEntries: 2,
		Totals:       map[string]float64{"paper": 3.5, "plastic": 1},
		Groups: []model.PropertyGroup{
			{
				PropertyID:  "PROP00001",
				BoroughName: "Queens",
				StreetName:  "Main St",
				EntryCount:  2,
				Totals:      map[string]float64{"paper": 3.5, "plastic": 1},
				Entries: []model.Entry{
					{Timestamp: "2024-01-02T10:00:00", CreatedBy: "alice", GarbageAttributes: map[string]any{"paper": 2.5}},
					{Timestamp: "2024-01-03T10:00:00", CreatedBy: "bob", GarbageAttributes: map[string]any{"paper": "1", "plastic": 1}},
				},
			},
		},
	}
}

func TestGenerateWritesSummaryAndDetailSheets(t *testing.T) {
	content, err := NewGenerator().Generate(sampleReport())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Summary", "PROP00001"}, file.GetSheetList())

	client, err := file.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", client)

	paper, err := file.GetCellValue("Summary", "E8")
	require.NoError(t, err)
	assert.Equal(t, "3.50", paper)

	collector, err := file.GetCellValue("PROP00001", "B8")
	require.NoError(t, err)
	assert.Equal(t, "bob", collector)
}

func TestBuildSheetNameDeduplicates(t *testing.T) {
	used := map[string]struct{}{"prop-1": {}}
	assert.Equal(t, "PROP-1-2", buildSheetName("PROP/1", used))
	assert.Equal(t, "Property", buildSheetName("  ", map[string]struct{}{}))
}

func groupReport(propertyIDs ...string) model.EntryReport {
	report := model.EntryReport{Client: model.Client{ClientID: "CLI00001"}}
	for _, id := range propertyIDs {
		report.Groups = append(report.Groups, model.PropertyGroup{
			PropertyID: id,
			EntryCount: 1,
			Entries:    []model.Entry{{Timestamp: "2024-01-02T10:00:00", CreatedBy: "alice"}},
		})
	}
	return report
}

func TestGenerateKeepsPropertiesThatDifferOnlyByCase(t *testing.T) {
	content, err := NewGenerator().Generate(groupReport("prop-a", "PROP-A", "summary"))
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Summary", "prop-a", "PROP-A-2", "summary-2"}, file.GetSheetList())

	first, err := file.GetCellValue("prop-a", "B1")
	require.NoError(t, err)
	assert.Equal(t, "prop-a", first)
	second, err := file.GetCellValue("PROP-A-2", "B1")
	require.NoError(t, err)
	assert.Equal(t, "PROP-A", second)
}

func TestGenerateStripsSurroundingQuotes(t *testing.T) {
	content, err := NewGenerator().Generate(groupReport("'P1", "P2'", "'''"))
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Summary", "P1", "P2", "Property"}, file.GetSheetList())
}

func TestGenerateTruncatesMultiByteNamesByRune(t *testing.T) {
	long := strings.Repeat("ñ", 40)
	content, err := NewGenerator().Generate(groupReport(long, long))
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	require.Len(t, sheets, 3)
	assert.Equal(t, strings.Repeat("ñ", 31), sheets[1])
	assert.Equal(t, strings.Repeat("ñ", 29)+"-2", sheets[2])
	for _, name := range sheets {
		assert.True(t, utf8.ValidString(name))
		assert.LessOrEqual(t, utf8.RuneCountInString(name), 31)
	}
}

func TestDetailSheetRendersChutePresentAsSent(t *testing.T) {
	report := groupReport("PROP00001", "PROP00002")
	report.Groups[0].Entries[0].ChutePresent = true
	report.Groups[1].Entries[0].ChutePresent = "yes"

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	flag, err := file.GetCellValue("PROP00001", "C7")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", flag)
	text, err := file.GetCellValue("PROP00002", "C7")
	require.NoError(t, err)
	assert.Equal(t, "yes", text)
}
