package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/model"
)

func TestGenerateProducesPDF(t *testing.T) {
	report := model.EntryReport{
		Client:       model.Client{ClientID: "CLI00001", ClientName: "Café Central"},
		Attributes:   []string{"paper", "plastic", "glass"},
		TotalEntries: 1,
		Totals:       map[string]float64{"paper": 1.25},
		Groups: []model.PropertyGroup{
			{PropertyID: "PROP00001", EntryCount: 1, Totals: map[string]float64{"paper": 1.25}},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths(4)
	require.Len(t, widths, 8)

	total := 0.0
	for _, w := range widths {
		total += w
	}
	assert.InDelta(t, pageWidth, total, 0.001)
}
