package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSheet() Sheet {
	return Sheet{
		Title:   "Agenda 2024-06-11",
		Headers: []string{"Start", "End", "Status"},
		Rows: [][]string{
			{"09:00", "09:30", "available"},
			{"09:30", "10:00"},
		},
		Muted: []bool{false, true},
	}
}

func TestCSVExporterPadsShortRows(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleSheet())
	require.NoError(t, err)
	assert.Equal(t, "Start,End,Status\n09:00,09:30,available\n09:30,10:00,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Sheet{})
	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleSheet())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
