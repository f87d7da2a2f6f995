package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sahilo5/delval-report-management/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(series string) *Data {
	order := &model.Order{
		OrderNo:      "DV-700",
		SalesOrderNo: "SO-700",
		Customer:     "Hindalco Industries",
		ItemCode:     "DA-25-120",
		Series:       series,
		Size:         "120",
		CylinderSize: "C-200",
		OrderQty:     "2",
	}
	values := make([]string, len(fieldsFor(series)))
	for i := range values {
		values[i] = "H-1001"
	}
	return &Data{
		Company: "DELVAL FLOW CONTROLS PRIVATE LIMITED",
		Order:   order,
		Rows: []Row{
			{SrNo: 1, SerialNo: "DV-700-1", Values: values, Status: model.UnitCompleted, Assembler: "R. Kulkarni"},
			{SrNo: 2, SerialNo: "DV-700-2", Values: make([]string, len(values)), Status: model.UnitPending},
		},
		GeneratedAt: time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
	}
}

// fieldsFor keeps the sample rows aligned with the series column count.
func fieldsFor(series string) []string { return model.FieldsForSeries(series) }

func TestFieldColumns_PerSeries(t *testing.T) {
	assert.Len(t, sampleData(model.Series25).FieldColumns(), 7)
	assert.Len(t, sampleData(model.Series21).FieldColumns(), 4)
}

func TestSizeDescription_MissingSpringSize(t *testing.T) {
	d := sampleData(model.Series25)
	assert.Equal(t, "120, C-200, -", d.SizeDescription())

	d.Order.SpringSize = "S-80"
	assert.Equal(t, "120, C-200, S-80", d.SizeDescription())
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleData(model.Series25)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}

func TestWritePDF_Series21BlankColumns(t *testing.T) {
	// Series 21 rows carry four values against the fixed seven-column grid;
	// rendering must pad rather than panic.
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleData(model.Series21)))
	assert.NotZero(t, buf.Len())
}

func TestSavePDF_WritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	path, err := SavePDF(dir, sampleData(model.Series25))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Heat_Report_DV-700.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestWriteHTML_RendersAnnexure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleData(model.Series25)))
	html := buf.String()

	assert.Contains(t, html, "DELVAL FLOW CONTROLS PRIVATE LIMITED")
	assert.Contains(t, html, "HEAT ANNEXTURE - ACTUATOR")
	assert.Contains(t, html, "Housing Heat No")
	assert.Contains(t, html, "DV-700-1")
	assert.Contains(t, html, `class="completed"`)
	assert.Contains(t, html, "14-08-2026")
}

func TestWriteHTML_Series21Headers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleData(model.Series21)))
	html := buf.String()

	assert.Contains(t, html, "End Cap Right")
	assert.NotContains(t, html, "Housing Heat No")
}
