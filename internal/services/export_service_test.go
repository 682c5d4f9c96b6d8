package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestExportService() *ExportService {
	return NewExportService(newTestReportService(march2024Store(), time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)))
}

var march = ReportParams{Type: "monthly", Year: 2024, Month: 3}

func TestExportCSV(t *testing.T) {
	file, err := newTestExportService().Export(context.Background(), "clinic-1", march, "CSV")
	require.NoError(t, err)

	assert.Equal(t, "clinic_report_2024-03.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	reader := csv.NewReader(bytes.NewReader(file.Content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "Monthly Financial Report 2024-03", records[0][0])

	values := map[string]string{}
	var titles []string
	for _, rec := range records {
		if len(rec) == 2 {
			values[rec[0]] = rec[1]
		} else if rec[0] != "" {
			titles = append(titles, rec[0])
		}
	}
	assert.Contains(t, titles, reporting.SectionRevenue)
	assert.Contains(t, titles, reporting.SectionBudget)
	assert.Equal(t, "2024-03", values["Period"])
	assert.Equal(t, "Profit", values["Result"])
	assert.Equal(t, "50%", values["Achieved"])
}

func TestExportIsRepeatable(t *testing.T) {
	svc := newTestExportService()

	first, err := svc.Export(context.Background(), "clinic-1", march, "")
	require.NoError(t, err)
	second, err := svc.Export(context.Background(), "clinic-1", march, FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Filename, second.Filename)
}

func TestExportXLSX(t *testing.T) {
	file, err := newTestExportService().Export(context.Background(), "clinic-1", march, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "clinic_report_2024-03.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Monthly Financial Report 2024-03", title)

	section, err := f.GetCellValue("Report", "A3")
	require.NoError(t, err)
	assert.Equal(t, reporting.SectionRevenue, section)
}

func TestExportPDF(t *testing.T) {
	file, err := newTestExportService().Export(context.Background(), "clinic-1", march, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "clinic_report_2024-03.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))

	again, err := newTestExportService().Export(context.Background(), "clinic-1", march, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, file.Content, again.Content)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := newTestExportService().Export(context.Background(), "clinic-1", march, "docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportPropagatesPeriodErrors(t *testing.T) {
	_, err := newTestExportService().Export(context.Background(), "clinic-1", ReportParams{Type: "monthly", Year: 2024, Month: 13}, FormatCSV)
	assert.ErrorIs(t, err, reporting.ErrInvalidPeriod)
}
