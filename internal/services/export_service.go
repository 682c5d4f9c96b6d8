package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/sjperalta/clinic-billing-api/internal/reporting"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportFile is a rendered report ready to be sent as an attachment
type ExportFile struct {
	Content     []byte
	Filename    string
	ContentType string
}

type ExportService struct {
	reports *ReportService
}

func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports}
}

// Export computes the report and renders it in the requested format
func (s *ExportService) Export(ctx context.Context, tenantID string, params ReportParams, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX && format != FormatPDF {
		return nil, fmt.Errorf("%w: %q (expected csv, xlsx or pdf)", ErrUnsupportedFormat, format)
	}

	report, err := s.reports.Report(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return s.ExportXLSX(report)
	case FormatPDF:
		return s.ExportPDF(report)
	default:
		return s.ExportCSV(report)
	}
}

// exportFilename derives the attachment name from the report period so repeated exports match
func exportFilename(report models.Report, ext string) string {
	return fmt.Sprintf("clinic_report_%s.%s", report.Period.Label, ext)
}

func reportTitle(report models.Report) string {
	if report.ReportType == models.ReportTypeYearly {
		return "Annual Financial Report " + report.Period.Label
	}
	return "Monthly Financial Report " + report.Period.Label
}

func (s *ExportService) ExportCSV(report models.Report) (*ExportFile, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{reportTitle(report)})
	_ = writer.Write([]string{""})

	for _, section := range reporting.Flatten(report) {
		_ = writer.Write([]string{section.Title})
		_ = writer.Write([]string{"Item", "Value"})
		for _, row := range section.Rows {
			_ = writer.Write([]string{row.Label, row.Value})
		}
		_ = writer.Write([]string{""})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &ExportFile{
		Content:     buf.Bytes(),
		Filename:    exportFilename(report, FormatCSV),
		ContentType: "text/csv",
	}, nil
}

func (s *ExportService) ExportXLSX(report models.Report) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	sectionStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", reportTitle(report))
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	row := 3
	for _, section := range reporting.Flatten(report) {
		cell := fmt.Sprintf("A%d", row)
		_ = f.SetCellValue(sheet, cell, section.Title)
		_ = f.SetCellStyle(sheet, cell, fmt.Sprintf("B%d", row), sectionStyle)
		row++
		for _, r := range section.Rows {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Label)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Value)
			row++
		}
		row++
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "B", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Content:     buf.Bytes(),
		Filename:    exportFilename(report, FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func (s *ExportService) ExportPDF(report models.Report) (*ExportFile, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// pinned so the same period renders the same bytes
	pdf.SetCreationDate(report.Period.Start)
	// core fonts are cp1252; translate so patient and service names keep their accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(reportTitle(report)))
	pdf.Ln(12)

	for _, section := range reporting.Flatten(report) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 10, tr(section.Title))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		if len(section.Rows) == 0 {
			pdf.Cell(60, 10, "No data for this period")
			pdf.Ln(6)
		}
		for _, r := range section.Rows {
			pdf.Cell(80, 10, tr(r.Label+":"))
			pdf.Cell(60, 10, tr(r.Value))
			pdf.Ln(6)
		}
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	return &ExportFile{
		Content:     buf.Bytes(),
		Filename:    exportFilename(report, FormatPDF),
		ContentType: "application/pdf",
	}, nil
}
