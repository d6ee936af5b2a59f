package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"andinabi/internal/services"
)

// ExcelWriter renders a report as a multi-sheet xlsx workbook, one sheet
// per dashboard section.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write renders the workbook to out. The first section replaces the
// default sheet so the workbook opens on the summary.
func (w *ExcelWriter) Write(out io.Writer, report *services.DashboardReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sections := Sections(report)
	for i, section := range sections {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), section.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", section.Name, err)
			}
		} else {
			if _, err := f.NewSheet(section.Name); err != nil {
				return fmt.Errorf("create sheet %q: %w", section.Name, err)
			}
		}
		if err := writeSheet(f, section); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	w.logger.Info("exported workbook",
		slog.Int("sheets", len(sections)),
		slog.String("generated_at", report.GeneratedAt.Format("2006-01-02T15:04:05Z")))
	return nil
}

func writeSheet(f *excelize.File, section Section) error {
	header := make([]interface{}, len(section.Headers))
	for i, h := range section.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(section.Name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", section.Name, err)
	}

	for i, row := range section.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet %q row %d: %w", section.Name, i, err)
		}
		rowCopy := row
		if err := f.SetSheetRow(section.Name, cell, &rowCopy); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", section.Name, i, err)
		}
	}
	return nil
}
