package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"andinabi/internal/services"
)

// CSVWriter drops each report section as a CSV file under the reports
// directory. Files carry a UTF-8 BOM so Excel opens them correctly.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteReport writes one CSV per section and returns the written paths.
func (w *CSVWriter) WriteReport(report *services.DashboardReport) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}

	stamp := report.GeneratedAt.Format("20060102_150405")
	paths := make([]string, 0, 8)
	for _, section := range Sections(report) {
		name := fmt.Sprintf("%s_%s.csv", slug(section.Name), stamp)
		path := filepath.Join(w.dir, name)
		if err := w.writeSection(path, section); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	w.logger.Info("exported report CSVs",
		slog.String("dir", w.dir),
		slog.Int("files", len(paths)))
	return paths, nil
}

func (w *CSVWriter) writeSection(path string, section Section) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(section.Headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range section.Rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	if err := writer.Error(); err != nil {
		return err
	}
	return nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
