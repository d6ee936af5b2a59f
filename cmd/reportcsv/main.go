// Command reportcsv loads the dataset once and drops every dashboard
// section as a CSV file under the reports directory. Intended for batch
// report generation without running the server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"andinabi/internal/config"
	"andinabi/internal/dataprocessing"
	"andinabi/internal/exporter"
	"andinabi/internal/infrastructure"
	"andinabi/internal/services"
	"andinabi/pkg/contracts/domain"
)

func main() {
	dataDir := flag.String("data", "", "data directory (defaults to configured paths.data_dir)")
	outDir := flag.String("out", "", "output directory (defaults to configured paths.reports_dir)")
	dateFrom := flag.String("from", "", "filter start date, YYYY-MM-DD (defaults to data envelope)")
	dateTo := flag.String("to", "", "filter end date, YYYY-MM-DD (defaults to data envelope)")
	region := flag.String("region", "", "filter region (defaults to all)")
	segment := flag.String("segment", "", "filter segment (defaults to all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}
	if *dataDir == "" {
		*dataDir = cfg.Paths.DataDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	spec, err := buildFilter(*dateFrom, *dateTo, *region, *segment)
	if err != nil {
		logger.Error("invalid filter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	loader := dataprocessing.NewLoader(*dataDir, logger)
	service := services.NewDashboardService(loader, nil, logger)

	report, err := service.Report(ctx, spec)
	if err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(*outDir, logger)
	paths, err := writer.WriteReport(report)
	if err != nil {
		logger.Error("report export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, p := range paths {
		logger.Info("report written", slog.String("path", p))
	}
}

func buildFilter(from, to, region, segment string) (domain.FilterSpec, error) {
	var spec domain.FilterSpec
	var err error
	if from != "" {
		if spec.From, err = time.Parse(domain.DateLayout, from); err != nil {
			return domain.FilterSpec{}, err
		}
	}
	if to != "" {
		if spec.To, err = time.Parse(domain.DateLayout, to); err != nil {
			return domain.FilterSpec{}, err
		}
	}
	if region != "" {
		spec = spec.WithRegion(region)
	}
	if segment != "" {
		spec = spec.WithSegment(segment)
	}
	return spec, nil
}
