package services

import (
	"context"
	"time"

	"andinabi/internal/dataprocessing"
	"andinabi/pkg/contracts/domain"
)

// DashboardReport is the full dashboard state for one filter, assembled
// in a single pass for export.
type DashboardReport struct {
	Summary        *DashboardSummary
	Monthly        []dataprocessing.MonthlyPoint
	RegionSegments []dataprocessing.RegionSegmentSales
	Cities         []dataprocessing.CitySales
	TopCustomers   []dataprocessing.CustomerSales
	TopProducts    []dataprocessing.ProductSales
	Inventory      []dataprocessing.CenterInventory
	Imports        []dataprocessing.OriginImports
	GeneratedAt    time.Time
}

// Report assembles every dashboard section for the given filter.
func (s *DashboardService) Report(ctx context.Context, spec domain.FilterSpec) (*DashboardReport, error) {
	ds, resolved, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		Summary: &DashboardSummary{
			Sales:       dataprocessing.SalesTotals(rows),
			Receivables: dataprocessing.ReceivableTotals(ds.Tables.Receivables),
			Filter:      resolved,
			RowCount:    len(rows),
		},
		Monthly:        dataprocessing.MonthlySeries(rows),
		RegionSegments: dataprocessing.SalesByRegionSegment(rows),
		Cities:         dataprocessing.SalesByCity(rows),
		TopCustomers:   dataprocessing.TopCustomers(rows),
		TopProducts:    dataprocessing.TopProducts(rows),
		Inventory:      dataprocessing.InventoryByCenter(ds.Tables.Inventory),
		Imports:        dataprocessing.ImportsByOrigin(ds.Tables.Imports),
		GeneratedAt:    time.Now().UTC(),
	}, nil
}
