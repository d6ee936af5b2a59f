package http

import (
	"context"

	"andinabi/internal/dataprocessing"
	"andinabi/internal/services"
	"andinabi/pkg/contracts/domain"
)

// DashboardServiceInterface defines the operations the dashboard
// handler needs from the service layer.
type DashboardServiceInterface interface {
	Summary(ctx context.Context, spec domain.FilterSpec) (*services.DashboardSummary, error)
	Monthly(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.MonthlyPoint, error)
	RegionSegments(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.RegionSegmentSales, error)
	Cities(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.CitySales, error)
	TopCustomers(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.CustomerSales, error)
	TopProducts(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.ProductSales, error)
	Inventory(ctx context.Context) ([]dataprocessing.CenterInventory, error)
	Imports(ctx context.Context) ([]dataprocessing.OriginImports, error)
	Filters(ctx context.Context) (*services.FilterOptions, error)
	Report(ctx context.Context, spec domain.FilterSpec) (*services.DashboardReport, error)
	Reload(ctx context.Context) (*domain.Dataset, error)
}
