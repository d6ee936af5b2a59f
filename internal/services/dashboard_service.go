package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"andinabi/internal/dataprocessing"
	"andinabi/internal/infrastructure"
	"andinabi/pkg/contracts/domain"
)

// TableLoader loads the six source tables. Satisfied by
// dataprocessing.Loader; narrow on purpose so tests can stub the load.
type TableLoader interface {
	Load(ctx context.Context) (domain.Tables, error)
}

// DashboardService owns the load-once dataset cache and exposes the
// filter and aggregate operations the presentation layer consumes. The
// cached dataset is immutable; every query derives per-request views from
// it, so any number of sessions can share one service instance.
type DashboardService struct {
	loader  TableLoader
	logger  *slog.Logger
	metrics *infrastructure.Metrics

	group singleflight.Group

	mu      sync.RWMutex
	dataset *domain.Dataset
}

// NewDashboardService creates the service. metrics may be nil.
func NewDashboardService(loader TableLoader, metrics *infrastructure.Metrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		loader:  loader,
		logger:  logger.With(slog.String("component", "dashboard_service")),
		metrics: metrics,
	}
}

// Dataset returns the cached dataset, loading, cleaning and enriching it
// on first access. Concurrent cold-start calls are coalesced into a
// single load. A load failure caches nothing: the next access retries
// from scratch.
func (s *DashboardService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	v, err, _ := s.group.Do("dataset", func() (interface{}, error) {
		s.mu.RLock()
		cached := s.dataset
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Dataset), nil
}

func (s *DashboardService) load(ctx context.Context) (*domain.Dataset, error) {
	start := time.Now()

	tables, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset load failed", slog.String("error", err.Error()))
		return nil, err
	}

	tables = dataprocessing.Clean(tables)
	enriched := dataprocessing.Enrich(tables.Sales, tables.Customers, tables.Products)

	ds := &domain.Dataset{
		Tables:   tables,
		Enriched: enriched,
		LoadedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()

	s.metrics.RecordDatasetLoad(ctx)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("sales", len(tables.Sales)),
		slog.Int("enriched", len(enriched)),
		slog.Duration("elapsed", time.Since(start)))

	return ds, nil
}

// Invalidate drops the cached dataset so the next access reloads and
// re-enriches from the source files. This is the single cache
// invalidation hook.
func (s *DashboardService) Invalidate() {
	s.mu.Lock()
	s.dataset = nil
	s.mu.Unlock()
	s.logger.Info("dataset cache invalidated")
}

// Reload invalidates the cache and eagerly loads a fresh dataset.
func (s *DashboardService) Reload(ctx context.Context) (*domain.Dataset, error) {
	s.Invalidate()
	return s.Dataset(ctx)
}

// DashboardSummary bundles the headline KPIs for the active filter.
// Receivables totals always cover the full ledger: receivables are a
// snapshot, deliberately independent of the sales-side filter.
type DashboardSummary struct {
	Sales       dataprocessing.SalesKPIs       `json:"sales"`
	Receivables dataprocessing.ReceivablesKPIs `json:"receivables"`
	Filter      domain.FilterSpec              `json:"filter"`
	RowCount    int                            `json:"row_count"`
}

// FilterOptions describes the selectable filter space: the global date
// envelope and the distinct regions and segments present in the data.
type FilterOptions struct {
	DateFrom domain.Date `json:"date_from"`
	DateTo   domain.Date `json:"date_to"`
	Regions  []string    `json:"regions"`
	Segments []string    `json:"segments"`
}

// resolve fills unset date bounds from the global date envelope. Region
// and segment stay as given: nil means unconstrained.
func resolve(ds *domain.Dataset, spec domain.FilterSpec) domain.FilterSpec {
	if spec.From.IsZero() || spec.To.IsZero() {
		min, max, ok := dataprocessing.DateEnvelope(ds.Tables)
		if ok {
			if spec.From.IsZero() {
				spec.From = min
			}
			if spec.To.IsZero() {
				spec.To = max
			}
		}
	}
	return spec
}

// filtered returns the dataset together with the filtered enriched view
// for the resolved spec.
func (s *DashboardService) filtered(ctx context.Context, spec domain.FilterSpec) (*domain.Dataset, domain.FilterSpec, []domain.EnrichedSale, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, domain.FilterSpec{}, nil, err
	}
	spec = resolve(ds, spec)
	return ds, spec, dataprocessing.Filter(ds.Enriched, spec), nil
}

// Summary computes the scalar KPIs for the given filter.
func (s *DashboardService) Summary(ctx context.Context, spec domain.FilterSpec) (*DashboardSummary, error) {
	ds, resolved, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{
		Sales:       dataprocessing.SalesTotals(rows),
		Receivables: dataprocessing.ReceivableTotals(ds.Tables.Receivables),
		Filter:      resolved,
		RowCount:    len(rows),
	}, nil
}

// Monthly computes the revenue/margin series by year-month bucket.
func (s *DashboardService) Monthly(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.MonthlyPoint, error) {
	_, _, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return dataprocessing.MonthlySeries(rows), nil
}

// RegionSegments computes revenue grouped by region and segment.
func (s *DashboardService) RegionSegments(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.RegionSegmentSales, error) {
	_, _, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return dataprocessing.SalesByRegionSegment(rows), nil
}

// Cities computes revenue grouped by region and city.
func (s *DashboardService) Cities(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.CitySales, error) {
	_, _, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return dataprocessing.SalesByCity(rows), nil
}

// TopCustomers computes the top-15 customer ranking for the filter.
func (s *DashboardService) TopCustomers(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.CustomerSales, error) {
	_, _, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return dataprocessing.TopCustomers(rows), nil
}

// TopProducts computes the top-15 product ranking for the filter.
func (s *DashboardService) TopProducts(ctx context.Context, spec domain.FilterSpec) ([]dataprocessing.ProductSales, error) {
	_, _, rows, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return dataprocessing.TopProducts(rows), nil
}

// Inventory computes inventory value by logistics center over the raw
// snapshot table.
func (s *DashboardService) Inventory(ctx context.Context) ([]dataprocessing.CenterInventory, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.InventoryByCenter(ds.Tables.Inventory), nil
}

// Imports computes merchandise cost by origin country over the raw
// imports table.
func (s *DashboardService) Imports(ctx context.Context) ([]dataprocessing.OriginImports, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.ImportsByOrigin(ds.Tables.Imports), nil
}

// Filters returns the selectable filter space for the loaded dataset.
func (s *DashboardService) Filters(ctx context.Context) (*FilterOptions, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	opts := &FilterOptions{
		Regions:  distinct(ds.Enriched, func(r domain.EnrichedSale) *string { return r.Region }),
		Segments: distinct(ds.Enriched, func(r domain.EnrichedSale) *string { return r.Segment }),
	}
	if min, max, ok := dataprocessing.DateEnvelope(ds.Tables); ok {
		opts.DateFrom = domain.Date{Time: min, Valid: true}
		opts.DateTo = domain.Date{Time: max, Valid: true}
	}
	return opts, nil
}

// distinct collects the sorted distinct non-null values of one enriched
// attribute.
func distinct(rows []domain.EnrichedSale, attr func(domain.EnrichedSale) *string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		v := attr(row)
		if v == nil {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}
