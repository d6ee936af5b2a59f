package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andinabi/internal/shared/testutil"
	"andinabi/pkg/contracts/domain"
)

// stubLoader counts loads and can be told to fail.
type stubLoader struct {
	calls  atomic.Int64
	tables domain.Tables
	err    error
}

func (l *stubLoader) Load(ctx context.Context) (domain.Tables, error) {
	l.calls.Add(1)
	if l.err != nil {
		return domain.Tables{}, l.err
	}
	return l.tables, nil
}

func newTestService(t *testing.T, loader *stubLoader) *DashboardService {
	t.Helper()
	logger, _ := testutil.NewCaptureLogger(t)
	return NewDashboardService(loader, nil, logger)
}

func TestDatasetLoadsOnce(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)
	ctx := context.Background()

	first, err := svc.Dataset(ctx)
	require.NoError(t, err)
	second, err := svc.Dataset(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), loader.calls.Load())
	assert.Len(t, first.Enriched, len(first.Tables.Sales))
	assert.False(t, first.LoadedAt.IsZero())
}

func TestDatasetConcurrentColdStart(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Dataset(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), loader.calls.Load())
}

func TestDatasetFailureIsNotCached(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables(), err: errors.New("disk gone")}
	svc := newTestService(t, loader)
	ctx := context.Background()

	_, err := svc.Dataset(ctx)
	require.Error(t, err)

	loader.err = nil
	ds, err := svc.Dataset(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Equal(t, int64(2), loader.calls.Load())
}

func TestInvalidateForcesReload(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)
	ctx := context.Background()

	first, err := svc.Dataset(ctx)
	require.NoError(t, err)

	svc.Invalidate()

	second, err := svc.Dataset(ctx)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), loader.calls.Load())
}

func TestReload(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)

	_, err := svc.Dataset(context.Background())
	require.NoError(t, err)

	ds, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Equal(t, int64(2), loader.calls.Load())
}

func TestSummary(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)

	got, err := svc.Summary(context.Background(), domain.FilterSpec{})
	require.NoError(t, err)

	assert.Equal(t, 830.0, got.Sales.Revenue)
	assert.Equal(t, int64(15), got.Sales.Units)
	assert.Equal(t, 400.0, got.Receivables.Current)
	assert.Equal(t, 600.0, got.Receivables.Overdue)
	assert.Equal(t, 5, got.RowCount)
	// Unset bounds resolve to the data envelope.
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), got.Filter.From)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), got.Filter.To)
}

func TestSummaryReceivablesIgnoreFilter(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)

	spec := domain.FilterSpec{}.WithRegion("Sur").WithSegment("Mayorista")
	got, err := svc.Summary(context.Background(), spec)
	require.NoError(t, err)

	// One matching sale, yet the receivables snapshot stays whole.
	assert.Equal(t, 400.0, got.Sales.Revenue)
	assert.Equal(t, 1, got.RowCount)
	assert.Equal(t, 400.0, got.Receivables.Current)
	assert.Equal(t, 600.0, got.Receivables.Overdue)
}

func TestFilteredQueries(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)
	ctx := context.Background()

	monthly, err := svc.Monthly(ctx, domain.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, monthly, 3)

	regions, err := svc.RegionSegments(ctx, domain.FilterSpec{}.WithRegion("Norte"))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Norte", regions[0].Region)

	cities, err := svc.Cities(ctx, domain.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, cities, 3)

	customers, err := svc.TopCustomers(ctx, domain.FilterSpec{})
	require.NoError(t, err)
	require.NotEmpty(t, customers)
	assert.Equal(t, "Bruno Diaz", customers[0].Name)

	products, err := svc.TopProducts(ctx, domain.FilterSpec{})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Equal(t, "SKU-20", products[0].SKU)

	inventory, err := svc.Inventory(ctx)
	require.NoError(t, err)
	assert.Len(t, inventory, 2)

	imports, err := svc.Imports(ctx)
	require.NoError(t, err)
	assert.Len(t, imports, 2)
}

func TestFilters(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)

	got, err := svc.Filters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Norte", "Sur"}, got.Regions)
	assert.Equal(t, []string{"Mayorista", "Minorista"}, got.Segments)
	assert.Equal(t, "2023-12-01", got.DateFrom.String())
	assert.Equal(t, "2024-03-31", got.DateTo.String())
}

func TestReport(t *testing.T) {
	loader := &stubLoader{tables: testutil.SampleTables()}
	svc := newTestService(t, loader)

	got, err := svc.Report(context.Background(), domain.FilterSpec{})
	require.NoError(t, err)

	assert.Equal(t, 830.0, got.Summary.Sales.Revenue)
	assert.Len(t, got.Monthly, 3)
	assert.Len(t, got.RegionSegments, 2)
	assert.Len(t, got.Cities, 3)
	assert.Len(t, got.TopCustomers, 3)
	assert.Len(t, got.TopProducts, 2)
	assert.Len(t, got.Inventory, 2)
	assert.Len(t, got.Imports, 2)
	assert.False(t, got.GeneratedAt.IsZero())
}
