package dataprocessing

import (
	"sort"

	"andinabi/pkg/contracts/domain"
)

// TopN is the truncation limit for the customer and product rankings.
const TopN = 15

// SalesKPIs are the headline scalar totals over a filtered sales view.
type SalesKPIs struct {
	Revenue float64 `json:"revenue"`
	Margin  float64 `json:"margin"`
	Units   int64   `json:"units"`
}

// ReceivablesKPIs are the open-balance totals over the full receivables
// ledger. Receivables are a point-in-time snapshot, so they are computed
// over the whole table regardless of the active sales filter.
type ReceivablesKPIs struct {
	Current float64 `json:"current"`
	Overdue float64 `json:"overdue"`
}

// MonthlyPoint is one month of the revenue/margin time series.
type MonthlyPoint struct {
	YearMonth string  `json:"year_month"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
}

// RegionSegmentSales is revenue grouped by (region, segment).
type RegionSegmentSales struct {
	Region  string  `json:"region"`
	Segment string  `json:"segment"`
	Revenue float64 `json:"revenue"`
}

// CitySales is revenue grouped by (region, city).
type CitySales struct {
	Region  string  `json:"region"`
	City    string  `json:"city"`
	Revenue float64 `json:"revenue"`
}

// CustomerSales is one row of the top-customers ranking.
type CustomerSales struct {
	CustomerID int64   `json:"customer_id"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
}

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID   int64   `json:"product_id"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Revenue     float64 `json:"revenue"`
}

// CenterInventory is inventory value grouped by logistics center.
type CenterInventory struct {
	LogisticsCenter string  `json:"logistics_center"`
	InventoryValue  float64 `json:"inventory_value"`
}

// OriginImports is merchandise cost grouped by country of origin.
type OriginImports struct {
	OriginCountry string  `json:"origin_country"`
	CostUSD       float64 `json:"cost_usd"`
}

// bucket is one group produced by groupSum: a key plus one running sum per
// metric.
type bucket[K comparable] struct {
	key  K
	sums []float64
}

// groupSum is the single grouping primitive behind every grouped aggregate:
// bucket rows by key, summing each metric, with buckets in first-appearance
// order. Rows whose key function reports not-ok (a null grouping attribute)
// are excluded from grouped output, mirroring how the scalar KPIs and the
// grouped views disagree only on null-keyed rows. An empty input produces
// an empty bucket list, never a placeholder.
func groupSum[T any, K comparable](rows []T, key func(T) (K, bool), metrics ...func(T) float64) []bucket[K] {
	index := make(map[K]int)
	out := make([]bucket[K], 0)
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		i, exists := index[k]
		if !exists {
			i = len(out)
			index[k] = i
			out = append(out, bucket[K]{key: k, sums: make([]float64, len(metrics))})
		}
		for m, metric := range metrics {
			out[i].sums[m] += metric(row)
		}
	}
	return out
}

// SalesTotals computes the scalar sales KPIs over a filtered view. Every
// row counts, including rows with unmatched dimension keys.
func SalesTotals(rows []domain.EnrichedSale) SalesKPIs {
	var k SalesKPIs
	for _, r := range rows {
		k.Revenue += r.Subtotal
		k.Margin += r.Margin
		k.Units += r.Quantity
	}
	return k
}

// ReceivableTotals partitions open balances by document status.
func ReceivableTotals(rows []domain.ReceivableDocument) ReceivablesKPIs {
	var k ReceivablesKPIs
	for _, r := range rows {
		switch r.Status {
		case domain.ReceivableCurrent:
			k.Current += r.Balance
		case domain.ReceivableOverdue:
			k.Overdue += r.Balance
		}
	}
	return k
}

// MonthlySeries groups a filtered view by year-month bucket, ascending.
// The bucket key sorts lexicographically in chronological order.
func MonthlySeries(rows []domain.EnrichedSale) []MonthlyPoint {
	buckets := groupSum(rows,
		func(r domain.EnrichedSale) (string, bool) { return r.YearMonth, true },
		func(r domain.EnrichedSale) float64 { return r.Subtotal },
		func(r domain.EnrichedSale) float64 { return r.Margin },
	)

	out := make([]MonthlyPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MonthlyPoint{YearMonth: b.key, Revenue: b.sums[0], Margin: b.sums[1]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth < out[j].YearMonth })
	return out
}

type regionSegmentKey struct{ region, segment string }

// SalesByRegionSegment groups a filtered view by (region, segment), sorted
// by key. Rows with a null region or segment are excluded.
func SalesByRegionSegment(rows []domain.EnrichedSale) []RegionSegmentSales {
	buckets := groupSum(rows,
		func(r domain.EnrichedSale) (regionSegmentKey, bool) {
			if r.Region == nil || r.Segment == nil {
				return regionSegmentKey{}, false
			}
			return regionSegmentKey{*r.Region, *r.Segment}, true
		},
		func(r domain.EnrichedSale) float64 { return r.Subtotal },
	)

	out := make([]RegionSegmentSales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, RegionSegmentSales{Region: b.key.region, Segment: b.key.segment, Revenue: b.sums[0]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

type cityKey struct{ region, city string }

// SalesByCity groups a filtered view by (region, city), sorted by key.
func SalesByCity(rows []domain.EnrichedSale) []CitySales {
	buckets := groupSum(rows,
		func(r domain.EnrichedSale) (cityKey, bool) {
			if r.Region == nil || r.City == nil {
				return cityKey{}, false
			}
			return cityKey{*r.Region, *r.City}, true
		},
		func(r domain.EnrichedSale) float64 { return r.Subtotal },
	)

	out := make([]CitySales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, CitySales{Region: b.key.region, City: b.key.city, Revenue: b.sums[0]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].City < out[j].City
	})
	return out
}

type customerKey struct {
	id   int64
	name string
}

// TopCustomers ranks customers by revenue over a filtered view, descending,
// truncated to TopN. The sort is stable, so revenue ties keep the order in
// which the customers first appear in the input.
func TopCustomers(rows []domain.EnrichedSale) []CustomerSales {
	buckets := groupSum(rows,
		func(r domain.EnrichedSale) (customerKey, bool) {
			if r.CustomerName == nil {
				return customerKey{}, false
			}
			return customerKey{r.CustomerID, *r.CustomerName}, true
		},
		func(r domain.EnrichedSale) float64 { return r.Subtotal },
	)

	out := make([]CustomerSales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, CustomerSales{CustomerID: b.key.id, Name: b.key.name, Revenue: b.sums[0]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

type productKey struct {
	id               int64
	sku, description string
}

// TopProducts ranks products by revenue over a filtered view, descending,
// truncated to TopN, with the same tie-break as TopCustomers.
func TopProducts(rows []domain.EnrichedSale) []ProductSales {
	buckets := groupSum(rows,
		func(r domain.EnrichedSale) (productKey, bool) {
			if r.SKU == nil || r.Description == nil {
				return productKey{}, false
			}
			return productKey{r.ProductID, *r.SKU, *r.Description}, true
		},
		func(r domain.EnrichedSale) float64 { return r.Subtotal },
	)

	out := make([]ProductSales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ProductSales{ProductID: b.key.id, SKU: b.key.sku, Description: b.key.description, Revenue: b.sums[0]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// InventoryByCenter groups the raw snapshot table by logistics center,
// sorted by center name. Snapshots are never filtered by the sales filter.
func InventoryByCenter(rows []domain.InventorySnapshot) []CenterInventory {
	buckets := groupSum(rows,
		func(r domain.InventorySnapshot) (string, bool) { return r.LogisticsCenter, r.LogisticsCenter != "" },
		func(r domain.InventorySnapshot) float64 { return r.InventoryValue },
	)

	out := make([]CenterInventory, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, CenterInventory{LogisticsCenter: b.key, InventoryValue: b.sums[0]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogisticsCenter < out[j].LogisticsCenter })
	return out
}

// ImportsByOrigin groups the raw imports table by country of origin,
// sorted by country name.
func ImportsByOrigin(rows []domain.ImportRecord) []OriginImports {
	buckets := groupSum(rows,
		func(r domain.ImportRecord) (string, bool) { return r.OriginCountry, r.OriginCountry != "" },
		func(r domain.ImportRecord) float64 { return r.CostUSD },
	)

	out := make([]OriginImports, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, OriginImports{OriginCountry: b.key, CostUSD: b.sums[0]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OriginCountry < out[j].OriginCountry })
	return out
}
