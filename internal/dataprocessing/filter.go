package dataprocessing

import (
	"time"

	"andinabi/pkg/contracts/domain"
)

// Filter returns the subset of enriched rows satisfying the filter,
// preserving input order and every column. An inverted date range or an
// unknown region/segment value simply yields an empty result; malformed
// filter combinations are never errors.
func Filter(rows []domain.EnrichedSale, spec domain.FilterSpec) []domain.EnrichedSale {
	out := make([]domain.EnrichedSale, 0, len(rows))
	for _, row := range rows {
		if spec.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// DateEnvelope computes the union-spanning date range across the four
// temporal fields the dashboard filters against: sale date, receivable
// invoice date, inventory cutoff date and import order date. It is the
// initial filter bound only, never a validity constraint on filter input.
// ok is false when no table carries a single non-null date.
func DateEnvelope(t domain.Tables) (min, max time.Time, ok bool) {
	observe := func(d domain.Date) {
		if !d.Valid {
			return
		}
		if !ok {
			min, max, ok = d.Time, d.Time, true
			return
		}
		if d.Time.Before(min) {
			min = d.Time
		}
		if d.Time.After(max) {
			max = d.Time
		}
	}

	for _, s := range t.Sales {
		observe(s.Date)
	}
	for _, r := range t.Receivables {
		observe(r.InvoiceDate)
	}
	for _, inv := range t.Inventory {
		observe(inv.CutoffDate)
	}
	for _, imp := range t.Imports {
		observe(imp.OrderDate)
	}
	return min, max, ok
}
