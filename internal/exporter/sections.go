package exporter

import (
	"fmt"
	"strconv"

	"andinabi/internal/services"
	"andinabi/pkg/contracts/domain"
)

// Section is one tabular slice of a report, format-agnostic. Cell values
// stay typed so the Excel writer keeps numbers as numbers.
type Section struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Sections flattens a report into ordered tabular sections shared by the
// Excel and CSV writers.
func Sections(report *services.DashboardReport) []Section {
	out := make([]Section, 0, 8)

	summary := Section{
		Name:    "Summary",
		Headers: []string{"metric", "value"},
		Rows: [][]interface{}{
			{"revenue", report.Summary.Sales.Revenue},
			{"margin", report.Summary.Sales.Margin},
			{"units", report.Summary.Sales.Units},
			{"receivables_current", report.Summary.Receivables.Current},
			{"receivables_overdue", report.Summary.Receivables.Overdue},
			{"rows", int64(report.Summary.RowCount)},
			{"date_from", report.Summary.Filter.From.Format(domain.DateLayout)},
			{"date_to", report.Summary.Filter.To.Format(domain.DateLayout)},
			{"region", orAll(report.Summary.Filter.Region)},
			{"segment", orAll(report.Summary.Filter.Segment)},
		},
	}
	out = append(out, summary)

	monthly := Section{Name: "Monthly", Headers: []string{"month", "revenue", "margin"}}
	for _, p := range report.Monthly {
		monthly.Rows = append(monthly.Rows, []interface{}{p.YearMonth, p.Revenue, p.Margin})
	}
	out = append(out, monthly)

	regions := Section{Name: "Region-Segment", Headers: []string{"region", "segment", "revenue"}}
	for _, r := range report.RegionSegments {
		regions.Rows = append(regions.Rows, []interface{}{r.Region, r.Segment, r.Revenue})
	}
	out = append(out, regions)

	cities := Section{Name: "Cities", Headers: []string{"region", "city", "revenue"}}
	for _, c := range report.Cities {
		cities.Rows = append(cities.Rows, []interface{}{c.Region, c.City, c.Revenue})
	}
	out = append(out, cities)

	customers := Section{Name: "Top Customers", Headers: []string{"customer_id", "name", "revenue"}}
	for _, c := range report.TopCustomers {
		customers.Rows = append(customers.Rows, []interface{}{c.CustomerID, c.Name, c.Revenue})
	}
	out = append(out, customers)

	products := Section{Name: "Top Products", Headers: []string{"product_id", "sku", "description", "revenue"}}
	for _, p := range report.TopProducts {
		products.Rows = append(products.Rows, []interface{}{p.ProductID, p.SKU, p.Description, p.Revenue})
	}
	out = append(out, products)

	inventory := Section{Name: "Inventory", Headers: []string{"logistics_center", "inventory_value"}}
	for _, c := range report.Inventory {
		inventory.Rows = append(inventory.Rows, []interface{}{c.LogisticsCenter, c.InventoryValue})
	}
	out = append(out, inventory)

	imports := Section{Name: "Imports", Headers: []string{"origin_country", "cost_usd"}}
	for _, o := range report.Imports {
		imports.Rows = append(imports.Rows, []interface{}{o.OriginCountry, o.CostUSD})
	}
	out = append(out, imports)

	return out
}

func orAll(v *string) string {
	if v == nil {
		return "all"
	}
	return *v
}

// formatCell renders a typed cell for text formats.
func formatCell(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', 2, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(v)
	}
}
