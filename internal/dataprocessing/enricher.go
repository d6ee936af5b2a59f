package dataprocessing

import (
	"andinabi/pkg/contracts/domain"
)

// Enrich left-joins cleaned sales against the customer and product
// dimensions and derives the calendar fields. Every sale row produces
// exactly one output row: dimension keys are unique after cleaning, so the
// join cannot fan out, and an unmatched key keeps the row with nil
// attributes instead of dropping it.
func Enrich(sales []domain.Sale, customers []domain.Customer, products []domain.Product) []domain.EnrichedSale {
	byCustomer := make(map[int64]*domain.Customer, len(customers))
	for i := range customers {
		byCustomer[customers[i].CustomerID.Int64] = &customers[i]
	}
	byProduct := make(map[int64]*domain.Product, len(products))
	for i := range products {
		byProduct[products[i].ProductID.Int64] = &products[i]
	}

	out := make([]domain.EnrichedSale, 0, len(sales))
	for _, s := range sales {
		row := domain.EnrichedSale{
			SaleID:     s.SaleID.Int64,
			Date:       s.Date.Time,
			CustomerID: s.CustomerID.Int64,
			ProductID:  s.ProductID.Int64,
			Quantity:   s.Quantity,
			Subtotal:   s.Subtotal,
			Margin:     s.Margin,
			Year:       s.Date.Time.Year(),
			YearMonth:  s.Date.Time.Format("2006-01"),
		}

		if c, ok := byCustomer[s.CustomerID.Int64]; ok {
			row.CustomerName = strPtr(c.Name)
			row.Segment = strPtr(c.Segment)
			row.Region = strPtr(c.Region)
			row.City = strPtr(c.City)
		}
		if p, ok := byProduct[s.ProductID.Int64]; ok {
			row.SKU = strPtr(p.SKU)
			row.Category = strPtr(p.Category)
			row.Subcategory = strPtr(p.Subcategory)
			row.Brand = strPtr(p.Brand)
			row.Description = strPtr(p.Description)
		}

		out = append(out, row)
	}
	return out
}

func strPtr(s string) *string { return &s }
