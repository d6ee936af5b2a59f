package domain

import "time"

// EnrichedSale is a Sale row denormalized with its customer and product
// dimension attributes plus derived calendar fields. Joined attributes are
// pointers: nil means the dimension key had no match, which keeps the row
// but leaves its attributes null. Exactly one EnrichedSale exists per
// cleaned Sale row.
type EnrichedSale struct {
	SaleID     int64     `json:"sale_id"`
	Date       time.Time `json:"date"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	Subtotal   float64   `json:"subtotal_amount"`
	Margin     float64   `json:"total_margin_amount"`

	// Customer attributes. Named with the Customer prefix where the bare
	// name would collide with a sale or product column.
	CustomerName *string `json:"customer_name"`
	Segment      *string `json:"segment"`
	Region       *string `json:"region"`
	City         *string `json:"city"`

	// Product attributes.
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`
	Brand       *string `json:"brand"`
	Description *string `json:"description"`

	// Calendar fields derived from Date.
	Year      int    `json:"year"`
	YearMonth string `json:"year_month"`
}

// Dataset is the load-once context object the filter engine and aggregator
// operate against: the cleaned source tables plus the enriched sales table.
// A Dataset is immutable after construction; filtered views are always
// derived copies.
type Dataset struct {
	Tables   Tables         `json:"tables"`
	Enriched []EnrichedSale `json:"enriched"`
	LoadedAt time.Time      `json:"loaded_at"`
}
