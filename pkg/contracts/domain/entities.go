package domain

// Customer is one row of the customer dimension. CustomerID is nullable at
// load time; the cleaner drops null and duplicate keys.
type Customer struct {
	CustomerID ID     `csv:"customer_id" json:"customer_id"`
	Name       string `csv:"name" json:"name"`
	Segment    string `csv:"segment" json:"segment"`
	Region     string `csv:"region" json:"region"`
	City       string `csv:"city" json:"city"`
	SignupDate Date   `csv:"signup_date" json:"signup_date"`
}

// Product is one row of the product dimension.
type Product struct {
	ProductID   ID     `csv:"product_id" json:"product_id"`
	SKU         string `csv:"sku" json:"sku"`
	Category    string `csv:"category" json:"category"`
	Subcategory string `csv:"subcategory" json:"subcategory"`
	Brand       string `csv:"brand" json:"brand"`
	Description string `csv:"description" json:"description"`
}

// Sale is one transaction fact row.
type Sale struct {
	SaleID     ID      `csv:"sale_id" json:"sale_id"`
	Date       Date    `csv:"date" json:"date"`
	CustomerID ID      `csv:"customer_id" json:"customer_id"`
	ProductID  ID      `csv:"product_id" json:"product_id"`
	Quantity   int64   `csv:"quantity" json:"quantity"`
	Subtotal   float64 `csv:"subtotal_amount" json:"subtotal_amount"`
	Margin     float64 `csv:"total_margin_amount" json:"total_margin_amount"`
}

// InventorySnapshot is a periodic per-center valuation row. Snapshots are
// never deduplicated; raw rows aggregate as-is.
type InventorySnapshot struct {
	LogisticsCenter string  `csv:"logistics_center" json:"logistics_center"`
	CutoffDate      Date    `csv:"cutoff_date" json:"cutoff_date"`
	InventoryValue  float64 `csv:"inventory_value_amount" json:"inventory_value_amount"`
}

// ImportRecord is one inbound merchandise shipment row.
type ImportRecord struct {
	OrderDate     Date    `csv:"order_date" json:"order_date"`
	ArrivalDate   Date    `csv:"arrival_date" json:"arrival_date"`
	OriginCountry string  `csv:"origin_country" json:"origin_country"`
	CostUSD       float64 `csv:"merchandise_cost_usd" json:"merchandise_cost_usd"`
}

// Receivable status values.
const (
	ReceivableCurrent = "Current"
	ReceivableOverdue = "Overdue"
)

// ReceivableDocument is one accounts-receivable ledger line.
type ReceivableDocument struct {
	DocumentID  string  `csv:"document_id" json:"document_id"`
	CustomerID  ID      `csv:"customer_id" json:"customer_id"`
	InvoiceDate Date    `csv:"invoice_date" json:"invoice_date"`
	DueDate     Date    `csv:"due_date" json:"due_date"`
	Balance     float64 `csv:"balance_amount" json:"balance_amount"`
	Status      string  `csv:"status" json:"status"`
}

// Tables holds the six source tables as loaded (and, for the four keyed
// tables, as cleaned). Tables are immutable once constructed.
type Tables struct {
	Customers   []Customer           `json:"customers"`
	Products    []Product            `json:"products"`
	Sales       []Sale               `json:"sales"`
	Inventory   []InventorySnapshot  `json:"inventory"`
	Imports     []ImportRecord       `json:"imports"`
	Receivables []ReceivableDocument `json:"receivables"`
}
