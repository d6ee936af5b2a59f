package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"andinabi/pkg/contracts/domain"
)

// Source file names, fixed relative to the configured data directory.
const (
	CustomersFile   = "customers.csv"
	ProductsFile    = "products.csv"
	SalesFile       = "sales.csv"
	InventoryFile   = "inventory.csv"
	ImportsFile     = "imports.csv"
	ReceivablesFile = "receivables.csv"
)

// SourceFiles lists every file a complete dataset requires.
var SourceFiles = []string{
	CustomersFile,
	ProductsFile,
	SalesFile,
	InventoryFile,
	ImportsFile,
	ReceivablesFile,
}

// Required column sets, checked against each source header before
// unmarshalling so an absent column is reported as a SchemaError instead
// of silently loading zero values.
var requiredColumns = map[string][]string{
	CustomersFile:   {"customer_id", "name", "segment", "region", "city", "signup_date"},
	ProductsFile:    {"product_id", "sku", "category", "subcategory", "brand", "description"},
	SalesFile:       {"sale_id", "date", "customer_id", "product_id", "quantity", "subtotal_amount", "total_margin_amount"},
	InventoryFile:   {"logistics_center", "cutoff_date", "inventory_value_amount"},
	ImportsFile:     {"order_date", "arrival_date", "origin_country", "merchandise_cost_usd"},
	ReceivablesFile: {"document_id", "customer_id", "invoice_date", "due_date", "balance_amount", "status"},
}

// Loader reads the six source tables from a data directory into typed
// in-memory tables. Load either returns all six tables or fails; it never
// surfaces a partial set.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// Load reads, type-checks and returns the six source tables.
func (l *Loader) Load(ctx context.Context) (domain.Tables, error) {
	l.logger.InfoContext(ctx, "loading source tables", slog.String("dir", l.dir))

	var t domain.Tables
	var err error

	if t.Customers, err = loadTable[domain.Customer](l.dir, CustomersFile); err != nil {
		return domain.Tables{}, err
	}
	if t.Products, err = loadTable[domain.Product](l.dir, ProductsFile); err != nil {
		return domain.Tables{}, err
	}
	if t.Sales, err = loadTable[domain.Sale](l.dir, SalesFile); err != nil {
		return domain.Tables{}, err
	}
	if t.Inventory, err = loadTable[domain.InventorySnapshot](l.dir, InventoryFile); err != nil {
		return domain.Tables{}, err
	}
	if t.Imports, err = loadTable[domain.ImportRecord](l.dir, ImportsFile); err != nil {
		return domain.Tables{}, err
	}
	if t.Receivables, err = loadTable[domain.ReceivableDocument](l.dir, ReceivablesFile); err != nil {
		return domain.Tables{}, err
	}

	l.logger.InfoContext(ctx, "source tables loaded",
		slog.Int("customers", len(t.Customers)),
		slog.Int("products", len(t.Products)),
		slog.Int("sales", len(t.Sales)),
		slog.Int("inventory", len(t.Inventory)),
		slog.Int("imports", len(t.Imports)),
		slog.Int("receivables", len(t.Receivables)))

	return t, nil
}

// loadTable reads one CSV source into a typed slice. The header is checked
// for the source's required columns first; unmarshalling errors (bad date,
// bad identifier, malformed CSV) surface as LoadError.
func loadTable[T any](dir, name string) ([]T, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	if err := checkHeader(name, raw); err != nil {
		return nil, err
	}

	rows := []T{}
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	return rows, nil
}

// checkHeader verifies the first CSV record contains every required column.
func checkHeader(name string, raw []byte) error {
	header, err := csv.NewReader(bytes.NewReader(raw)).Read()
	if err != nil {
		return &LoadError{Source: name, Err: fmt.Errorf("read header: %w", err)}
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	var missing []string
	for _, col := range requiredColumns[name] {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: name, Missing: missing}
	}
	return nil
}
