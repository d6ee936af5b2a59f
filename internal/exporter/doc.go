// Package exporter renders assembled dashboard reports to downloadable
// formats: a multi-sheet Excel workbook for the export endpoint and
// BOM-prefixed CSV files for on-disk report drops.
package exporter
