// Package dataprocessing implements the dashboard data pipeline: loading
// the six tabular sources, cleaning keyed tables, enriching sales with
// dimension attributes, filtering the enriched table, and computing the
// aggregate set the presentation layer renders.
//
// The pipeline stages are pure functions over in-memory tables. Only the
// loader can fail; cleaning, enrichment, filtering and aggregation are
// total over well-typed input and return empty results rather than errors
// for empty or non-matching inputs.
package dataprocessing
