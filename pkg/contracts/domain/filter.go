package domain

import "time"

// FilterSpec is the set of user-chosen constraints applied to the enriched
// sales table before aggregation. A nil Region or Segment means "all"; the
// sentinel is the absent pointer, never a magic string, so a category
// literally named "All" filters like any other value.
type FilterSpec struct {
	From    time.Time `json:"date_from"`
	To      time.Time `json:"date_to"`
	Region  *string   `json:"region,omitempty"`
	Segment *string   `json:"segment,omitempty"`
}

// WithRegion returns a copy of the filter constrained to the given region.
func (f FilterSpec) WithRegion(region string) FilterSpec {
	f.Region = &region
	return f
}

// WithSegment returns a copy of the filter constrained to the given segment.
func (f FilterSpec) WithSegment(segment string) FilterSpec {
	f.Segment = &segment
	return f
}

// Matches reports whether a single enriched row satisfies the filter: date
// within [From, To] inclusive, and each set selector equal to the row's
// attribute. Rows with a null attribute never match a set selector.
func (f FilterSpec) Matches(row EnrichedSale) bool {
	if row.Date.Before(f.From) || row.Date.After(f.To) {
		return false
	}
	if f.Region != nil && (row.Region == nil || *row.Region != *f.Region) {
		return false
	}
	if f.Segment != nil && (row.Segment == nil || *row.Segment != *f.Segment) {
		return false
	}
	return true
}
