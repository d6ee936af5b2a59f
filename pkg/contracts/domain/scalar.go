package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical date format used across all source files.
const DateLayout = "2006-01-02"

// ID is a nullable integer identifier column. An empty cell loads as the
// null ID; a non-empty cell that is not an integer is a load error, because
// identifier coercion failures must abort the whole load rather than
// surface partial data.
type ID struct {
	Int64 int64
	Valid bool
}

// NewID returns a valid ID holding v.
func NewID(v int64) ID {
	return ID{Int64: v, Valid: true}
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (id *ID) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*id = ID{}
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Accept float-formatted identifiers ("10.0") the way spreadsheet
		// exports tend to produce them, as long as they are whole numbers.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("invalid identifier %q: %w", s, err)
		}
		v = int64(f)
	}
	*id = ID{Int64: v, Valid: true}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (id ID) MarshalCSV() (string, error) {
	if !id.Valid {
		return "", nil
	}
	return strconv.FormatInt(id.Int64, 10), nil
}

// MarshalJSON renders the identifier as a number, or null when unset.
func (id ID) MarshalJSON() ([]byte, error) {
	if !id.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.Int64, 10)), nil
}

// UnmarshalJSON accepts a number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ID{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*id = ID{Int64: v, Valid: true}
	return nil
}

// Date is a nullable calendar date column. An empty cell loads as the null
// Date; a non-empty cell that does not parse is a load error.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid Date for the given day (UTC, midnight).
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. The canonical layout is
// tried first, then RFC 3339 for sources that export full timestamps.
func (d *Date) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected %s or RFC 3339", s, DateLayout)
		}
	}
	*d = Date{Time: t.UTC(), Valid: true}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Date) MarshalCSV() (string, error) {
	if !d.Valid {
		return "", nil
	}
	return d.Time.Format(DateLayout), nil
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Time.Format(DateLayout))), nil
}

// UnmarshalJSON accepts a "YYYY-MM-DD" string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalCSV(s)
}

// String implements fmt.Stringer for log output.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}
