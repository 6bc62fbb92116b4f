package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// YearMonth identifies a single calendar month, the unit the billing
// ledger advances by. It replaces free-form "YYYY-MM" strings so period
// arithmetic and comparisons never go through a parser.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a period in "2006-01" form.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return YearMonthOf(t), nil
}

// Next returns the calendar month immediately after ym.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Previous returns the calendar month immediately before ym.
func (ym YearMonth) Previous() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Equal reports whether two periods name the same calendar month.
func (ym YearMonth) Equal(other YearMonth) bool {
	return ym.Year == other.Year && ym.Month == other.Month
}

// Compare returns -1, 0 or 1 as ym is before, equal to or after other.
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year < other.Year:
		return -1
	case ym.Year > other.Year:
		return 1
	case ym.Month < other.Month:
		return -1
	case ym.Month > other.Month:
		return 1
	default:
		return 0
	}
}

// Start returns the first instant of the month in UTC. All billing
// cut-offs are evaluated against UTC month boundaries.
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month in UTC.
func (ym YearMonth) End() time.Time {
	return ym.Next().Start()
}

// Days returns the number of calendar days in the month.
func (ym YearMonth) Days() int {
	// Day zero of the next month is the last day of this one.
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t falls within the month (UTC boundaries).
func (ym YearMonth) Contains(t time.Time) bool {
	return !t.Before(ym.Start()) && t.Before(ym.End())
}

// String formats the period as "2006-01".
func (ym YearMonth) String() string {
	return ym.Start().Format("2006-01")
}

// Label formats the period for invoice display, e.g. "January 2006".
func (ym YearMonth) Label() string {
	return ym.Start().Format("January 2006")
}

// IsZero reports whether ym is the zero value.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Validate checks that the month component is a real calendar month.
func (ym YearMonth) Validate() error {
	if ym.Month < time.January || ym.Month > time.December {
		return fmt.Errorf("invalid month %d in period", ym.Month)
	}
	return nil
}

// MarshalJSON encodes the period as its "2006-01" string form.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return json.Marshal(ym.String())
}

// UnmarshalJSON accepts the "2006-01" string form.
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// Value implements driver.Valuer so the period persists as "2006-01".
func (ym YearMonth) Value() (driver.Value, error) {
	return ym.String(), nil
}

// Scan implements sql.Scanner for text and byte columns.
func (ym *YearMonth) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		parsed, err := ParseYearMonth(v)
		if err != nil {
			return err
		}
		*ym = parsed
		return nil
	case []byte:
		parsed, err := ParseYearMonth(string(v))
		if err != nil {
			return err
		}
		*ym = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into YearMonth", src)
	}
}
