package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date layout used by record dates.
const DateLayout = "2006-01-02"

// Month is a calendar month in a specific year, always stored as the first
// instant of that month in UTC.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which t occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseDateToMonth parses a YYYY-MM-DD date and returns its Month.
func ParseDateToMonth(s string) (Month, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Month{}, err
	}
	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// AddDate adds a number of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Equal reports whether m and n are the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether t falls in m.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(t).Equal(m)
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}
