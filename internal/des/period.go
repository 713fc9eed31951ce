package des

import (
	"fmt"
	"time"
)

// Month identifies one reporting month.
type Month struct {
	Year  int
	Month time.Month
}

// String formats the month as MM/YYYY, the label used throughout the report.
func (m Month) String() string {
	return fmt.Sprintf("%02d/%d", int(m.Month), m.Year)
}

// MonthRange returns the half-open UTC window [start, end) covering the
// given month. An invoice created exactly at end belongs to the following
// month, never to both. December wraps to January of the next year.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// YearMonths returns the 12 months of a year in ascending order, defining
// the processing order of the report.
func YearMonths(year int) []Month {
	months := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, Month{Year: year, Month: m})
	}
	return months
}
