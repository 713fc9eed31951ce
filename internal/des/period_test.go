package des

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid-year month",
			year:      2024,
			month:     time.March,
			wantStart: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january",
			year:      2024,
			month:     time.January,
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december wraps to next year",
			year:      2024,
			month:     time.December,
			wantStart: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthRange(tt.year, tt.month)
			assert.True(t, start.Equal(tt.wantStart), "start = %v", start)
			assert.True(t, end.Equal(tt.wantEnd), "end = %v", end)
		})
	}
}

func TestMonthRangeWindowsAreContiguous(t *testing.T) {
	// The end of each month is exactly the start of the next one, so the
	// half-open windows tile the year with no gap and no overlap.
	months := YearMonths(2024)
	for i := 0; i < len(months)-1; i++ {
		_, end := MonthRange(months[i].Year, months[i].Month)
		nextStart, _ := MonthRange(months[i+1].Year, months[i+1].Month)
		assert.True(t, end.Equal(nextStart), "gap between %s and %s", months[i], months[i+1])
	}
}

func TestYearMonths(t *testing.T) {
	months := YearMonths(2024)

	assert.Len(t, months, 12)
	for i, m := range months {
		assert.Equal(t, 2024, m.Year)
		assert.Equal(t, time.Month(i+1), m.Month)
	}
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "03/2024", Month{Year: 2024, Month: time.March}.String())
	assert.Equal(t, "12/2025", Month{Year: 2025, Month: time.December}.String())
}
