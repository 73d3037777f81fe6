package pubkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateDefault(t *testing.T) {
	assert.Equal(t, "January 15, 2024", FormatDate(day("2024-01-15")))
	assert.Equal(t, "December 1, 1999", FormatDate(day("1999-12-01")))
}

func TestFormatDateOptions(t *testing.T) {
	d := day("2024-01-05") // a Friday
	tests := []struct {
		name string
		opts DateOptions
		want string
	}{
		{"short month", DateOptions{Year: StyleNumeric, Month: StyleShort, Day: StyleNumeric}, "Jan 5, 2024"},
		{"narrow month", DateOptions{Year: StyleNumeric, Month: StyleNarrow, Day: StyleNumeric}, "J 5, 2024"},
		{"numeric", DateOptions{Year: StyleNumeric, Month: StyleNumeric, Day: StyleNumeric}, "1/5/2024"},
		{"two digit", DateOptions{Year: Style2Digit, Month: Style2Digit, Day: Style2Digit}, "01/05/24"},
		{"with weekday", DateOptions{Weekday: StyleLong, Year: StyleNumeric, Month: StyleLong, Day: StyleNumeric}, "Friday, January 5, 2024"},
		{"short weekday", DateOptions{Weekday: StyleShort, Month: StyleShort, Day: StyleNumeric}, "Fri, Jan 5"},
		{"month and year", DateOptions{Year: StyleNumeric, Month: StyleLong}, "January 2024"},
		{"month only", DateOptions{Month: StyleLong}, "January"},
		{"weekday only", DateOptions{Weekday: StyleLong}, "Friday"},
		{"day and year", DateOptions{Year: StyleNumeric, Day: StyleNumeric}, "5 2024"},
		{"all omitted", DateOptions{}, "1/5/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(d, tt.opts))
		})
	}
}

func TestFormatDateIgnoresClock(t *testing.T) {
	d := time.Date(2024, time.January, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "January 15, 2024", FormatDate(d))
}
