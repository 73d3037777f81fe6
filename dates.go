package pubkit

import (
	"strconv"
	"strings"
	"time"
)

// DateStyle selects how one component of a date is displayed. The empty style
// omits the component.
type DateStyle string

const (
	StyleNumeric DateStyle = "numeric"
	Style2Digit  DateStyle = "2-digit"
	StyleLong    DateStyle = "long"
	StyleShort   DateStyle = "short"
	StyleNarrow  DateStyle = "narrow"
	StyleOmitted DateStyle = ""
)

// DateOptions configures FormatDate. Weekday and Month accept the textual
// styles; Month, Year and Day accept numeric and 2-digit.
type DateOptions struct {
	Weekday DateStyle
	Year    DateStyle
	Month   DateStyle
	Day     DateStyle
}

// DefaultDateOptions renders "January 15, 2024".
var DefaultDateOptions = DateOptions{
	Year:  StyleNumeric,
	Month: StyleLong,
	Day:   StyleNumeric,
}

// FormatDate renders t for display using US English conventions. Without
// options it uses DefaultDateOptions. An options value with every component
// omitted falls back to a numeric month/day/year.
func FormatDate(t time.Time, opts ...DateOptions) string {
	o := DefaultDateOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Weekday == StyleOmitted && o.Year == StyleOmitted && o.Month == StyleOmitted && o.Day == StyleOmitted {
		o = DateOptions{Year: StyleNumeric, Month: StyleNumeric, Day: StyleNumeric}
	}

	year := formatYear(t, o.Year)
	day := formatNumber(t.Day(), o.Day)
	weekday := formatWeekday(t.Weekday(), o.Weekday)

	var date string
	switch o.Month {
	case StyleLong, StyleShort, StyleNarrow:
		month := formatMonthName(t.Month(), o.Month)
		switch {
		case day != "" && year != "":
			date = month + " " + day + ", " + year
		case day != "":
			date = month + " " + day
		case year != "":
			date = month + " " + year
		default:
			date = month
		}
	case StyleNumeric, Style2Digit:
		parts := []string{formatNumber(int(t.Month()), o.Month)}
		if day != "" {
			parts = append(parts, day)
		}
		if year != "" {
			parts = append(parts, year)
		}
		date = strings.Join(parts, "/")
	default:
		date = strings.TrimSpace(day + " " + year)
	}

	switch {
	case weekday == "":
		return date
	case date == "":
		return weekday
	default:
		return weekday + ", " + date
	}
}

func formatYear(t time.Time, style DateStyle) string {
	switch style {
	case StyleNumeric:
		return strconv.Itoa(t.Year())
	case Style2Digit:
		y := t.Year() % 100
		if y < 0 {
			y = -y
		}
		return pad2(y)
	default:
		return ""
	}
}

func formatNumber(n int, style DateStyle) string {
	switch style {
	case StyleNumeric:
		return strconv.Itoa(n)
	case Style2Digit:
		return pad2(n)
	default:
		return ""
	}
}

func formatMonthName(m time.Month, style DateStyle) string {
	name := m.String()
	switch style {
	case StyleShort:
		return name[:3]
	case StyleNarrow:
		return name[:1]
	default:
		return name
	}
}

func formatWeekday(d time.Weekday, style DateStyle) string {
	name := d.String()
	switch style {
	case StyleLong:
		return name
	case StyleShort:
		return name[:3]
	case StyleNarrow:
		return name[:1]
	default:
		return ""
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
