package format

import (
	"strings"
	"time"
)

// ============================================================================
// TIME FORMATTERS
// ============================================================================
// Axis ticks and tooltip headers use either the adaptive "smart_date"
// format or an explicit strftime-style format string from the form data.
// ============================================================================

// TimeFormatter renders a timestamp for display.
type TimeFormatter func(time.Time) string

// SmartDateFormat is the adaptive format key.
const SmartDateFormat = "smart_date"

// Time builds a TimeFormatter from a format key. Empty and
// "smart_date" yield the adaptive formatter; anything else is treated
// as a strftime-style pattern.
func Time(format string) TimeFormatter {
	format = strings.TrimSpace(format)
	if format == "" || format == SmartDateFormat {
		return SmartDate
	}
	layout := strftimeToLayout(format)
	return func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	}
}

// SmartDate picks a representation matching the timestamp's granularity.
func SmartDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	midnight := t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
	switch {
	case midnight && t.Day() == 1 && t.Month() == time.January:
		return t.Format("2006")
	case midnight && t.Day() == 1:
		return t.Format("Jan 2006")
	case midnight:
		return t.Format("Jan 2, 2006")
	case t.Second() == 0 && t.Nanosecond() == 0:
		return t.Format("Jan 2, 15:04")
	default:
		return t.Format("2006-01-02 15:04:05")
	}
}

var strftimeReplacer = strings.NewReplacer(
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%d", "02",
	"%e", "_2",
	"%H", "15",
	"%I", "03",
	"%M", "04",
	"%S", "05",
	"%p", "PM",
	"%A", "Monday",
	"%a", "Mon",
	"%B", "January",
	"%b", "Jan",
	"%Z", "MST",
	"%z", "-0700",
	"%%", "%",
)

// strftimeToLayout translates the strftime subset the chart controls
// emit into a Go reference layout.
func strftimeToLayout(format string) string {
	return strftimeReplacer.Replace(format)
}
