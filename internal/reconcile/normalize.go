// Package reconcile holds the container reconciliation rules: import merging,
// declaration mismatch propagation, detention tiers, period inventory rollup and
// debit note computation. Everything here is a pure function of its arguments;
// callers inject "now".
package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the canonical date form stored on containers.
const DateLayout = "2006-01-02"

// timestampLayouts are the machine-readable forms accepted besides D/M/Y.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Spreadsheet serial day numbers accepted as dates (1954-10-03 .. 2119-01-08).
const (
	minSerialDay = 20000
	maxSerialDay = 80000
)

// NormalizeDate canonicalizes a date string to YYYY-MM-DD. Slash-separated
// input is read as D/M/Y with two-digit years in the 2000s. Anything
// unparseable yields "".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") {
		if parts := strings.Split(s, "/"); len(parts) == 3 {
			return normalizeDMY(parts)
		}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minSerialDay && serial <= maxSerialDay {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(DateLayout)
		}
	}
	return ""
}

func normalizeDMY(parts []string) string {
	d := strings.TrimSpace(parts[0])
	m := strings.TrimSpace(parts[1])
	y := strings.TrimSpace(parts[2])
	if len(y) == 2 {
		y = "20" + y
	}
	day, err1 := strconv.Atoi(d)
	month, err2 := strconv.Atoi(m)
	year, err3 := strconv.Atoi(y)
	if err1 != nil || err2 != nil || err3 != nil || len(y) != 4 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31/02 into March; reject instead.
	if t.Day() != day || int(t.Month()) != month {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a canonical or loosely formatted date. The result is midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	n := NormalizeDate(s)
	if n == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, n)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
