package reconcile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawRow is a loosely typed import row keyed by Container JSON field names
// ("containerNo", "pkgs", "tkNhaVC", ...). Values may be strings, numbers or
// nil; every accessor coerces leniently and never fails.
type RawRow map[string]any

// Has reports whether key carries a non-blank value.
func (r RawRow) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	return toString(v) != ""
}

// String returns the first non-blank value among keys, trimmed.
func (r RawRow) String(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s := toString(v); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the numeric value of key. ok is false when the key is
// absent, blank, or not a finite number.
func (r RawRow) Number(key string) (float64, bool) {
	v, present := r[key]
	if !present || v == nil {
		return 0, false
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		parsed, ok := parseNumber(toString(v))
		if !ok {
			return 0, false
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// parseNumber accepts "28.8", " 28.8 " and the comma-decimal form "28,8".
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
