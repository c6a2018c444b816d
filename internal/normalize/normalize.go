// Package normalize coerces the loosely formatted values found in scraped
// records into canonical Go values. Nothing in here returns an error: every
// unparseable input maps to a documented default.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// zeroValues are display strings the scraper emits when a counter is missing
var zeroValues = map[string]struct{}{
	"n/a":          {},
	"na":           {},
	"":             {},
	"compartilhar": {},
	"0":            {},
}

// ParseDate parses a scraped date using the current time as reference.
// See ParseDateAt.
func ParseDate(text string) time.Time {
	return ParseDateAt(text, time.Now())
}

// ParseDateAt parses "YYYY-M-D" or the short "D-M" form, which takes the year of now.
// Anything else, including out-of-range dates, returns now: callers must treat
// that value as "date unknown". LookupDate reports that case explicitly.
func ParseDateAt(text string, now time.Time) time.Time {
	if parsed, ok := LookupDate(text, now); ok {
		return parsed
	}
	return now
}

// LookupDate is ParseDateAt with the fallback made visible: ok is false when text
// holds no usable date.
func LookupDate(text string, now time.Time) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(text), "-")

	var year, month, day int
	var err error

	switch len(parts) {
	case 3:
		if year, err = strconv.Atoi(parts[0]); err != nil {
			return time.Time{}, false
		}
		if month, err = strconv.Atoi(parts[1]); err != nil {
			return time.Time{}, false
		}
		if day, err = strconv.Atoi(parts[2]); err != nil {
			return time.Time{}, false
		}
	case 2:
		year = now.Year()
		if day, err = strconv.Atoi(parts[0]); err != nil {
			return time.Time{}, false
		}
		if month, err = strconv.Atoi(parts[1]); err != nil {
			return time.Time{}, false
		}
	default:
		return time.Time{}, false
	}

	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 1); reject it instead
	if parsed.Day() != day || int(parsed.Month()) != month {
		return time.Time{}, false
	}

	return parsed, true
}

// ParseCompactNumber converts counters such as "42.6K", "1.2M" or "3864" to an int.
// Integers pass through unchanged; unknown types and unparseable strings yield zero.
func ParseCompactNumber(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		// encoding/json decodes every number as float64
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v)
		}
		return 0
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		return 0
	case string:
		return parseCompactString(v)
	default:
		return 0
	}
}

func parseCompactString(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := zeroValues[value]; ok {
		return 0
	}

	multiplier := 0.0
	switch {
	case strings.HasSuffix(value, "k"):
		multiplier = 1_000
	case strings.HasSuffix(value, "m"):
		multiplier = 1_000_000
	}

	if multiplier > 0 {
		number, err := strconv.ParseFloat(strings.TrimSpace(value[:len(value)-1]), 64)
		if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
			return 0
		}
		return int(number * multiplier)
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return number
}
