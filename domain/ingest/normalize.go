package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// serialEpoch anchors numeric spreadsheet dates: serial 1 = 1900-01-01.
// This matches the legacy 1900 date system of common spreadsheet tools
// and is knowingly wrong for dates before March 1900.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	nameCharset   = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	delimitedDate = regexp.MustCompile(`^(\d{1,4})[-/](\d{1,2})[-/](\d{1,4})$`)
)

// fallbackLayouts are tried, in order, for free-text dates that match
// none of the delimited formats.
var fallbackLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z07:00",
}

// NormalizeCell converts one raw cell into its canonical value for the
// declared kind. It never fails: unusable input comes back as a missing
// value (or an unparsable marker for numeric cells) and is rejected later
// by the validator.
func NormalizeCell(raw string, kind CellKind) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NewMissingValue()
	}

	switch kind {
	case KindName:
		return normalizeName(trimmed)
	case KindNumeric:
		return normalizeNumeric(trimmed)
	case KindDate:
		return normalizeDate(trimmed)
	default:
		return NewTextValue(trimmed)
	}
}

// normalizeName title-cases each whitespace-delimited token. Anything
// outside letters, spaces, apostrophes and hyphens rejects the whole
// value, which the validator then reports as missing.
func normalizeName(s string) Value {
	if !nameCharset.MatchString(s) {
		return NewMissingValue()
	}

	tokens := strings.Fields(s)
	for i, tok := range tokens {
		runes := []rune(strings.ToLower(tok))
		runes[0] = unicode.ToUpper(runes[0])
		tokens[i] = string(runes)
	}
	return NewTextValue(strings.Join(tokens, " "))
}

// normalizeNumeric strips leading zeros while keeping at least one digit,
// then coerces. Coercion failures are flagged, not dropped, so error
// messages can still show the offending input.
func normalizeNumeric(s string) Value {
	for len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		s = s[1:]
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NewUnparsableValue(s)
	}
	return NewNumericValue(s, n)
}

// normalizeDate accepts a numeric spreadsheet serial, the four delimited
// text formats, or free text as a last resort. Anything that does not
// survive a calendar round-trip comes back missing.
func normalizeDate(s string) Value {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return NewDateValue(serialEpoch.AddDate(0, 0, int(serial)-1))
	}

	if m := delimitedDate.FindStringSubmatch(s); m != nil {
		return dateFromGroups(m[1], m[2], m[3])
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateValue(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
		}
	}
	return NewMissingValue()
}

// dateFromGroups disambiguates DD-MM-YYYY vs YYYY-MM-DD by which group
// carries four digits, then verifies the calendar date round-trips
// exactly so inputs like 31-02-2020 cannot slip through.
func dateFromGroups(first, month, last string) Value {
	var dayStr, yearStr string
	switch {
	case len(first) == 4:
		yearStr, dayStr = first, last
	case len(last) == 4:
		dayStr, yearStr = first, last
	default:
		return NewMissingValue()
	}

	day, _ := strconv.Atoi(dayStr)
	mon, _ := strconv.Atoi(month)
	year, _ := strconv.Atoi(yearStr)

	t := time.Date(year, time.Month(mon), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != mon || t.Day() != day {
		return NewMissingValue()
	}
	return NewDateValue(t)
}
