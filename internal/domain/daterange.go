package domain

import (
	"strings"
	"time"
)

// RangeSeparator joins the start and end tokens of a trip's DateRange.
const RangeSeparator = " ~ "

// Date token layouts accepted in a DateRange. Month/day-only tokens take
// the caller's default year.
const (
	layoutFullDate = "2006/01/02"
	layoutMonthDay = "01/02"
)

// ParseDateToken parses one DateRange token. The full "yyyy/MM/dd" layout is
// tried first; "MM/dd" is accepted as a fallback with the year defaulted to
// defaultYear.
func ParseDateToken(tok string, defaultYear int) (time.Time, bool) {
	tok = strings.TrimSpace(tok)
	if t, err := time.Parse(layoutFullDate, tok); err == nil {
		return t, true
	}
	if t, err := time.Parse(layoutMonthDay, tok); err == nil {
		return time.Date(defaultYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// ParseDateRange parses a trip's DateRange into an inclusive [start, end]
// interval. A single-date range yields start == end. Returns ok=false for an
// empty or unparseable range; a ranged value needs both tokens to parse.
// Start and end are swapped if given out of order.
func ParseDateRange(raw string, defaultYear int) (start, end time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, time.Time{}, false
	}

	if strings.Contains(raw, "~") {
		parts := strings.SplitN(raw, "~", 2)
		start, sok := ParseDateToken(parts[0], defaultYear)
		end, eok := ParseDateToken(parts[1], defaultYear)
		if !sok || !eok {
			return time.Time{}, time.Time{}, false
		}
		if start.After(end) {
			start, end = end, start
		}
		return start, end, true
	}

	single, sok := ParseDateToken(raw, defaultYear)
	if !sok {
		return time.Time{}, time.Time{}, false
	}
	return single, single, true
}

// NormalizeDateRange rewrites a ranged value so the start token precedes the
// end token, keeping each token's original text. Values that are empty,
// single-date, or unparseable are returned unchanged — imported backups may
// carry arbitrary strings and normalization must never corrupt them.
func NormalizeDateRange(raw string, defaultYear int) string {
	if !strings.Contains(raw, "~") {
		return raw
	}
	parts := strings.SplitN(raw, "~", 2)
	startTok := strings.TrimSpace(parts[0])
	endTok := strings.TrimSpace(parts[1])

	start, sok := ParseDateToken(startTok, defaultYear)
	end, eok := ParseDateToken(endTok, defaultYear)
	if !sok || !eok {
		return raw
	}
	if start.After(end) {
		startTok, endTok = endTok, startTok
	}
	return startTok + RangeSeparator + endTok
}
