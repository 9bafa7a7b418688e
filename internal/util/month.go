package util

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthAbbreviations lists the short month labels in calendar order
var MonthAbbreviations = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthAbbrev returns the three-letter label for a month, e.g. "Mar"
func MonthAbbrev(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return MonthAbbreviations[m-1]
}

// CurrentYear returns the wall-clock year in the given location
func CurrentYear(loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Year()
}

// dateLayouts are tried in order when a date attribute is a string
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDocumentDate reads a date attribute from raw JSON.
// Strings are parsed as ISO-8601 datetimes or dates, numbers as Unix milliseconds.
// Values without a zone offset are read in loc.
// Missing, null and unparseable values report ok == false.
func ParseDocumentDate(raw json.RawMessage, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	v, ok := decodeScalar(raw)
	if !ok {
		return time.Time{}, false
	}

	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t.In(loc), true
			}
		}
		return time.Time{}, false
	case json.Number:
		ms, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil {
				return time.Time{}, false
			}
			ms = int64(f)
		}
		return time.UnixMilli(ms).In(loc), true
	default:
		return time.Time{}, false
	}
}

// ParseAmount reads a numeric attribute from raw JSON.
// Only JSON numbers are accepted; strings, booleans, null and missing values report ok == false.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	v, ok := decodeScalar(raw)
	if !ok {
		return decimal.Zero, false
	}
	n, isNumber := v.(json.Number)
	if !isNumber {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func decodeScalar(raw json.RawMessage) (interface{}, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}
