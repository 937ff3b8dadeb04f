// Package httpdate parses and formats HTTP-date values.
package httpdate

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const imfDateLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// Parse parses an HTTP-date.
// It accepts IMF-fixdate, the obsolete RFC 850 and asctime formats,
// and RFC 1123 with a numeric zone. The result is in UTC.
func Parse(dateStr string) (time.Time, error) {
	str := normalizeDateStr(dateStr)
	date, err := imfDate(str)
	if err == nil {
		return date, nil
	}
	// try to parse as obsolete date
	if date, err := obsDate(str); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.RFC1123Z, str); err == nil {
		return date.UTC(), nil
	}
	// return original error if unsuccessful
	return time.Time{}, err
}

// Format formats t as IMF-fixdate in GMT.
func Format(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

func imfDate(str string) (time.Time, error) {
	date, err := time.Parse(imfDateLayout, str)
	if err != nil {
		return date, err
	}
	if zone, _ := date.Zone(); zone != "GMT" {
		return date, fmt.Errorf("date %s is not in GMT time, but %s", str, zone)
	}
	return date.UTC(), nil
}

func obsDate(str string) (time.Time, error) {
	if date, err := time.Parse(time.RFC850, str); err == nil {
		return date.UTC(), nil
	}
	date, err := time.Parse(time.ANSIC, str)
	return date.UTC(), err
}

// HTTP-date is case sensitive, but month and day names are matched
// case-insensitively by time.Parse; uppercasing makes the zone match too.
func normalizeDateStr(dateStr string) string {
	return strings.ToUpper(strings.TrimSpace(dateStr))
}
