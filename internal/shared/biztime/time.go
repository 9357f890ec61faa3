// Package biztime resolves business calendar boundaries. Timestamps are
// stored and transported in UTC; the business timezone only decides where
// a day or a usage month starts.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

// ISO8601Millis is the layout used for response timestamps.
const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init sets the business timezone once. An empty tz selects UTC.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, initializing it to UTC on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// Timestamp formats t as an ISO-8601 UTC string with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(ISO8601Millis)
}

// MonthPeriod returns the business calendar month containing t as a
// half-open interval [start, end) in UTC.
func MonthPeriod(t time.Time) (start, end time.Time) {
	b := t.In(Location())
	first := time.Date(b.Year(), b.Month(), 1, 0, 0, 0, 0, Location())
	return first.UTC(), first.AddDate(0, 1, 0).UTC()
}

// DaysAgoUTC returns the start of the business day n days before t.
func DaysAgoUTC(t time.Time, n int) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day()-n, 0, 0, 0, 0, Location()).UTC()
}
