// Package dates converts between the Things database's Core Data epoch
// (2001-01-01 00:00:00 UTC) and standard representations. Calendar dates
// are stored as whole days since the epoch, timestamps as seconds.
package dates

import "time"

// EpochUnixSeconds is the Things reference instant expressed in Unix time.
const EpochUnixSeconds int64 = 978307200

// Epoch is the reference instant itself.
var Epoch = time.Unix(EpochUnixSeconds, 0).UTC()

const secondsPerDay = 86400

// TimestampToISO converts seconds since the reference instant to a UTC
// ISO-8601 string with millisecond precision. TimestampToISO(0) is exactly
// "2001-01-01T00:00:00.000Z".
func TimestampToISO(seconds float64) string {
	millis := int64(seconds * 1000)
	t := Epoch.Add(time.Duration(millis) * time.Millisecond)
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// DayIntegerToDate converts whole days since the reference instant to a
// YYYY-MM-DD UTC calendar date. Calendar addition is used, so leap years
// are handled by the time package.
func DayIntegerToDate(days int) string {
	return Epoch.AddDate(0, 0, days).Format("2006-01-02")
}

// TodayAsDayInteger converts now to whole days since the reference
// instant using floor division, so every instant within one UTC day maps
// to the same integer.
func TodayAsDayInteger(now time.Time) int {
	secs := now.Unix() - EpochUnixSeconds
	days := secs / secondsPerDay
	if secs < 0 && secs%secondsPerDay != 0 {
		days--
	}
	return int(days)
}
