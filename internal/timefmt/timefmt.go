// Package timefmt produces the human-readable timestamps the dashboard
// displays verbatim. Records keep these as strings; chronological
// ordering comes from insertion order, not from parsing them back.
package timefmt

import "time"

const (
	stampLayout = "2006-01-02 15:04"
	clockLayout = "15:04"
)

// Stamp returns the full date-time stamp used on issues and logs.
func Stamp(t time.Time) string {
	return t.Format(stampLayout)
}

// Clock returns the short HH:mm form used on alarms.
func Clock(t time.Time) string {
	return t.Format(clockLayout)
}

// EndOfDay returns today's 23:59 stamp, the fallback due date for
// issues created without one.
func EndOfDay(t time.Time) string {
	return t.Format("2006-01-02") + " 23:59"
}
