// Package calendar answers whether a trip's service runs on a given civil
// date, and whether a trip is active at a given moment.
package calendar

import (
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

const dateLayout = "20060102"

// RunsOn reports whether the trip's service operates on date (formatted
// YYYYMMDD). The weekly pattern is checked first, then every matching
// calendar_dates.txt exception is applied in feed order - the last one to
// match wins, so a Deleted exception can override an Added one recorded
// earlier for the same date and vice versa.
func RunsOn(schedule *gtfs.Schedule, trip *gtfs.StaticTrip, date string) bool {
	result := false

	if cal, ok := schedule.Calendars[trip.ServiceID]; ok && withinRange(cal, date) {
		if weekday, ok := parseWeekday(date); ok {
			result = cal.Weekday[weekday]
		}
	}

	for _, exc := range schedule.Exceptions[trip.ServiceID] {
		if exc.Date != date {
			continue
		}
		switch exc.Kind {
		case gtfs.Added:
			result = true
		case gtfs.Deleted:
			result = false
		}
	}

	return result
}

func withinRange(cal *gtfs.Calendar, date string) bool {
	return cal.StartDate <= date && date <= cal.EndDate
}

func parseWeekday(date string) (int, bool) {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}
