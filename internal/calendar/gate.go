package calendar

import (
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

const secondsPerDay = 86400

// IsActiveNow reports whether trip is currently running at now, given the
// trip's first scheduled departure and last scheduled arrival. A trip with
// no scheduled departure at its first stop or no scheduled arrival at its
// last stop can never be active.
func IsActiveNow(schedule *gtfs.Schedule, trip *gtfs.StaticTrip, now time.Time) bool {
	if len(trip.StopTimes) == 0 {
		return false
	}
	first := trip.StopTimes[0]
	last := trip.StopTimes[len(trip.StopTimes)-1]
	if first.DepartureSeconds == nil || last.ArrivalSeconds == nil {
		return false
	}
	t0 := *first.DepartureSeconds
	tn := *last.ArrivalSeconds

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	s := now.Hour()*3600 + now.Minute()*60 + now.Second()

	if RunsOn(schedule, trip, today) && t0 <= s && s <= tn {
		return true
	}

	if RunsOn(schedule, trip, yesterday) && tn >= secondsPerDay {
		if t0 < secondsPerDay {
			// Preserved verbatim from the source: the t0 <= s half reports
			// yesterday's trip active again from t0 until midnight today,
			// whether or not the service runs today. When t0 <= tn-86400 the
			// two halves overlap and every time of day counts as active.
			// Known over-inclusive; not corrected here.
			return t0 <= s || tn-secondsPerDay >= s
		}
		return t0-secondsPerDay <= s && s <= tn-secondsPerDay
	}

	return false
}
