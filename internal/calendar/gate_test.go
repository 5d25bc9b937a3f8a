package calendar

import (
	"testing"
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

func tripWithBounds(serviceID string, first, last int) *gtfs.StaticTrip {
	return &gtfs.StaticTrip{
		ID:        "T1",
		ServiceID: serviceID,
		StopTimes: []gtfs.ScheduledStopTime{
			{Stop: &gtfs.Stop{ID: "A"}, DepartureSeconds: &first},
			{Stop: &gtfs.Stop{ID: "B"}, ArrivalSeconds: &last},
		},
	}
}

func alwaysRunningSchedule() *gtfs.Schedule {
	return &gtfs.Schedule{
		Calendars: map[string]*gtfs.Calendar{
			"WD": {
				ServiceID: "WD",
				Weekday:   [7]bool{true, true, true, true, true, true, true},
				StartDate: "20260101",
				EndDate:   "20261231",
			},
		},
		Exceptions: map[string][]gtfs.CalendarException{},
	}
}

func TestIsActiveNowSameDay(t *testing.T) {
	schedule := alwaysRunningSchedule()
	trip := tripWithBounds("WD", 43260, 43380) // 12:01 - 12:03

	within := time.Date(2026, 7, 27, 12, 2, 0, 0, time.UTC)
	if !IsActiveNow(schedule, trip, within) {
		t.Fatal("want trip active between its first departure and last arrival")
	}

	before := time.Date(2026, 7, 27, 11, 0, 0, 0, time.UTC)
	if IsActiveNow(schedule, trip, before) {
		t.Fatal("want trip inactive before its first departure")
	}
}

func TestIsActiveNowMissingTimes(t *testing.T) {
	schedule := alwaysRunningSchedule()
	trip := &gtfs.StaticTrip{
		ID:        "T2",
		ServiceID: "WD",
		StopTimes: []gtfs.ScheduledStopTime{
			{Stop: &gtfs.Stop{ID: "A"}},
			{Stop: &gtfs.Stop{ID: "B"}},
		},
	}

	now := time.Date(2026, 7, 27, 12, 0, 0, 0, time.UTC)
	if IsActiveNow(schedule, trip, now) {
		t.Fatal("want a trip with no first departure or last arrival to never be active")
	}
}

func TestIsActiveNowOvernightSpillover(t *testing.T) {
	schedule := alwaysRunningSchedule()
	// Departs 23:50 the day before, arrives 00:10 the following service day.
	trip := tripWithBounds("WD", 85800, 86400+600)

	justAfterMidnight := time.Date(2026, 7, 28, 0, 5, 0, 0, time.UTC)
	if !IsActiveNow(schedule, trip, justAfterMidnight) {
		t.Fatal("want an overnight trip active just after midnight, before its spilled-over arrival")
	}
}

func TestIsActiveNowOvernightOverInclusiveQuirk(t *testing.T) {
	// Documents the known over-inclusive behavior of the overflow
	// disjunction: when yesterday's service qualifies for the overflow
	// check and the spillover window is wide enough that its two halves
	// overlap, the trip is reported active for essentially the whole of
	// the next day, not just up to its spilled-over arrival - even when
	// the service does not run on that next day.
	schedule := alwaysRunningSchedule()
	// Mondays only: 2026-07-27 is a Monday, 2026-07-28 a Tuesday, so on
	// the 28th only yesterday's run can make the trip active.
	schedule.Calendars["WD"].Weekday = [7]bool{false, true, false, false, false, false, false}
	trip := tripWithBounds("WD", 30000, 86400+56000) // 08:20 - 15:33 the next day

	evening := time.Date(2026, 7, 28, 20, 0, 0, 0, time.UTC)
	if !IsActiveNow(schedule, trip, evening) {
		t.Fatal("want the documented over-inclusive quirk to report this trip active at 20:00 the next day, after its spilled-over arrival")
	}
}
