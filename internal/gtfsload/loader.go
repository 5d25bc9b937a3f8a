// Package gtfsload fetches the static feed archive over HTTP and parses it
// into a gtfs.Schedule (§4.8's "build into a local variable first"
// discipline - ScheduleStore never sees a partially-built schedule).
package gtfsload

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

// Load fetches the ZIP at url and parses stops.txt, trips.txt,
// stop_times.txt, calendar.txt, and calendar_dates.txt into a Schedule.
func Load(ctx context.Context, url string, timeout time.Duration) (*gtfs.Schedule, error) {
	body, err := fetch(ctx, url, timeout)
	if err != nil {
		return nil, fmt.Errorf("fetch static feed: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("open static feed archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	stops, err := parseStops(files["stops.txt"])
	if err != nil {
		return nil, fmt.Errorf("parse stops.txt: %w", err)
	}

	schedule := &gtfs.Schedule{
		Stops:        stops,
		Translations: map[string]map[string]string{},
	}

	stopTimesByTrip, err := parseStopTimes(files["stop_times.txt"], stops)
	if err != nil {
		return nil, fmt.Errorf("parse stop_times.txt: %w", err)
	}

	trips, err := parseTrips(files["trips.txt"], stopTimesByTrip)
	if err != nil {
		return nil, fmt.Errorf("parse trips.txt: %w", err)
	}
	schedule.Trips = trips

	calendars, err := parseCalendar(files["calendar.txt"])
	if err != nil {
		return nil, fmt.Errorf("parse calendar.txt: %w", err)
	}
	schedule.Calendars = calendars

	exceptions, err := parseCalendarDates(files["calendar_dates.txt"])
	if err != nil {
		return nil, fmt.Errorf("parse calendar_dates.txt: %w", err)
	}
	schedule.Exceptions = exceptions

	return schedule, nil
}

func fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("static feed returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
