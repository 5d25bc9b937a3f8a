package gtfsload

import (
	"archive/zip"
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
}

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

func parseCalendar(f *zip.File) (map[string]*gtfs.Calendar, error) {
	calendars := make(map[string]*gtfs.Calendar)
	if f == nil {
		return calendars, nil
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var rows []*calendarCSV
	if err := gocsv.Unmarshal(rc, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar.txt: %w", err)
	}

	for _, row := range rows {
		if row.ServiceID == "" {
			continue
		}
		cal := &gtfs.Calendar{
			ServiceID: row.ServiceID,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		}
		cal.Weekday[gtfs.Sunday] = row.Sunday == 1
		cal.Weekday[gtfs.Monday] = row.Monday == 1
		cal.Weekday[gtfs.Tuesday] = row.Tuesday == 1
		cal.Weekday[gtfs.Wednesday] = row.Wednesday == 1
		cal.Weekday[gtfs.Thursday] = row.Thursday == 1
		cal.Weekday[gtfs.Friday] = row.Friday == 1
		cal.Weekday[gtfs.Saturday] = row.Saturday == 1
		calendars[row.ServiceID] = cal
	}

	return calendars, nil
}

func parseCalendarDates(f *zip.File) (map[string][]gtfs.CalendarException, error) {
	exceptions := make(map[string][]gtfs.CalendarException)
	if f == nil {
		return exceptions, nil
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var rows []*calendarDateCSV
	if err := gocsv.Unmarshal(rc, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates.txt: %w", err)
	}

	for _, row := range rows {
		if row.ServiceID == "" {
			continue
		}
		kind := gtfs.ExceptionKind(row.ExceptionType)
		if kind != gtfs.Added && kind != gtfs.Deleted {
			continue
		}
		exceptions[row.ServiceID] = append(exceptions[row.ServiceID], gtfs.CalendarException{
			ServiceID: row.ServiceID,
			Date:      row.Date,
			Kind:      kind,
		})
	}

	return exceptions, nil
}
