package gtfsload

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

func parseStops(f *zip.File) (map[string]*gtfs.Stop, error) {
	stops := make(map[string]*gtfs.Stop)
	if f == nil {
		return stops, nil
	}

	reader, closer, err := openCSV(f)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	idx := makeIndex(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		id := getField(record, idx, "stop_id")
		if id == "" {
			continue
		}
		stop := &gtfs.Stop{
			ID:   id,
			Name: getField(record, idx, "stop_name"),
		}
		if lat, err := strconv.ParseFloat(getField(record, idx, "stop_lat"), 64); err == nil {
			stop.Lat = &lat
		}
		if lon, err := strconv.ParseFloat(getField(record, idx, "stop_lon"), 64); err == nil {
			stop.Lon = &lon
		}
		stops[id] = stop
	}

	return stops, nil
}

func parseStopTimes(f *zip.File, stops map[string]*gtfs.Stop) (map[string][]gtfs.ScheduledStopTime, error) {
	byTrip := make(map[string][]indexedStopTime)
	if f == nil {
		return nil, nil
	}

	reader, closer, err := openCSV(f)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	idx := makeIndex(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		tripID := getField(record, idx, "trip_id")
		stopID := getField(record, idx, "stop_id")
		stop, ok := stops[stopID]
		if !ok || tripID == "" {
			continue
		}

		seq, _ := strconv.Atoi(getField(record, idx, "stop_sequence"))

		st := gtfs.ScheduledStopTime{Stop: stop}
		if secs, ok := parseGTFSTime(getField(record, idx, "arrival_time")); ok {
			st.ArrivalSeconds = &secs
		}
		if secs, ok := parseGTFSTime(getField(record, idx, "departure_time")); ok {
			st.DepartureSeconds = &secs
		}

		byTrip[tripID] = append(byTrip[tripID], indexedStopTime{seq: seq, stopTime: st})
	}

	result := make(map[string][]gtfs.ScheduledStopTime, len(byTrip))
	for tripID, entries := range byTrip {
		sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
		ordered := make([]gtfs.ScheduledStopTime, len(entries))
		for i, e := range entries {
			ordered[i] = e.stopTime
		}
		result[tripID] = ordered
	}
	return result, nil
}

type indexedStopTime struct {
	seq      int
	stopTime gtfs.ScheduledStopTime
}

func parseTrips(f *zip.File, stopTimesByTrip map[string][]gtfs.ScheduledStopTime) ([]gtfs.StaticTrip, error) {
	var trips []gtfs.StaticTrip
	if f == nil {
		return trips, nil
	}

	reader, closer, err := openCSV(f)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	idx := makeIndex(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		tripID := getField(record, idx, "trip_id")
		stopTimes := stopTimesByTrip[tripID]
		if tripID == "" || len(stopTimes) == 0 {
			continue
		}

		trips = append(trips, gtfs.StaticTrip{
			ID:        tripID,
			Headsign:  getField(record, idx, "trip_headsign"),
			ServiceID: getField(record, idx, "service_id"),
			StopTimes: stopTimes,
		})
	}

	return trips, nil
}

// parseGTFSTime converts an HH:MM:SS field (hours may exceed 23 for trips
// spilling past midnight) into seconds since the service day's midnight.
func parseGTFSTime(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	s, errS := strconv.Atoi(parts[2])
	if errH != nil || errM != nil || errS != nil {
		return 0, false
	}
	return h*3600 + m*60 + s, true
}

func openCSV(f *zip.File) (*csv.Reader, io.ReadCloser, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	reader := csv.NewReader(rc)
	return reader, rc, nil
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func getField(record []string, idx map[string]int, field string) string {
	if i, ok := idx[field]; ok && i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}
