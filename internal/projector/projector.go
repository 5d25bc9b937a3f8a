package projector

import (
	"math"

	"github.com/mini-rodalies-3d/delaymap/internal/delay"
	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

const maxTimestamp = math.MaxInt64

// Project builds the TrainSnapshot for one trip against idx (which may be
// nil - an empty or absent delay index just means every stop reports its
// scheduled time) at the given local seconds-since-midnight now.
//
// The running delay starts at (nil, 0): the first stop legitimately has no
// arrival delay, but a trip that has not been patched at all departs its
// first stop on schedule.
func Project(trip *gtfs.StaticTrip, idx delay.Index, now int) TrainSnapshot {
	n := len(trip.StopTimes)
	snap := TrainSnapshot{
		ID:       trip.ID,
		Headsign: trip.Headsign,
		Stops:    make([]StopSnapshot, 0, n),
	}

	var currArrival *int32
	currDeparture := zero()

	var prevDeparture int64 = maxTimestamp
	var prevLat, prevLon float64

	for i, st := range trip.StopTimes {
		if idx != nil {
			if patch, ok := idx.Get(trip.ID, st.Stop.ID); ok {
				if patch.ArrivalDelaySeconds != nil {
					currArrival = patch.ArrivalDelaySeconds
				}
				if patch.DepartureDelaySeconds != nil {
					currDeparture = patch.DepartureDelaySeconds
				}
			}
		}

		if i > 0 && currArrival == nil {
			currArrival = zero()
		}
		if i == n-1 {
			currDeparture = nil
		}

		lat, lon := stopLatLon(st.Stop)

		stopSnap := StopSnapshot{
			StopID:         st.Stop.ID,
			Name:           st.Stop.Name,
			Lat:            st.Stop.Lat,
			Lon:            st.Stop.Lon,
			ArrivalDelay:   currArrival,
			DepartureDelay: currDeparture,
		}
		if st.ArrivalSeconds != nil {
			ts := int64(*st.ArrivalSeconds)
			stopSnap.ArrivalTimestamp = &ts
		}
		if st.DepartureSeconds != nil {
			ts := int64(*st.DepartureSeconds)
			stopSnap.DepartureTimestamp = &ts
		}

		var actualArrival int64 = 0
		if st.ArrivalSeconds != nil && currArrival != nil {
			actualArrival = int64(*st.ArrivalSeconds) + int64(*currArrival)
		}
		var actualDeparture int64 = maxTimestamp
		if st.DepartureSeconds != nil && currDeparture != nil {
			actualDeparture = int64(*st.DepartureSeconds) + int64(*currDeparture)
		}

		s := int64(now)

		// Later iterations are allowed to overwrite stop_index/is_stopped/
		// position set by an earlier one - rule 3 firing at the last stop
		// must win over a stale rule 1/2 from a stop already passed.
		switch {
		case actualDeparture > s && (i == 0 || actualArrival < s):
			snap.StopIndex = i
			snap.IsStopped = true
			snap.EstimatedLat, snap.EstimatedLon = lat, lon
		case actualArrival > s && prevDeparture < s:
			snap.StopIndex = i
			snap.IsStopped = false
			p := float64(s-prevDeparture) / float64(actualArrival-prevDeparture)
			snap.EstimatedLat = p*lat + (1-p)*prevLat
			snap.EstimatedLon = p*lon + (1-p)*prevLon
		case i == n-1 && actualArrival < s:
			snap.StopIndex = n - 1
			snap.IsStopped = true
			snap.EstimatedLat, snap.EstimatedLon = lat, lon
		}

		prevDeparture = actualDeparture
		prevLat, prevLon = lat, lon

		snap.Stops = append(snap.Stops, stopSnap)
	}

	return snap
}

func zero() *int32 {
	v := int32(0)
	return &v
}

func stopLatLon(stop *gtfs.Stop) (float64, float64) {
	var lat, lon float64
	if stop.Lat != nil {
		lat = *stop.Lat
	}
	if stop.Lon != nil {
		lon = *stop.Lon
	}
	return lat, lon
}
