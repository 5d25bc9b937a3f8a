// Package projector fuses a static trip, a delay index, and the current
// time into a live per-trip snapshot (§4.2, §4.6 of the train-position and
// delay-propagation design).
package projector

// StopSnapshot is one stop's view inside a TrainSnapshot: identity,
// coordinates, the raw scheduled time, and delay after propagation.
// ArrivalTimestamp/DepartureTimestamp carry the scheduled seconds from
// stop_times.txt, not a delay-adjusted "actual" time - a client combines
// them with ArrivalDelay/DepartureDelay itself. ArrivalDelay is nil only
// at index 0; DepartureDelay is nil only at the last index.
type StopSnapshot struct {
	StopID             string   `json:"stopId"`
	Name               string   `json:"name"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	ArrivalDelay       *int32   `json:"arrivalDelay"`
	ArrivalTimestamp   *int64   `json:"arrivalTimestamp"`
	DepartureDelay     *int32   `json:"departureDelay"`
	DepartureTimestamp *int64   `json:"departureTimestamp"`
}

// TrainSnapshot is the product the engine serves: where one trip currently
// is, and the delay-annotated stop list it is running against.
type TrainSnapshot struct {
	ID           string         `json:"id"`
	Headsign     string         `json:"headsign"`
	Stops        []StopSnapshot `json:"stops"`
	StopIndex    int            `json:"stopIndex"`
	IsStopped    bool           `json:"isStopped"`
	EstimatedLat float64        `json:"estimatedLat"`
	EstimatedLon float64        `json:"estimatedLon"`
}
