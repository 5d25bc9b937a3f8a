// Package delay builds the real-time delay index fused into train snapshots.
package delay

// Delay is the pair of optional per-stop delays produced by one real-time
// stop-time update. A nil field means "no information reported", which is
// distinct from a reported delay of zero.
type Delay struct {
	ArrivalDelaySeconds   *int32
	DepartureDelaySeconds *int32
}

// Index is a two-level map from trip id to stop id to the most recently
// observed Delay for that pair. Absence of a trip or stop means no
// real-time information was received for it.
type Index map[string]map[string]Delay

// Get returns the Delay recorded for (tripID, stopID), and whether one was
// recorded at all.
func (idx Index) Get(tripID, stopID string) (Delay, bool) {
	byStop, ok := idx[tripID]
	if !ok {
		return Delay{}, false
	}
	d, ok := byStop[stopID]
	return d, ok
}

func (idx Index) set(tripID, stopID string, d Delay) {
	byStop, ok := idx[tripID]
	if !ok {
		byStop = make(map[string]Delay)
		idx[tripID] = byStop
	}
	byStop[stopID] = d
}
