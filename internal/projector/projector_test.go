package projector

import (
	"testing"

	"github.com/mini-rodalies-3d/delaymap/internal/delay"
	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

func intPtr(v int) *int       { return &v }
func i32Ptr(v int32) *int32   { return &v }
func f64Ptr(v float64) *float64 { return &v }

// threeStopTrip builds the fixture used throughout spec scenario 1-6:
// A@-/43260, B@43320/43325, C@43380/-.
func threeStopTrip() *gtfs.StaticTrip {
	a := &gtfs.Stop{ID: "A", Name: "A", Lat: f64Ptr(0), Lon: f64Ptr(0)}
	b := &gtfs.Stop{ID: "B", Name: "B", Lat: f64Ptr(1), Lon: f64Ptr(1)}
	c := &gtfs.Stop{ID: "C", Name: "C", Lat: f64Ptr(2), Lon: f64Ptr(2)}
	return &gtfs.StaticTrip{
		ID: "T",
		StopTimes: []gtfs.ScheduledStopTime{
			{Stop: a, DepartureSeconds: intPtr(43260)},
			{Stop: b, ArrivalSeconds: intPtr(43320), DepartureSeconds: intPtr(43325)},
			{Stop: c, ArrivalSeconds: intPtr(43380)},
		},
	}
}

func TestProjectNotYetDeparted(t *testing.T) {
	snap := Project(threeStopTrip(), nil, 43190)
	if snap.StopIndex != 0 || !snap.IsStopped {
		t.Fatalf("got stopIndex=%d isStopped=%v, want 0/true", snap.StopIndex, snap.IsStopped)
	}
	if snap.EstimatedLat != 0 || snap.EstimatedLon != 0 {
		t.Fatalf("want position at A (0,0), got (%v,%v)", snap.EstimatedLat, snap.EstimatedLon)
	}
}

func TestProjectBetweenAAndB(t *testing.T) {
	snap := Project(threeStopTrip(), nil, 43290)
	if snap.StopIndex != 1 || snap.IsStopped {
		t.Fatalf("got stopIndex=%d isStopped=%v, want 1/false", snap.StopIndex, snap.IsStopped)
	}
	if snap.EstimatedLat != 0.5 || snap.EstimatedLon != 0.5 {
		t.Fatalf("want midpoint (0.5,0.5), got (%v,%v)", snap.EstimatedLat, snap.EstimatedLon)
	}
}

func TestProjectDwellingAtB(t *testing.T) {
	snap := Project(threeStopTrip(), nil, 43322)
	if snap.StopIndex != 1 || !snap.IsStopped {
		t.Fatalf("got stopIndex=%d isStopped=%v, want 1/true", snap.StopIndex, snap.IsStopped)
	}
	if snap.EstimatedLat != 1 || snap.EstimatedLon != 1 {
		t.Fatalf("want B's coordinates (1,1), got (%v,%v)", snap.EstimatedLat, snap.EstimatedLon)
	}
}

func TestProjectTerminated(t *testing.T) {
	snap := Project(threeStopTrip(), nil, 43500)
	if snap.StopIndex != 2 || !snap.IsStopped {
		t.Fatalf("got stopIndex=%d isStopped=%v, want 2/true", snap.StopIndex, snap.IsStopped)
	}
	if snap.EstimatedLat != 2 || snap.EstimatedLon != 2 {
		t.Fatalf("want C's coordinates (2,2), got (%v,%v)", snap.EstimatedLat, snap.EstimatedLon)
	}
}

func TestProjectDelayPropagatesForward(t *testing.T) {
	idx := delay.Index{
		"T": {
			"B": delay.Delay{ArrivalDelaySeconds: i32Ptr(60), DepartureDelaySeconds: i32Ptr(60)},
		},
	}
	snap := Project(threeStopTrip(), idx, 43280)

	if snap.StopIndex != 1 || snap.IsStopped {
		t.Fatalf("got stopIndex=%d isStopped=%v, want 1/false", snap.StopIndex, snap.IsStopped)
	}

	a, b, c := snap.Stops[0], snap.Stops[1], snap.Stops[2]
	if a.ArrivalDelay != nil {
		t.Fatalf("A's arrivalDelay should stay nil, got %v", *a.ArrivalDelay)
	}
	if a.DepartureDelay == nil || *a.DepartureDelay != 0 {
		t.Fatalf("A's departureDelay should default to 0")
	}
	if b.ArrivalDelay == nil || *b.ArrivalDelay != 60 || b.DepartureDelay == nil || *b.DepartureDelay != 60 {
		t.Fatalf("B should carry (+60,+60), got (%v,%v)", b.ArrivalDelay, b.DepartureDelay)
	}
	if c.ArrivalDelay == nil || *c.ArrivalDelay != 60 {
		t.Fatalf("C's arrivalDelay should carry forward as +60")
	}
	if c.DepartureDelay != nil {
		t.Fatalf("C's departureDelay must stay nil, it is the last stop")
	}
}

func TestProjectPartialPatch(t *testing.T) {
	idx := delay.Index{
		"T": {
			"B": delay.Delay{ArrivalDelaySeconds: i32Ptr(2), DepartureDelaySeconds: i32Ptr(1)},
			"C": delay.Delay{ArrivalDelaySeconds: i32Ptr(1)},
		},
	}
	snap := Project(threeStopTrip(), idx, 43190)

	a, b, c := snap.Stops[0], snap.Stops[1], snap.Stops[2]
	if a.ArrivalDelay != nil || a.DepartureDelay == nil || *a.DepartureDelay != 0 {
		t.Fatalf("A wants (nil,0), got (%v,%v)", a.ArrivalDelay, a.DepartureDelay)
	}
	if b.ArrivalDelay == nil || *b.ArrivalDelay != 2 || b.DepartureDelay == nil || *b.DepartureDelay != 1 {
		t.Fatalf("B wants (2,1), got (%v,%v)", b.ArrivalDelay, b.DepartureDelay)
	}
	if c.ArrivalDelay == nil || *c.ArrivalDelay != 1 {
		t.Fatalf("C's arrivalDelay wants 1")
	}
	if c.DepartureDelay != nil {
		t.Fatalf("C's departureDelay must stay nil even though B's +1 departure patch exists")
	}
}

func TestProjectInterpolationApproachesEndpoints(t *testing.T) {
	// Just after B's departure, the interpolated fraction should be close
	// to zero - near B, not near C.
	justAfter := Project(threeStopTrip(), nil, 43326)
	if justAfter.EstimatedLat >= 1.1 {
		t.Fatalf("want position near B just after departure, got lat=%v", justAfter.EstimatedLat)
	}

	// Just before C's arrival, the fraction should be close to one - near C.
	justBefore := Project(threeStopTrip(), nil, 43379)
	if justBefore.EstimatedLat <= 1.9 {
		t.Fatalf("want position near C just before arrival, got lat=%v", justBefore.EstimatedLat)
	}
}
