package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/calendar"
	"github.com/mini-rodalies-3d/delaymap/internal/delay"
	"github.com/mini-rodalies-3d/delaymap/internal/projector"
	"github.com/mini-rodalies-3d/delaymap/internal/schedulestore"
	"github.com/mini-rodalies-3d/delaymap/internal/telemetry"
)

type trainsHandler struct {
	store      *schedulestore.Store
	delayFetch *delay.Fetcher
	reporter   telemetry.Reporter
	location   *time.Location
}

// ServeHTTP answers GET /trains: it fuses the current schedule, a freshly
// fetched delay index, and now into one TrainSnapshot per active trip.
// Upstream failures degrade to an empty delay index rather than an error
// response, per §7.
func (h *trainsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	idx, err := h.delayFetch.Build(ctx)
	if err != nil {
		h.reporter.ReportError(err, map[string]string{"kind": "UpstreamFetch", "endpoint": "/trains"})
		idx = delay.Index{}
	}

	schedule := h.store.Get()
	now := time.Now().In(h.location)

	snapshots := make([]projector.TrainSnapshot, 0, len(schedule.Trips))
	for i := range schedule.Trips {
		trip := &schedule.Trips[i]
		if !calendar.IsActiveNow(schedule, trip, now) {
			continue
		}
		seconds := now.Hour()*3600 + now.Minute()*60 + now.Second()
		snapshots = append(snapshots, projector.Project(trip, idx, seconds))
	}

	writeJSON(w, snapshots)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
