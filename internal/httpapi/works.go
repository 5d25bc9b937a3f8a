package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
	"github.com/mini-rodalies-3d/delaymap/internal/schedulestore"
	"github.com/mini-rodalies-3d/delaymap/internal/telemetry"
	"github.com/mini-rodalies-3d/delaymap/internal/works"
)

type worksHandler struct {
	store        *schedulestore.Store
	worksFeedURL string
	timeout      time.Duration
	reporter     telemetry.Reporter
}

// ServeHTTP answers GET /works: it fetches and parses the incident feed,
// resolving impacted stations against the current schedule. A fetch failure
// degrades to an empty list, per §7; a parse failure is reported and the
// records completed before it are returned.
func (h *worksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	language := languageOf(r)
	schedule := h.store.Get()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	url := fmt.Sprintf("%s_%s.json", h.worksFeedURL, worksFeedSuffix(language))

	body, err := fetchWorksFeed(ctx, url, h.timeout)
	if err != nil {
		h.reporter.ReportError(err, map[string]string{"kind": "UpstreamFetch", "endpoint": "/works"})
		writeJSON(w, []works.Record{})
		return
	}
	defer body.Close()

	lookup := func(stopID, lang string) (gtfs.TranslatedStop, bool) {
		return schedule.LookupTranslated(stopID, lang)
	}

	records, err := works.ParseAll(body, lookup, language)
	if err != nil {
		h.reporter.ReportError(err, map[string]string{"kind": "WorksParse", "endpoint": "/works"})
	}
	if records == nil {
		records = []works.Record{}
	}

	writeJSON(w, records)
}
