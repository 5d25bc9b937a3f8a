package delay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Fetcher fetches and decodes the trip-updates feed into a DelayIndex. A
// failed fetch or decode is returned to the caller, which per §4.3 reports
// it to telemetry and proceeds with an empty Index rather than failing the
// request.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher builds a Fetcher against the given trip-updates URL, using
// timeout for each fetch, or the default upstream timeout from §5 (30s)
// when timeout is not positive.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Build fetches the feed and folds every StopTimeUpdate into an Index. If a
// stop id repeats within one trip update, the later entry wins, matching
// the feed's own order.
func (f *Fetcher) Build(ctx context.Context) (Index, error) {
	feed, err := f.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	idx := make(Index)
	for _, entity := range feed.Entity {
		tu := entity.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}
		tripID := *tu.Trip.TripId

		for _, stu := range tu.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			var d Delay
			if stu.Arrival != nil && stu.Arrival.Delay != nil {
				v := *stu.Arrival.Delay
				d.ArrivalDelaySeconds = &v
			}
			if stu.Departure != nil && stu.Departure.Delay != nil {
				v := *stu.Departure.Delay
				d.DepartureDelaySeconds = &v
			}
			idx.set(tripID, *stu.StopId, d)
		}
	}
	return idx, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context) (*gtfsrt.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build trip-updates request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trip-updates feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trip-updates feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read trip-updates response: %w", err)
	}

	feed := &gtfsrt.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("decode trip-updates protobuf: %w", err)
	}
	return feed, nil
}
