// Package works parses the line-oriented incident/works feed and resolves
// affected stations against the static schedule.
package works

// URL is one link attached to a works record.
type URL struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// ImpactedStation is the station a works record refers to, resolved
// against the static schedule so a client can place the incident on the
// map without a second lookup.
type ImpactedStation struct {
	StopID string   `json:"stopId"`
	Name   string   `json:"name"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
}

// Record is one published incident or planned-works notice. Fields follow
// the defaults of the upstream feed's own "empty" record when a key is
// never supplied: an id and name of "Unknown id"/"Unknown name" rather than
// the zero string, so a partially-populated record still reads sensibly to
// a client.
type Record struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Message         string           `json:"message"`
	ImpactedStation *ImpactedStation `json:"impactedStation"`
	StartDate       string           `json:"startDate"`
	StartTime       string           `json:"startTime"`
	EndDate         string           `json:"endDate"`
	EndTime         string           `json:"endTime"`
	URLs            []URL            `json:"urls"`
}

func emptyRecord() Record {
	return Record{
		ID:        "Unknown id",
		Name:      "Unknown name",
		Message:   "No message given",
		StartDate: "Unknown start date",
		StartTime: "Unknown start time",
		EndDate:   "Unknown end date",
		EndTime:   "Unknown end time",
	}
}
