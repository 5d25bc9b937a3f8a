package works

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
)

// StationLookup resolves an external station id to a full station in the
// given language, the same contract Schedule.LookupTranslated satisfies.
type StationLookup func(stopID, language string) (station gtfs.TranslatedStop, ok bool)

// ParseError is returned when the feed's structure does not match what the
// parser expects. It carries the offending line so the caller can log it
// without re-reading the stream.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid first line %q", e.Line)
}

// Parser consumes the line-oriented works feed one record at a time. It is
// not safe for concurrent use by multiple goroutines.
type Parser struct {
	scanner  *bufio.Scanner
	lookup   StationLookup
	language string
	started  bool
}

// NewParser wraps r, resolving impactstation_extId references through
// lookup in the given language.
func NewParser(r io.Reader, lookup StationLookup, language string) *Parser {
	return &Parser{
		scanner:  bufio.NewScanner(r),
		lookup:   lookup,
		language: language,
	}
}

func (p *Parser) nextLine() (string, bool) {
	if p.scanner.Scan() {
		return p.scanner.Text(), true
	}
	return "", false
}

// ParseAll drains the feed into a slice, stopping at the first structural
// error or end of stream.
func ParseAll(r io.Reader, lookup StationLookup, language string) ([]Record, error) {
	p := NewParser(r, lookup, language)
	var records []Record
	for {
		rec, err := p.ParseNext()
		if err != nil {
			return records, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, *rec)
	}
}

// ParseNext consumes lines until one record is assembled, the stream
// terminates (nil, nil), or a structural error occurs.
func (p *Parser) ParseNext() (*Record, error) {
	line, ok := p.skipWrapperAndFindStart()
	if !ok {
		return nil, nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed != "{" && trimmed != ",{" {
		return nil, &ParseError{Line: line}
	}

	rec := emptyRecord()

	for {
		line, ok := p.nextLine()
		if !ok {
			return nil, nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "}" || trimmed == "}," {
			return &rec, nil
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		switch key {
		case "id":
			rec.ID = value
		case "caption":
			rec.Name = value
		case "message":
			rec.Message = value
		case "pubstartdate_0":
			rec.StartDate = value
		case "pubstarttime_0":
			rec.StartTime = value
		case "pubenddate_0":
			rec.EndDate = value
		case "pubendtime_0":
			rec.EndTime = value
		case "impactstation_extId":
			if p.lookup != nil {
				if station, found := p.lookup(value, p.language); found {
					rec.ImpactedStation = &ImpactedStation{
						StopID: station.StopID,
						Name:   station.Name,
						Lat:    station.Lat,
						Lon:    station.Lon,
					}
				}
			}
		case "urllist":
			urls, err := p.parseURLList()
			if err != nil {
				return nil, err
			}
			rec.URLs = urls
		}
	}
}

// skipWrapperAndFindStart skips an optional himmessages=[ feed wrapper and
// returns the first line that should begin a record. Returns ok=false at
// end of stream or at the feed's closing ]/]; line.
func (p *Parser) skipWrapperAndFindStart() (string, bool) {
	for {
		line, ok := p.nextLine()
		if !ok {
			return "", false
		}
		trimmed := strings.TrimSpace(line)
		if !p.started {
			p.started = true
			if trimmed == "himmessages=[" || trimmed == `"himmessages"=[` {
				continue
			}
		}
		if trimmed == "]" || trimmed == "];" {
			return "", false
		}
		if trimmed == "" {
			continue
		}
		return line, true
	}
}

func (p *Parser) parseURLList() ([]URL, error) {
	var urls []URL
	var current URL
	open := false

	for {
		line, ok := p.nextLine()
		if !ok {
			return urls, nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "]" {
			return urls, nil
		}
		if strings.HasSuffix(trimmed, "{") {
			current = URL{URL: "#", Label: "Link"}
			open = true
			continue
		}
		if strings.HasPrefix(trimmed, "}") {
			if open {
				urls = append(urls, current)
				open = false
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		switch key {
		case "url":
			current.URL = value
		case "label":
			current.Label = value
		}
	}
}

// splitKeyValue splits a data line on its first colon and strips a leading
// comma, a leading quote, and a trailing quote from both halves, in that
// order.
func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strip(line[:idx])
	value = strip(line[idx+1:])
	return key, value, true
}

func strip(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ",")
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, ",")
	return s
}
