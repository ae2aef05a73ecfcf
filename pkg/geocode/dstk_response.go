package geocode

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// dstkRecord is one upstream record. Both DSTK endpoints answer with an object
// keyed by the submitted query whose value is the record, or null on a miss.
type dstkRecord map[string]any

// parseDSTKResponse decodes body and maps its record. A nil Location with a
// nil error means the upstream answered without a usable record.
func parseDSTKResponse(body, query string) (*Location, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var top map[string]any
	if err := dec.Decode(&top); err != nil {
		return nil, eris.Wrap(err, "geocode: dstk parse response")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, eris.New("geocode: dstk parse response: trailing data after JSON value")
	}

	rec := selectDSTKRecord(top, query)
	if rec == nil {
		return nil, nil
	}
	loc := rec.toLocation()
	if len(loc.Fields()) == 0 {
		return nil, nil
	}
	return &loc, nil
}

// dstkRecordKeys are the upstream keys the mapping reads.
var dstkRecordKeys = []string{
	"latitude", "longitude", "location",
	"locality", "city", "region", "state", "county",
	"postal_code", "zipcode", "country_name", "country_code",
	"timezone", "time_zone",
}

// selectDSTKRecord picks the record for query out of the top-level object.
// A flat object holding any mapped key is its own record.
func selectDSTKRecord(top map[string]any, query string) dstkRecord {
	if len(top) == 0 {
		return nil
	}
	for _, k := range dstkRecordKeys {
		if _, ok := top[k]; ok {
			return dstkRecord(top)
		}
	}
	if rec, ok := top[query].(map[string]any); ok {
		return dstkRecord(rec)
	}

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if rec, ok := top[k].(map[string]any); ok {
			return dstkRecord(rec)
		}
	}
	return nil
}

func (r dstkRecord) toLocation() Location {
	loc := Location{
		Latitude:    r.number("latitude"),
		Longitude:   r.number("longitude"),
		City:        r.text("locality", "city"),
		Region:      r.text("region", "state"),
		County:      r.text("county"),
		Zipcode:     r.text("postal_code", "zipcode"),
		Country:     r.text("country_name"),
		CountryCode: r.text("country_code"),
		Timezone:    r.text("timezone", "time_zone"),
	}
	if nested, ok := r["location"].(map[string]any); ok {
		inner := dstkRecord(nested)
		if loc.Latitude == nil {
			loc.Latitude = inner.number("latitude", "lat")
		}
		if loc.Longitude == nil {
			loc.Longitude = inner.number("longitude", "lng", "lon")
		}
	}
	return loc
}

// text returns the first non-empty value among keys.
func (r dstkRecord) text(keys ...string) *string {
	for _, k := range keys {
		switch v := r[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return &s
			}
		case json.Number:
			s := v.String()
			return &s
		}
	}
	return nil
}

// number returns the first numeric value among keys. Numeric strings count.
func (r dstkRecord) number(keys ...string) *float64 {
	for _, k := range keys {
		switch v := r[k].(type) {
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return &f
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}
