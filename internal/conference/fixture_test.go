package conference

import (
	"encoding/json"

	"github.com/JonMunkholm/codemash/internal/store"
)

const (
	trackName    = "Track 1"
	venueName    = "Venue 1"
	sessionTitle = "Session 1"
	otherEvent   = "not_the_id"
)

// sampleTables is a minimal dataset with one of everything, all in scope.
func sampleTables() map[string][]store.Record {
	return map[string][]store.Record{
		tableEvents: {{
			"id":                InstanceID,
			"startDate":         "2026-01-12",
			"endDate":           "2026-01-16",
			"timezone":          "America/New_York",
			"portal":            "811345730",
			"eventSocialHandle": "76186000006678009",
		}},
		tableEventTranslations: {{
			"event":       InstanceID,
			"name":        "CodeMash 2026",
			"description": "Desc",
			"summary":     "Summary",
		}},
		tablePortals: {{"id": "811345730", "domain": "events.codemash.org"}},
		tableEventSocialHandles: {{
			"id":        "76186000006678009",
			"twitter":   "@codemash",
			"facebook":  "codemashfb",
			"linkedIn":  "codemashli",
			"youtube":   "codemashyt",
			"instagram": "codemashig",
			"website":   "https://codemash.org",
		}},
		tableHotels:            {{"id": "h1", "event": InstanceID, "websiteUrl": "https://hotel.com"}},
		tableHotelTranslations: {{"hotel": "h1", "name": "Hotel 1", "address": "123 St"}},
		tableTracks:            {{"id": "t1", "event": InstanceID}},
		tableTrackTranslations: {{"track": "t1", "title": trackName}},
		tableSessionVenues:     {{"id": "v1", "event": InstanceID}},
		tableSessionVenueTranslations: {
			{"sessionVenue": "v1", "name": venueName},
		},
		tableVenues: {{
			"id":        "v1",
			"event":     InstanceID,
			"latitude":  json.Number("1.0"),
			"longitude": json.Number("2.0"),
			"zipcode":   "12345",
			"country":   "US",
		}},
		tableVenueTranslations: {{
			"venue":      "v1",
			"name":       venueName,
			"street":     "1 Main",
			"townOrCity": "City",
			"state":      "ST",
		}},
		tableSpeakers: {{"id": "s1", "event": InstanceID, "userProfile": "u1"}},
		tableUserProfiles: {{
			"id":          "u1",
			"name":        "Alice",
			"lastName":    "Smith",
			"company":     "ACME",
			"designation": "Engineer",
			"twitter":     "alice",
			"linkedin":    "alice-li",
			"description": "Bio",
		}},
		tableSessionSpeakers: {{"speaker": "s1", "event": InstanceID, "session": "sess1"}},
		tableSessions: {{
			"id":          "sess1",
			"event":       InstanceID,
			"sessionType": "Talk",
			"startTime":   "0900",
			"duration":    "60",
			"track":       "t1",
			"venue":       "v1",
			"agenda":      agendaByDay[Monday],
		}},
		tableSessionTranslations: {
			{"session": "sess1", "title": sessionTitle, "description": "Session Desc"},
		},
	}
}

// with appends records to a copy of the sample tables.
func with(extra map[string][]store.Record) map[string][]store.Record {
	tables := sampleTables()
	for name, recs := range extra {
		tables[name] = append(tables[name], recs...)
	}
	return tables
}

// readers returns a Reader per resolver implementation over tables.
func readers(tables map[string][]store.Record) map[string]*Reader {
	s := store.New(tables)
	return map[string]*Reader{
		"scan":  NewReader(s),
		"index": NewReader(store.NewIndex(s)),
	}
}

func sampleReader() *Reader {
	return NewReader(store.New(sampleTables()))
}

func makeSession(overrides store.Record) store.Record {
	base := store.Record{
		"id":        "sess1",
		"event":     InstanceID,
		"agenda":    agendaByDay[Monday],
		"startTime": "0900",
		"duration":  "60",
		"track":     "t1",
		"venue":     "v1",
	}
	for k, v := range overrides {
		base[k] = v
	}
	return base
}

func ptr(s string) *string {
	return &s
}
