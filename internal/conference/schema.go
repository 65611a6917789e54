package conference

import "strings"

// InstanceID identifies the single conference occurrence the scoped tables
// belong to.
const InstanceID = "76186000006678002"

// Table names in the source dataset.
const (
	tableEvents                   = "events"
	tableEventTranslations        = "eventTranslations"
	tablePortals                  = "portals"
	tableEventSocialHandles       = "eventSocialHandles"
	tableHotels                   = "hotels"
	tableHotelTranslations        = "hotelTranslations"
	tableTracks                   = "tracks"
	tableTrackTranslations        = "trackTranslations"
	tableSessionVenues            = "sessionVenues"
	tableSessionVenueTranslations = "sessionVenueTranslations"
	tableVenues                   = "venues"
	tableVenueTranslations        = "venueTranslations"
	tableSpeakers                 = "speakers"
	tableUserProfiles             = "userProfiles"
	tableSessions                 = "sessions"
	tableSessionTranslations      = "sessionTranslations"
	tableSessionSpeakers          = "sessionSpeakers"
)

// Placeholders rendered for unresolved joins.
const (
	unknown  = "Unknown"
	untitled = "Untitled"
)

// Day is a conference weekday.
type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
)

// Days lists the conference days in order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// agendaByDay maps each day to its agenda record id.
var agendaByDay = map[Day]string{
	Monday:    "76186000008378878",
	Tuesday:   "76186000008378881",
	Wednesday: "76186000008389020",
	Thursday:  "76186000008389143",
	Friday:    "76186000008389405",
}

// AgendaID returns the agenda identifier for d.
func AgendaID(d Day) (string, bool) {
	id, ok := agendaByDay[d]
	return id, ok
}

// ParseDay accepts a day name in any case.
func ParseDay(s string) (Day, bool) {
	d := Day(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := agendaByDay[d]
	return d, ok
}

// Durations lists the session lengths, in minutes, that appear in the
// schedule and may be filtered on.
var Durations = []int{30, 60, 90, 115, 120, 125, 145, 180, 210, 235, 240, 265, 295}

// ValidDuration reports whether minutes is one of Durations.
func ValidDuration(minutes int) bool {
	for _, d := range Durations {
		if d == minutes {
			return true
		}
	}
	return false
}
