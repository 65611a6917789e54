package conference

import (
	"strings"

	"github.com/JonMunkholm/codemash/internal/store"
)

// sessionVenue resolves the room a session is held in.
func sessionVenue(r store.Resolver, session store.Record) store.Record {
	return r.Lookup(tableSessionVenues, session["venue"], "id")
}

// roomName resolves the display name of a session's room.
func roomName(r store.Resolver, session store.Record, def string) string {
	return r.Lookup(tableSessionVenueTranslations, session["venue"], "sessionVenue").Str("name", def)
}

// trackTitle resolves the display title of a track id.
func trackTitle(r store.Resolver, trackID any, def string) string {
	return r.Lookup(tableTrackTranslations, trackID, "track").Str("title", def)
}

// sessionSpeakers returns the speakers linked to session through scoped
// junction rows, in junction order.
func sessionSpeakers(r store.Resolver, session store.Record) []SessionSpeaker {
	speakers := make([]SessionSpeaker, 0)
	for _, link := range r.Table(tableSessionSpeakers) {
		if !link.Equals("session", session["id"]) || !inScope(link) {
			continue
		}
		speaker := r.Lookup(tableSpeakers, link["speaker"], "id")
		profile := r.Lookup(tableUserProfiles, speaker["userProfile"], "id")
		speakers = append(speakers, SessionSpeaker{
			Name:     profile.Str("name", ""),
			LastName: profile.Str("lastName", ""),
		})
	}
	return speakers
}

// speakerSessions returns the session records linked to speaker through
// scoped junction rows, in junction order.
func speakerSessions(r store.Resolver, speaker store.Record) []store.Record {
	var sessions []store.Record
	for _, link := range r.Table(tableSessionSpeakers) {
		if !link.Equals("speaker", speaker["id"]) || !inScope(link) {
			continue
		}
		sessions = append(sessions, r.Lookup(tableSessions, link["session"], "id"))
	}
	return sessions
}

// fullName joins first and last name the way name searches see them.
func fullName(first, last string) string {
	return first + " " + last
}

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
