package conference

import "github.com/JonMunkholm/codemash/internal/store"

// MapSession projects a session record with its translation, track, room
// and speakers resolved.
func MapSession(r store.Resolver, session store.Record) Session {
	translation := r.Lookup(tableSessionTranslations, session["id"], "session")
	return Session{
		Title:       translation.Str("title", untitled),
		Description: translation.Str("description", ""),
		Type:        session.Str("sessionType", ""),
		StartTime:   session.NullableStr("startTime"),
		Duration:    session.Int("duration"),
		Track:       trackTitle(r, session["track"], unknown),
		Venue:       roomName(r, session, unknown),
		Speakers:    sessionSpeakers(r, session),
	}
}

// mapSpeakerSession is MapSession without the speaker list.
func mapSpeakerSession(r store.Resolver, session store.Record) SpeakerSession {
	translation := r.Lookup(tableSessionTranslations, session["id"], "session")
	return SpeakerSession{
		Title:       translation.Str("title", untitled),
		Description: translation.Str("description", ""),
		Type:        session.Str("sessionType", ""),
		StartTime:   session.Str("startTime", ""),
		Duration:    session.Int("duration"),
		Track:       trackTitle(r, session["track"], unknown),
		Venue:       roomName(r, session, unknown),
	}
}

// MapSpeaker projects a speaker with profile fields and every linked
// session. Optional profile fields pass through as-is, null included.
func MapSpeaker(r store.Resolver, speaker store.Record) Speaker {
	profile := r.Lookup(tableUserProfiles, speaker["userProfile"], "id")

	sessions := make([]SpeakerSession, 0)
	for _, session := range speakerSessions(r, speaker) {
		sessions = append(sessions, mapSpeakerSession(r, session))
	}

	return Speaker{
		Name:        profile.Str("name", unknown),
		LastName:    profile.Str("lastName", unknown),
		Company:     profile.NullableStr("company"),
		Designation: profile.NullableStr("designation"),
		Twitter:     profile.NullableStr("twitter"),
		LinkedIn:    profile.NullableStr("linkedin"),
		Description: profile.NullableStr("description"),
		Sessions:    sessions,
	}
}

func mapEvent(r store.Resolver, event store.Record) Event {
	translation := r.Lookup(tableEventTranslations, event["id"], "event")
	portal := r.Lookup(tablePortals, event["portal"], "id")
	socials := r.Lookup(tableEventSocialHandles, event["eventSocialHandle"], "id")

	return Event{
		Name:        translation.Str("name", unknown),
		Description: translation.Str("description", ""),
		Summary:     translation.Str("summary", ""),
		StartDate:   event.Str("startDate", ""),
		EndDate:     event.Str("endDate", ""),
		Timezone:    event.Str("timezone", ""),
		Domain:      portal.Str("domain", ""),
		Twitter:     socials.Str("twitter", ""),
		Facebook:    socials.Str("facebook", ""),
		LinkedIn:    socials.Str("linkedIn", ""),
		YouTube:     socials.Str("youtube", ""),
		Instagram:   socials.Str("instagram", ""),
		Website:     socials.Str("website", ""),
	}
}

func mapHotel(r store.Resolver, hotel store.Record) Hotel {
	translation := r.Lookup(tableHotelTranslations, hotel["id"], "hotel")
	return Hotel{
		Name:    translation.Str("name", ""),
		Address: translation.Str("address", ""),
		Website: hotel.Str("websiteUrl", ""),
	}
}

func mapTrack(r store.Resolver, track store.Record) Track {
	return Track{Name: trackTitle(r, track["id"], unknown)}
}

func mapVenue(r store.Resolver, venue store.Record) Venue {
	translation := r.Lookup(tableVenueTranslations, venue["id"], "venue")
	return Venue{
		Name:      translation.Str("name", unknown),
		Street:    translation.Str("street", ""),
		City:      translation.Str("townOrCity", ""),
		State:     translation.Str("state", ""),
		Latitude:  venue.Float("latitude"),
		Longitude: venue.Float("longitude"),
		Zipcode:   venue.NullableStr("zipcode"),
		Country:   venue.NullableStr("country"),
	}
}
