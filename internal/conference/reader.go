package conference

import "github.com/JonMunkholm/codemash/internal/store"

// Reader is the query facade over a loaded dataset. Every call rescans the
// root table; results keep table order. Safe for concurrent use because the
// underlying store is immutable.
type Reader struct {
	data store.Resolver
}

// NewReader returns a Reader over data.
func NewReader(data store.Resolver) *Reader {
	return &Reader{data: data}
}

// Event returns the conference event, or nil when the dataset has none.
func (r *Reader) Event() *Event {
	for _, rec := range r.data.Table(tableEvents) {
		if !BelongsToInstance(rec, eventScopeField) {
			continue
		}
		ev := mapEvent(r.data, rec)
		return &ev
	}
	return nil
}

// Hotels lists the partner hotels. The conference resort itself is not
// included.
func (r *Reader) Hotels() []Hotel {
	hotels := make([]Hotel, 0)
	for _, rec := range r.data.Table(tableHotels) {
		if inScope(rec) {
			hotels = append(hotels, mapHotel(r.data, rec))
		}
	}
	return hotels
}

// Tracks lists the session tracks.
func (r *Reader) Tracks() []Track {
	tracks := make([]Track, 0)
	for _, rec := range r.data.Table(tableTracks) {
		if inScope(rec) {
			tracks = append(tracks, mapTrack(r.data, rec))
		}
	}
	return tracks
}

// Rooms lists the display names of the session rooms.
func (r *Reader) Rooms() []string {
	rooms := make([]string, 0)
	for _, rec := range r.data.Table(tableSessionVenues) {
		if !inScope(rec) {
			continue
		}
		name := r.data.Lookup(tableSessionVenueTranslations, rec["id"], "sessionVenue").Str("name", unknown)
		rooms = append(rooms, name)
	}
	return rooms
}

// Venue returns the conference site, or nil when the dataset has none.
func (r *Reader) Venue() *Venue {
	for _, rec := range r.data.Table(tableVenues) {
		if !inScope(rec) {
			continue
		}
		v := mapVenue(r.data, rec)
		return &v
	}
	return nil
}

// Speakers lists speakers matching f with their sessions.
func (r *Reader) Speakers(f SpeakerFilter) []Speaker {
	speakers := make([]Speaker, 0)
	for _, rec := range r.data.Table(tableSpeakers) {
		if !inScope(rec) {
			continue
		}
		if !f.IsEmpty() && !MatchSpeaker(r.data, rec, f) {
			continue
		}
		speakers = append(speakers, MapSpeaker(r.data, rec))
	}
	return speakers
}

// Sessions lists sessions matching f. Invalid criteria reject the whole
// call with an *ArgumentError before anything is scanned.
//
// A session must be in scope itself and be held in a room that is in scope.
func (r *Reader) Sessions(f SessionFilter) ([]Session, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0)
	for _, rec := range r.data.Table(tableSessions) {
		if !inScope(rec) || !MatchSession(r.data, rec, f) {
			continue
		}
		sessions = append(sessions, MapSession(r.data, rec))
	}
	return sessions, nil
}
