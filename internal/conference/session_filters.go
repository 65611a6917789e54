package conference

import "github.com/JonMunkholm/codemash/internal/store"

// SessionFilter holds the optional criteria of a sessions query. Zero values
// mean "no restriction".
type SessionFilter struct {
	TrackName      string
	RoomName       string
	SpeakerName    string
	Day            Day
	StartTimeRange string
	EndTimeRange   string
	Duration       int
}

// IsEmpty reports whether no criterion is set.
func (f SessionFilter) IsEmpty() bool {
	return f == SessionFilter{}
}

// SessionPredicate decides whether one session passes one criterion.
type SessionPredicate func(r store.Resolver, session store.Record, f SessionFilter) bool

// sessionPipeline is ANDed per session; any false drops it. The room check
// always runs because it also rejects sessions held in out-of-scope rooms.
var sessionPipeline = []SessionPredicate{
	sessionOnDay,
	sessionInTimeRange,
	sessionHasDuration,
	sessionInRoom,
	sessionOnTrack,
	sessionWithSpeaker,
}

// MatchSession runs the full session pipeline.
func MatchSession(r store.Resolver, session store.Record, f SessionFilter) bool {
	for _, pred := range sessionPipeline {
		if !pred(r, session, f) {
			return false
		}
	}
	return true
}

func sessionOnDay(_ store.Resolver, session store.Record, f SessionFilter) bool {
	if f.Day == "" {
		return true
	}
	agenda, ok := AgendaID(f.Day)
	if !ok {
		return false
	}
	return session.Equals("agenda", agenda)
}

// sessionInTimeRange compares fixed-width HHMM strings, where lexicographic
// order is chronological order within a day.
func sessionInTimeRange(_ store.Resolver, session store.Record, f SessionFilter) bool {
	if f.StartTimeRange == "" || f.EndTimeRange == "" {
		return true
	}
	start := session.Str("startTime", "")
	if start == "" {
		return true
	}
	return f.StartTimeRange <= start && start <= f.EndTimeRange
}

func sessionHasDuration(_ store.Resolver, session store.Record, f SessionFilter) bool {
	if f.Duration == 0 {
		return true
	}
	return session.Int("duration") == f.Duration
}

func sessionInRoom(r store.Resolver, session store.Record, f SessionFilter) bool {
	if !inScope(sessionVenue(r, session)) {
		return false
	}
	if f.RoomName == "" {
		return true
	}
	return roomName(r, session, "") == f.RoomName
}

func sessionOnTrack(r store.Resolver, session store.Record, f SessionFilter) bool {
	if f.TrackName == "" {
		return true
	}
	return trackTitle(r, session["track"], "") == f.TrackName
}

func sessionWithSpeaker(r store.Resolver, session store.Record, f SessionFilter) bool {
	if f.SpeakerName == "" {
		return true
	}
	for _, sp := range sessionSpeakers(r, session) {
		if containsFold(fullName(sp.Name, sp.LastName), f.SpeakerName) {
			return true
		}
	}
	return false
}
