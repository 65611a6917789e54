package conference

import "github.com/JonMunkholm/codemash/internal/store"

// SpeakerFilter holds the optional criteria of a speakers query.
type SpeakerFilter struct {
	TrackName   string
	SpeakerName string
}

// IsEmpty reports whether no criterion is set.
func (f SpeakerFilter) IsEmpty() bool {
	return f == SpeakerFilter{}
}

// SpeakerPredicate decides whether one speaker passes one criterion.
type SpeakerPredicate func(r store.Resolver, speaker store.Record, f SpeakerFilter) bool

var speakerPipeline = []SpeakerPredicate{
	speakerNamed,
	speakerOnTrack,
}

// MatchSpeaker runs the full speaker pipeline.
func MatchSpeaker(r store.Resolver, speaker store.Record, f SpeakerFilter) bool {
	for _, pred := range speakerPipeline {
		if !pred(r, speaker, f) {
			return false
		}
	}
	return true
}

func speakerNamed(r store.Resolver, speaker store.Record, f SpeakerFilter) bool {
	if f.SpeakerName == "" {
		return true
	}
	profile := r.Lookup(tableUserProfiles, speaker["userProfile"], "id")
	name := fullName(profile.Str("name", ""), profile.Str("lastName", ""))
	return containsFold(name, f.SpeakerName)
}

// speakerOnTrack fails when a track is requested and the speaker has no
// sessions at all.
func speakerOnTrack(r store.Resolver, speaker store.Record, f SpeakerFilter) bool {
	if f.TrackName == "" {
		return true
	}
	for _, session := range speakerSessions(r, speaker) {
		if containsFold(trackTitle(r, session["track"], ""), f.TrackName) {
			return true
		}
	}
	return false
}
