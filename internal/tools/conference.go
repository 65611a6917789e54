package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/codemash/internal/conference"
)

// Tool names.
const (
	ToolEvent    = "event"
	ToolHotels   = "hotels"
	ToolSpeakers = "speakers"
	ToolSessions = "sessions"
	ToolRooms    = "rooms"
	ToolTracks   = "tracks"
	ToolVenue    = "venue"
)

// Instructions is the server description sent to protocol clients.
const Instructions = `CodeMash is a developer conference held every January at the Kalahari Resort in Sandusky, Ohio. ` +
	`Use these tools to look up the event, partner hotels, the venue, rooms, tracks, speakers and sessions. ` +
	`Sessions can be filtered by track, room, speaker, day of week (MONDAY-FRIDAY), a start time window ` +
	`given as HHMM start_time_range and end_time_range (both or neither), and duration in minutes.`

// SessionsArgs are the arguments of the sessions tool. VenueName is an
// alias for RoomName.
type SessionsArgs struct {
	TrackName      string `json:"track_name"`
	RoomName       string `json:"room_name"`
	VenueName      string `json:"venue_name"`
	SpeakerName    string `json:"speaker_name"`
	DayOfWeek      string `json:"day_of_week"`
	StartTimeRange string `json:"start_time_range"`
	EndTimeRange   string `json:"end_time_range"`
	Duration       int    `json:"duration"`
}

// Filter converts the arguments to a session filter. Unknown days are
// passed through so validation can reject them.
func (a SessionsArgs) Filter() conference.SessionFilter {
	room := a.RoomName
	if room == "" {
		room = a.VenueName
	}

	var day conference.Day
	if a.DayOfWeek != "" {
		d, ok := conference.ParseDay(a.DayOfWeek)
		if !ok {
			d = conference.Day(a.DayOfWeek)
		}
		day = d
	}

	return conference.SessionFilter{
		TrackName:      a.TrackName,
		RoomName:       room,
		SpeakerName:    a.SpeakerName,
		Day:            day,
		StartTimeRange: a.StartTimeRange,
		EndTimeRange:   a.EndTimeRange,
		Duration:       a.Duration,
	}
}

// SpeakersArgs are the arguments of the speakers tool.
type SpeakersArgs struct {
	TrackName   string `json:"track_name"`
	SpeakerName string `json:"speaker_name"`
}

// Filter converts the arguments to a speaker filter.
func (a SpeakersArgs) Filter() conference.SpeakerFilter {
	return conference.SpeakerFilter{TrackName: a.TrackName, SpeakerName: a.SpeakerName}
}

// NewConferenceRegistry returns a registry holding every conference tool
// bound to reader.
func NewConferenceRegistry(reader *conference.Reader) *Registry {
	reg := NewRegistry()
	RegisterConference(reg, reader)
	return reg
}

// RegisterConference adds the conference tools to reg.
func RegisterConference(reg *Registry, reader *conference.Reader) {
	reg.Register(Tool{
		Name:        ToolEvent,
		Title:       "Event",
		Description: "Get the conference name, dates, timezone, website and social handles.",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return reader.Event(), nil
		},
	})

	reg.Register(Tool{
		Name:        ToolHotels,
		Title:       "Hotels",
		Description: "List partner hotels with address and website. The conference resort is not included.",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return reader.Hotels(), nil
		},
	})

	reg.Register(Tool{
		Name:        ToolTracks,
		Title:       "Tracks",
		Description: "List the session tracks.",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return reader.Tracks(), nil
		},
	})

	reg.Register(Tool{
		Name:        ToolRooms,
		Title:       "Rooms",
		Description: "List the names of the rooms sessions are held in.",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return reader.Rooms(), nil
		},
	})

	reg.Register(Tool{
		Name:        ToolVenue,
		Title:       "Venue",
		Description: "Get the conference venue address and coordinates.",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return reader.Venue(), nil
		},
	})

	reg.Register(Tool{
		Name:        ToolSpeakers,
		Title:       "Speakers",
		Description: "List speakers with their profile and sessions. Names and tracks match case-insensitive substrings.",
		InputSchema: objectSchema(map[string]any{
			"track_name":   stringProp("Part of a track name the speaker presents in"),
			"speaker_name": stringProp("Part of the speaker's first or last name"),
		}),
		Handler: func(_ context.Context, raw json.RawMessage) (any, error) {
			var args SpeakersArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return reader.Speakers(args.Filter()), nil
		},
	})

	reg.Register(Tool{
		Name:        ToolSessions,
		Title:       "Sessions",
		Description: "List sessions with track, room, start time, duration and speakers. All given filters must match.",
		InputSchema: objectSchema(map[string]any{
			"track_name":   stringProp("Exact track name"),
			"room_name":    stringProp("Exact room name"),
			"venue_name":   stringProp("Alias for room_name"),
			"speaker_name": stringProp("Part of a speaker's full name, case-insensitive"),
			"day_of_week": map[string]any{
				"type":        "string",
				"description": "Day the session is held",
				"enum":        dayNames(),
			},
			"start_time_range": timeProp("Earliest start time, HHMM 24-hour, requires end_time_range"),
			"end_time_range":   timeProp("Latest start time, HHMM 24-hour, requires start_time_range"),
			"duration": map[string]any{
				"type":        "integer",
				"description": "Session length in minutes",
				"enum":        conference.Durations,
			},
		}),
		Handler: func(_ context.Context, raw json.RawMessage) (any, error) {
			var args SessionsArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return reader.Sessions(args.Filter())
		},
	})
}

// decodeArgs reads tool arguments. Missing or null arguments leave v at its
// zero value. Keys outside the input schema are rejected.
func decodeArgs(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid arguments: trailing data after JSON object")
	}
	return nil
}

func objectSchema(props map[string]any) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func timeProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "pattern": "^[0-9]{4}$"}
}

func dayNames() []string {
	names := make([]string, len(conference.Days))
	for i, d := range conference.Days {
		names[i] = string(d)
	}
	return names
}
