package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/codemash/internal/conference"
	"github.com/JonMunkholm/codemash/internal/store"
)

const monday = "76186000008378878"

func testReader() *conference.Reader {
	id := conference.InstanceID
	return conference.NewReader(store.New(map[string][]store.Record{
		"events":                   {{"id": id}},
		"eventTranslations":        {{"event": id, "name": "CodeMash"}},
		"hotels":                   {{"id": "h1", "event": id}},
		"hotelTranslations":        {{"hotel": "h1", "name": "Hotel 1"}},
		"tracks":                   {{"id": "t1", "event": id}},
		"trackTranslations":        {{"track": "t1", "title": "Track 1"}},
		"sessionVenues":            {{"id": "v1", "event": id}},
		"sessionVenueTranslations": {{"sessionVenue": "v1", "name": "Venue 1"}},
		"speakers":                 {{"id": "s1", "event": id, "userProfile": "u1"}},
		"userProfiles":             {{"id": "u1", "name": "Alice", "lastName": "Smith"}},
		"sessionSpeakers":          {{"session": "sess1", "event": id, "speaker": "s1"}},
		"sessions": {{
			"id": "sess1", "event": id, "agenda": monday, "startTime": "0900",
			"duration": "60", "track": "t1", "venue": "v1",
		}},
		"sessionTranslations": {{"session": "sess1", "title": "Session 1"}},
	}))
}

func TestRegistry_RegisterDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Tool{Name: "a"})
	require.Panics(t, func() { reg.Register(Tool{Name: "a"}) })
}

func TestRegistry_AllSorted(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	require.Equal(t, 7, reg.Count())

	var names []string
	for _, tool := range reg.All() {
		names = append(names, tool.Name)
		require.Equal(t, "object", tool.InputSchema["type"], tool.Name)
	}
	require.Equal(t, []string{"event", "hotels", "rooms", "sessions", "speakers", "tracks", "venue"}, names)
}

func TestRegistry_CallUnknown(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	before := testutil.ToFloat64(toolCalls.WithLabelValues(unknownToolLabel, outcomeUnknown))

	_, err := reg.Call(context.Background(), "nope", nil)
	require.ErrorIs(t, err, ErrUnknownTool)
	require.Equal(t, "TOOL001", conference.MapError(err).Code)
	require.Equal(t, before+1, testutil.ToFloat64(toolCalls.WithLabelValues(unknownToolLabel, outcomeUnknown)))
}

func TestRegistry_CallUnknownBoundsSeries(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	toolCalls.WithLabelValues(unknownToolLabel, outcomeUnknown)
	before := testutil.CollectAndCount(toolCalls)

	for i := 0; i < 50; i++ {
		_, err := reg.Call(context.Background(), fmt.Sprintf("junk-%d", i), nil)
		require.ErrorIs(t, err, ErrUnknownTool)
	}

	require.Equal(t, before, testutil.CollectAndCount(toolCalls))
}

func TestCall_Sessions(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	ctx := context.Background()

	tests := []struct {
		name string
		args string
		want int
	}{
		{"no arguments", ``, 1},
		{"null arguments", `null`, 1},
		{"empty object", `{}`, 1},
		{"lowercase day", `{"day_of_week":"monday"}`, 1},
		{"other day", `{"day_of_week":"TUESDAY"}`, 0},
		{"room", `{"room_name":"Venue 1"}`, 1},
		{"venue alias", `{"venue_name":"Venue 1"}`, 1},
		{"wrong room", `{"venue_name":"Venue 2"}`, 0},
		{"time window", `{"start_time_range":"0800","end_time_range":"1000"}`, 1},
		{"all filters", `{"track_name":"Track 1","speaker_name":"alice","duration":60}`, 1},
		{"duration", `{"duration":90}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Call(ctx, ToolSessions, json.RawMessage(tt.args))
			require.NoError(t, err)
			require.Len(t, got, tt.want)
		})
	}
}

func TestCall_SessionsInvalid(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	ctx := context.Background()

	tests := []struct {
		name string
		args string
		code string
	}{
		{"malformed json", `{"duration":`, "TOOL002"},
		{"wrong type", `{"duration":"sixty"}`, "TOOL002"},
		{"misspelled filter", `{"day":"MONDAY"}`, "TOOL002"},
		{"trailing data", `{"duration":60} {}`, "TOOL002"},
		{"inverted range", `{"start_time_range":"1200","end_time_range":"1000"}`, conference.CodeRangeOrder},
		{"lone start", `{"start_time_range":"0800"}`, conference.CodeUnpairedRange},
		{"weekend", `{"day_of_week":"sunday"}`, conference.CodeUnknownDay},
		{"odd duration", `{"duration":45}`, conference.CodeBadDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Call(ctx, ToolSessions, json.RawMessage(tt.args))
			require.Error(t, err)
			require.Equal(t, tt.code, conference.MapError(err).Code)
		})
	}
}

func TestCall_Speakers(t *testing.T) {
	reg := NewConferenceRegistry(testReader())

	got, err := reg.Call(context.Background(), ToolSpeakers, json.RawMessage(`{"speaker_name":"SMITH"}`))
	require.NoError(t, err)

	speakers, ok := got.([]conference.Speaker)
	require.True(t, ok)
	require.Len(t, speakers, 1)
	require.Equal(t, "Alice", speakers[0].Name)
	require.Len(t, speakers[0].Sessions, 1)
}

func TestCall_Simple(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	ctx := context.Background()

	ev, err := reg.Call(ctx, ToolEvent, nil)
	require.NoError(t, err)
	require.Equal(t, "CodeMash", ev.(*conference.Event).Name)

	rooms, err := reg.Call(ctx, ToolRooms, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Venue 1"}, rooms)

	venue, err := reg.Call(ctx, ToolVenue, nil)
	require.NoError(t, err)
	require.Nil(t, venue.(*conference.Venue))
	require.Equal(t, 0, resultCount(venue))
}

func TestCall_RecordsMetrics(t *testing.T) {
	reg := NewConferenceRegistry(testReader())
	okBefore := testutil.ToFloat64(toolCalls.WithLabelValues(ToolTracks, outcomeOK))
	errBefore := testutil.ToFloat64(toolCalls.WithLabelValues(ToolSessions, outcomeError))

	_, err := reg.Call(context.Background(), ToolTracks, nil)
	require.NoError(t, err)
	_, err = reg.Call(context.Background(), ToolSessions, json.RawMessage(`{"duration":1}`))
	require.True(t, errors.Is(err, conference.ErrInvalidArgument))

	require.Equal(t, okBefore+1, testutil.ToFloat64(toolCalls.WithLabelValues(ToolTracks, outcomeOK)))
	require.Equal(t, errBefore+1, testutil.ToFloat64(toolCalls.WithLabelValues(ToolSessions, outcomeError)))
}

func TestResultCount(t *testing.T) {
	require.Equal(t, 0, resultCount(nil))
	require.Equal(t, 2, resultCount([]string{"a", "b"}))
	require.Equal(t, 0, resultCount([]int{}))
	require.Equal(t, 1, resultCount(&conference.Event{}))
	require.Equal(t, 0, resultCount((*conference.Event)(nil)))
}
