package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/codemash/internal/conference"
	"github.com/JonMunkholm/codemash/internal/tools"
)

// maxToolArgsBytes bounds the body of POST /api/tools/{name}.
const maxToolArgsBytes = 64 << 10

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "OK"})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	ev := s.reader.Event()
	if ev == nil {
		s.respondError(w, r, fmt.Errorf("event %w", errNotFound))
		return
	}
	writeJSON(w, ev)
}

func (s *Server) handleHotels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.reader.Hotels())
}

func (s *Server) handleTracks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.reader.Tracks())
}

func (s *Server) handleRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.reader.Rooms())
}

func (s *Server) handleVenue(w http.ResponseWriter, r *http.Request) {
	v := s.reader.Venue()
	if v == nil {
		s.respondError(w, r, fmt.Errorf("venue %w", errNotFound))
		return
	}
	writeJSON(w, v)
}

// handleSpeakers serves GET /api/speakers?track=&speaker=.
func (s *Server) handleSpeakers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args := tools.SpeakersArgs{
		TrackName:   q.Get("track"),
		SpeakerName: q.Get("speaker"),
	}
	writeJSON(w, s.reader.Speakers(args.Filter()))
}

// handleSessions serves GET /api/sessions with the sessions tool's filters
// as query parameters: track, room (or venue), speaker, day, start, end and
// duration.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args := tools.SessionsArgs{
		TrackName:      q.Get("track"),
		RoomName:       q.Get("room"),
		VenueName:      q.Get("venue"),
		SpeakerName:    q.Get("speaker"),
		DayOfWeek:      q.Get("day"),
		StartTimeRange: q.Get("start"),
		EndTimeRange:   q.Get("end"),
	}

	if d := q.Get("duration"); d != "" {
		minutes, err := strconv.Atoi(d)
		if err != nil {
			s.respondError(w, r, &conference.ArgumentError{
				Field:   "duration",
				Code:    conference.CodeBadDuration,
				Message: fmt.Sprintf("duration %q must be a whole number of minutes", d),
			})
			return
		}
		args.Duration = minutes
	}

	sessions, err := s.reader.Sessions(args.Filter())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, sessions)
}

// handleListTools serves the tool descriptors.
func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"tools": s.tools.All()})
}

// handleCallTool runs a tool with the request body as its arguments.
func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxToolArgsBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.respondError(w, r, fmt.Errorf("invalid arguments: %w", err))
		return
	}

	result, err := s.tools.Call(r.Context(), name, json.RawMessage(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}
