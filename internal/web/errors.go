package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Status is chosen by error kind; the message is mapped via conference.MapError
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is written as JSON

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/codemash/internal/conference"
	"github.com/JonMunkholm/codemash/internal/logging"
	"github.com/JonMunkholm/codemash/internal/tools"
)

// errNotFound marks an absent singular resource such as the event.
var errNotFound = errors.New("not found")

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	switch {
	case errors.Is(err, conference.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, tools.ErrUnknownTool), errors.Is(err, errNotFound):
		return http.StatusNotFound
	case conference.MapError(err).Code == "TOOL002":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error server-side and returns a
// user-friendly JSON error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := conference.MapError(err)

	log := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if status >= http.StatusInternalServerError {
		log.Error("request error", attrs...)
	} else {
		log.Info("request rejected", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}
