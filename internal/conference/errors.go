// Package conference answers structured queries over the conference dataset.
//
// # Error Codes Reference
//
// Invalid filter arguments are reported as *ArgumentError and always satisfy
// errors.Is(err, ErrInvalidArgument). Every other failure degrades to a
// placeholder value instead of an error. Codes quoted to users:
//
//	ARG001 - Unpaired time range: only one of start/end was given
//	ARG002 - Bad time format: not four zero-padded digits
//	ARG003 - Time out of range: outside 0000-2400
//	ARG004 - Range order: start not strictly before end
//	ARG005 - Unknown day: not MONDAY through FRIDAY
//	ARG006 - Unsupported duration: not one of the scheduled lengths
//
// Errors raised outside this package are mapped by pattern:
//
//	TOOL001 - Unknown tool        Patterns: "unknown tool"
//	TOOL002 - Malformed arguments Patterns: "invalid arguments"
//	DATA001 - Data unavailable    Patterns: "data source", "open data file"
//	NOT001  - Record absent       Patterns: "not found"
//	ERR000  - Fallback
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins.
package conference

import (
	"errors"
	"fmt"
	"strings"
)

// Argument error codes.
const (
	CodeUnpairedRange  = "ARG001"
	CodeBadTimeFormat  = "ARG002"
	CodeTimeOutOfRange = "ARG003"
	CodeRangeOrder     = "ARG004"
	CodeUnknownDay     = "ARG005"
	CodeBadDuration    = "ARG006"
)

// ErrInvalidArgument is the sentinel every ArgumentError matches.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError rejects a whole query call because of one bad argument.
type ArgumentError struct {
	Field   string
	Code    string
	Message string
}

func newArgumentError(field, code, message string) *ArgumentError {
	return &ArgumentError{Field: field, Code: code, Message: message}
}

func (e *ArgumentError) Error() string {
	return "invalid argument: " + e.Message
}

// Is makes errors.Is(err, ErrInvalidArgument) hold.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var argumentActions = map[string]string{
	CodeUnpairedRange:  "Provide both start_time_range and end_time_range, or neither",
	CodeBadTimeFormat:  "Use 24-hour HHMM with a leading zero, e.g. 0900",
	CodeTimeOutOfRange: "Use a time between 0000 and 2400",
	CodeRangeOrder:     "Make the start earlier than the end within a single day",
	CodeUnknownDay:     "Use MONDAY, TUESDAY, WEDNESDAY, THURSDAY or FRIDAY",
	CodeBadDuration:    "Use one of the listed session durations in minutes",
}

var errorPatterns = []errorPattern{
	{
		pattern: "unknown tool",
		msg: UserMessage{
			Message: "The requested tool does not exist",
			Action:  "List the available tools and retry with one of them",
			Code:    "TOOL001",
		},
	},
	{
		pattern: "invalid arguments",
		msg: UserMessage{
			Message: "Tool arguments could not be read",
			Action:  "Send arguments as a JSON object matching the tool's input schema",
			Code:    "TOOL002",
		},
	},
	{
		pattern: "data source",
		msg: UserMessage{
			Message: "Conference data is unavailable",
			Action:  "Check the configured data file or database",
			Code:    "DATA001",
		},
	},
	{
		pattern: "open data file",
		msg: UserMessage{
			Message: "Conference data is unavailable",
			Action:  "Check the configured data file or database",
			Code:    "DATA001",
		},
	},
	{
		pattern: "not found",
		msg: UserMessage{
			Message: "The requested record is not in the conference data",
			Action:  "Check that the data source includes it",
			Code:    "NOT001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-facing message. Argument errors keep
// their own message; other errors are matched against known patterns.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return UserMessage{
			Message: argErr.Message,
			Action:  argumentActions[argErr.Code],
			Code:    argErr.Code,
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something other than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
