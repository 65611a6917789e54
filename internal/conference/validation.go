package conference

import (
	"fmt"
	"strings"
)

const (
	earliestTime = "0000"
	latestTime   = "2400"
)

// Validate rejects malformed or contradictory criteria before any scan.
func (f SessionFilter) Validate() error {
	if err := ValidateTimeRange(f.StartTimeRange, f.EndTimeRange); err != nil {
		return err
	}
	if f.Day != "" {
		if _, ok := AgendaID(f.Day); !ok {
			return newArgumentError("day_of_week", CodeUnknownDay,
				fmt.Sprintf("day_of_week %q must be one of %s", string(f.Day), dayList()))
		}
	}
	if f.Duration != 0 && !ValidDuration(f.Duration) {
		return newArgumentError("duration", CodeBadDuration,
			fmt.Sprintf("duration %d must be one of %v minutes", f.Duration, Durations))
	}
	return nil
}

// ValidateTimeRange checks an HHMM start/end pair. Both or neither must be
// given, each must be four zero-padded digits between 0000 and 2400, and
// start must be strictly before end. Ranges cannot span midnight.
func ValidateTimeRange(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return newArgumentError("start_time_range", CodeUnpairedRange,
			"start_time_range and end_time_range must be provided together")
	}

	for _, tr := range []struct{ field, value string }{
		{"start_time_range", start},
		{"end_time_range", end},
	} {
		if !isHHMM(tr.value) {
			return newArgumentError(tr.field, CodeBadTimeFormat,
				fmt.Sprintf("%s %q must be in 'HHMM' format, zero-padded, 24-hour clock", tr.field, tr.value))
		}
		if tr.value < earliestTime || tr.value > latestTime {
			return newArgumentError(tr.field, CodeTimeOutOfRange,
				fmt.Sprintf("%s %q must be between '%s' and '%s'", tr.field, tr.value, earliestTime, latestTime))
		}
	}

	if start >= end {
		return newArgumentError("start_time_range", CodeRangeOrder,
			"start_time_range must be before end_time_range and cannot span midnight")
	}
	return nil
}

func isHHMM(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func dayList() string {
	names := make([]string, len(Days))
	for i, d := range Days {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
