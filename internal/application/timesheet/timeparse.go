package timesheet

import (
	"strings"
	"time"

	"github.com/timetracker/backend/internal/domain/shared"
)

var naiveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseNaive parses an ISO-8601 timestamp and drops its offset, keeping the
// wall clock as written. The result is in UTC. An empty string yields the
// zero time and no error.
func ParseNaive(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range naiveLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}
	return time.Time{}, shared.NewDomainError("INVALID_DATETIME", "Invalid datetime: "+s)
}
