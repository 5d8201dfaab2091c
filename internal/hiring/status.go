package hiring

import (
	"errors"
	"fmt"
	"strings"
)

// Status is a pipeline stage. Any status may be set to any other via a
// manual update; only membership in the enum is enforced.
type Status string

const (
	StatusNew           Status = "new"
	StatusReviewing     Status = "reviewing"
	StatusShortlisted   Status = "shortlisted"
	StatusAwaitingReply Status = "awaiting_reply"
	StatusBooked        Status = "booked"
	StatusRejected      Status = "rejected"
	StatusHired         Status = "hired"
)

// StageOrder is the display order of pipeline stages in summaries.
var StageOrder = []Status{
	StatusNew,
	StatusReviewing,
	StatusShortlisted,
	StatusAwaitingReply,
	StatusBooked,
	StatusHired,
	StatusRejected,
}

// ErrInvalidStatus marks a status value outside the enum.
var ErrInvalidStatus = errors.New("invalid status")

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusReviewing, StatusShortlisted, StatusAwaitingReply,
		StatusBooked, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Display renders the status for humans ("awaiting reply").
func (s Status) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseStatus validates a raw status value against the enum.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
