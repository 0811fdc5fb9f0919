package constants

import (
	"database/sql/driver"
	"fmt"
)

// RequestStatus mirrors the Postgres ENUM 'request_status'
type RequestStatus string

const (
	StatusOpen       RequestStatus = "open"
	StatusClaimed    RequestStatus = "claimed"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// Stringer ­– convenient for fmt / logs
func (s RequestStatus) String() string { return string(s) }

// IsValid reports whether s is a member of the enum
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusClaimed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether a request in this status can never change again
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// allowedTransitions is the legal status edge set. Cancellation is reachable
// from any non-terminal status; everything else moves forward only.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusOpen:       {StatusClaimed, StatusCancelled},
	StatusClaimed:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from -> to is a legal status change
func CanTransition(from, to RequestStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (s *RequestStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = RequestStatus(v)
	case []byte:
		*s = RequestStatus(v)
	default:
		return fmt.Errorf("RequestStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s RequestStatus) Value() (driver.Value, error) { return string(s), nil }
