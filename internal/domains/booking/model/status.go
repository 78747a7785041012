package model

import "gearshare/shared/failure"

// Status is the lifecycle state persisted on a booking row.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// StateFilter selects which slice of a booking listing to return. It is a
// superset of Status: ALL, CURRENT, PAST and FUTURE are derived from the
// booking period rather than the stored status.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

// ParseStateFilter resolves a listing state token. Matching is exact, the
// HTTP layer upcases the raw query value before calling this.
func ParseStateFilter(value string) (StateFilter, error) {
	switch StateFilter(value) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return StateFilter(value), nil
	default:
		return "", failure.Unsupported("Unknown state: " + value) //nolint:wrapcheck
	}
}
