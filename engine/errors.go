// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Business-rule failures. Callers branch with errors.Is; the HTTP layer maps
// them to status codes.
var (
	ErrElectionNotFound       = errors.New("election not found")
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrInvalidTimeRange       = errors.New("end time must be after start time")
	ErrInvalidBudget          = errors.New("budget must be non-negative")
	ErrDuplicateCandidateName = errors.New("candidate name already exists in this election")
	ErrVotingAlreadyStarted   = errors.New("voting has already started")
	ErrVotingWindowClosed     = errors.New("voting window is closed")
	ErrElectionClosed         = errors.New("election is closed")
	ErrAlreadyVoted           = errors.New("this voter has already voted in this election")
	ErrElectionStillActive    = errors.New("election is still active")
	ErrAlreadyClosed          = errors.New("election is already closed")
)

// ErrStorageUnavailable marks persistence I/O failures. It is kept distinct
// from every business-rule error: a storage fault must never surface as,
// say, ErrAlreadyVoted.
var ErrStorageUnavailable = errors.New("storage unavailable")

// storageErr wraps a database error so errors.Is(err, ErrStorageUnavailable)
// holds while the underlying cause stays in the message.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// Matches both drivers' messages, the same way the handlers distinguish
// duplicate-key races from other failures.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // modernc.org/sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // lib/pq
}

// isPositionConflict tells a roster-position collision apart from a
// duplicate name when an insert trips a unique constraint. Both drivers
// name the violated columns (sqlite) or constraint (pq) in the message.
func isPositionConflict(err error) bool {
	return strings.Contains(err.Error(), "position")
}
