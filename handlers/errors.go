// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openelect/ballotcore/auth"
	"github.com/openelect/ballotcore/engine"
	"github.com/openelect/ballotcore/middleware"
)

// engineError maps an engine failure to an HTTP response. Business-rule
// violations keep their message; storage faults are logged and hidden
// behind a generic 500.
func engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrElectionNotFound),
		errors.Is(err, engine.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, engine.ErrInvalidTimeRange),
		errors.Is(err, engine.ErrInvalidBudget),
		errors.Is(err, auth.ErrInvalidCredential):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, engine.ErrDuplicateCandidateName),
		errors.Is(err, engine.ErrVotingAlreadyStarted),
		errors.Is(err, engine.ErrVotingWindowClosed),
		errors.Is(err, engine.ErrElectionClosed),
		errors.Is(err, engine.ErrAlreadyVoted),
		errors.Is(err, engine.ErrElectionStillActive),
		errors.Is(err, engine.ErrAlreadyClosed):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())

	default:
		slog.Error("storage failure", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
