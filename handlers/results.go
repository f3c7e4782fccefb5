// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/openelect/ballotcore/cliparse"
	"github.com/openelect/ballotcore/engine"
	"github.com/openelect/ballotcore/middleware"
)

type ResultsHandler struct {
	cfg   cliparse.Config
	tally *engine.Tally
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{cfg: cfg, tally: engine.NewTally(db)}
}

// GetResults handles GET /elections/:id/results
// Results are recomputed from the ledger on every call.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	res, err := h.tally.Results(electionID)
	if err != nil {
		engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}
