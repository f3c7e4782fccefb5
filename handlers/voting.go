// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/openelect/ballotcore/cliparse"
	"github.com/openelect/ballotcore/engine"
	"github.com/openelect/ballotcore/middleware"
	"github.com/openelect/ballotcore/models"
)

type VotingHandler struct {
	cfg    cliparse.Config
	voting *engine.Voting
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{cfg: cfg, voting: engine.NewVoting(db)}
}

// CastVote handles POST /elections/:id/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Candidate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate is required")
		return
	}

	conf, err := h.voting.CastVote(electionID, req.NationalID, req.SecretCode, req.Candidate)
	if err != nil {
		engineError(w, err)
		return
	}

	// Client IP for the audit log only; nothing about the request origin is
	// persisted alongside the vote.
	slog.Info("vote accepted",
		"election_id", electionID,
		"candidate_id", conf.CandidateID,
		"remote", middleware.GetClientIP(r),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message:     "Vote cast successfully",
		VotedFor:    conf.Candidate,
		CandidateID: conf.CandidateID,
		CastAt:      conf.CastAt,
	})
}
