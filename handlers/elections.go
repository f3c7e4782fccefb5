// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/openelect/ballotcore/auth"
	"github.com/openelect/ballotcore/cliparse"
	"github.com/openelect/ballotcore/engine"
	"github.com/openelect/ballotcore/middleware"
	"github.com/openelect/ballotcore/models"
)

type ElectionHandler struct {
	cfg      cliparse.Config
	registry *engine.Registry
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{cfg: cfg, registry: engine.NewRegistry(db)}
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time and end_time are required")
		return
	}

	election, err := h.registry.CreateElection(req.Title, req.StartTime, req.EndTime, req.Budget, req.Candidates)
	if err != nil {
		engineError(w, err)
		return
	}

	// The admin key is derived, not stored; this response is the only place
	// it is ever handed out.
	adminKey := auth.GenerateAdminKey(election.ID, h.cfg.AdminKeySalt)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: election.ID,
		AdminKey:   adminKey,
	})
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.registry.ListElections()
	if err != nil {
		engineError(w, err)
		return
	}

	now := time.Now().UTC()
	for i := range summaries {
		if summaries[i].Status == models.StatusOpen && summaries[i].EndTime.After(now) {
			summaries[i].EndsIn = humanize.Time(summaries[i].EndTime)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListElectionsResponse{Elections: summaries})
}

// GetElection handles GET /elections/:id
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	election, err := h.registry.GetElection(electionID)
	if err != nil {
		engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, election)
}

// AddCandidate handles POST /elections/:id/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.CandidateInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	candidates, err := h.registry.AddCandidate(electionID, req)
	if err != nil {
		engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{Candidates: candidates})
}

// CloseElection handles POST /elections/:id/close
func (h *ElectionHandler) CloseElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	election, err := h.registry.CloseElection(electionID)
	if err != nil {
		engineError(w, err)
		return
	}

	slog.Info("election closed by admin", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, models.CloseElectionResponse{
		ElectionID: election.ID,
		Status:     election.Status,
		ClosedAt:   *election.ClosedAt,
	})
}
