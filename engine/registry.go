// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openelect/ballotcore/auth"
	"github.com/openelect/ballotcore/models"
)

// Registry creates and manages elections and candidate rosters. All durable
// state lives in the injected database handle; the registry itself holds no
// election data across calls.
type Registry struct {
	db  *sql.DB
	now func() time.Time
}

func NewRegistry(db *sql.DB) *Registry {
	return &Registry{db: db, now: time.Now}
}

// CreateElection creates an election with its initial candidate roster and
// returns it with a freshly allocated id. The election and all candidates
// are written in one transaction.
func (r *Registry) CreateElection(title string, start, end time.Time, budget float64, candidates []models.CandidateInput) (*models.Election, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	if budget < 0 {
		return nil, ErrInvalidBudget
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.Name] {
			return nil, ErrDuplicateCandidateName
		}
		seen[c.Name] = true
	}

	electionID := uuid.NewString()
	createdAt := r.now().UTC()
	start = start.UTC()
	end = end.UTC()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, storageErr("begin create election", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO election (id, title, budget, status, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, electionID, title, budget, models.StatusOpen, start, end, createdAt)
	if err != nil {
		return nil, storageErr("insert election", err)
	}

	roster := make([]models.Candidate, 0, len(candidates))
	for i, c := range candidates {
		candidateID, err := auth.GenerateID(12)
		if err != nil {
			return nil, storageErr("generate candidate id", err)
		}

		_, err = tx.Exec(`
			INSERT INTO candidate (id, election_id, name, party, abbreviation, slogan, vote_count, position)
			VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		`, candidateID, electionID, c.Name, c.Party, c.Abbreviation, c.Slogan, i)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicateCandidateName
			}
			return nil, storageErr("insert candidate", err)
		}

		roster = append(roster, models.Candidate{
			ID:           candidateID,
			ElectionID:   electionID,
			Name:         c.Name,
			Party:        c.Party,
			Abbreviation: c.Abbreviation,
			Slogan:       c.Slogan,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit create election", err)
	}

	slog.Info("election created", "election_id", electionID, "title", title, "candidates", len(roster))

	return &models.Election{
		ID:         electionID,
		Title:      title,
		Budget:     budget,
		Status:     models.StatusOpen,
		StartTime:  start,
		EndTime:    end,
		CreatedAt:  createdAt,
		Candidates: roster,
	}, nil
}

// AddCandidate appends a candidate to an election's roster. The roster is
// frozen once the voting window opens.
func (r *Registry) AddCandidate(electionID string, in models.CandidateInput) ([]models.Candidate, error) {
	var startTime time.Time
	err := r.db.QueryRow(`
		SELECT start_time FROM election WHERE id = $1
	`, electionID).Scan(&startTime)
	if err == sql.ErrNoRows {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, storageErr("query election", err)
	}

	if !r.now().UTC().Before(startTime) {
		return nil, ErrVotingAlreadyStarted
	}

	candidateID, err := auth.GenerateID(12)
	if err != nil {
		return nil, storageErr("generate candidate id", err)
	}

	// Position continues from the current roster size. Two concurrent adds
	// can compute the same position; the UNIQUE(election_id, position)
	// constraint catches the collision and the loser retries with a fresh
	// count, which has grown by then.
	for {
		_, err = r.db.Exec(`
			INSERT INTO candidate (id, election_id, name, party, abbreviation, slogan, vote_count, position)
			VALUES ($1, $2, $3, $4, $5, $6, 0,
				(SELECT COUNT(*) FROM candidate WHERE election_id = $2))
		`, candidateID, electionID, in.Name, in.Party, in.Abbreviation, in.Slogan)
		if err == nil {
			break
		}
		if isUniqueViolation(err) {
			if isPositionConflict(err) {
				continue
			}
			return nil, ErrDuplicateCandidateName
		}
		return nil, storageErr("insert candidate", err)
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", candidateID, "name", in.Name)

	return r.candidates(electionID)
}

// CloseElection marks an election closed. Closing is only allowed after the
// voting window has ended, and a second close is an error, not a no-op, so
// the audit trail records exactly one close.
func (r *Registry) CloseElection(electionID string) (*models.Election, error) {
	var status string
	var endTime time.Time
	err := r.db.QueryRow(`
		SELECT status, end_time FROM election WHERE id = $1
	`, electionID).Scan(&status, &endTime)
	if err == sql.ErrNoRows {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, storageErr("query election", err)
	}

	if status == models.StatusClosed {
		return nil, ErrAlreadyClosed
	}
	if !r.now().UTC().After(endTime) {
		return nil, ErrElectionStillActive
	}

	// The status guard makes the close atomic: of two concurrent closes,
	// exactly one flips the row and the other sees zero rows affected.
	closedAt := r.now().UTC()
	res, err := r.db.Exec(`
		UPDATE election SET status = $1, closed_at = $2
		WHERE id = $3 AND status = $4
	`, models.StatusClosed, closedAt, electionID, models.StatusOpen)
	if err != nil {
		return nil, storageErr("close election", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storageErr("close election", err)
	}
	if affected == 0 {
		return nil, ErrAlreadyClosed
	}

	slog.Info("election closed", "election_id", electionID)

	return r.GetElection(electionID)
}

// ListElections returns summaries of all elections in insertion order. Each
// call re-reads the store, so the sequence is restartable.
func (r *Registry) ListElections() ([]models.ElectionSummary, error) {
	rows, err := r.db.Query(`
		SELECT e.id, e.title, e.status, e.start_time, e.end_time, COUNT(c.id)
		FROM election e
		LEFT JOIN candidate c ON c.election_id = e.id
		GROUP BY e.id, e.title, e.status, e.start_time, e.end_time, e.created_at
		ORDER BY e.created_at, e.id
	`)
	if err != nil {
		return nil, storageErr("query elections", err)
	}
	defer rows.Close()

	summaries := []models.ElectionSummary{}
	for rows.Next() {
		var s models.ElectionSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Status, &s.StartTime, &s.EndTime, &s.CandidateCount); err != nil {
			return nil, storageErr("scan election summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate elections", err)
	}
	return summaries, nil
}

// GetElection returns an election with its full candidate roster.
func (r *Registry) GetElection(electionID string) (*models.Election, error) {
	var e models.Election
	var closedAt sql.NullTime
	err := r.db.QueryRow(`
		SELECT id, title, budget, status, start_time, end_time, created_at, closed_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Title, &e.Budget, &e.Status, &e.StartTime, &e.EndTime, &e.CreatedAt, &closedAt)
	if err == sql.ErrNoRows {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, storageErr("query election", err)
	}
	if closedAt.Valid {
		t := closedAt.Time
		e.ClosedAt = &t
	}

	e.Candidates, err = r.candidates(electionID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// candidates returns the roster in insertion order.
func (r *Registry) candidates(electionID string) ([]models.Candidate, error) {
	rows, err := r.db.Query(`
		SELECT id, election_id, name, party, abbreviation, slogan, vote_count
		FROM candidate
		WHERE election_id = $1
		ORDER BY position
	`, electionID)
	if err != nil {
		return nil, storageErr("query candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Abbreviation, &c.Slogan, &c.VoteCount); err != nil {
			return nil, storageErr("scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate candidates", err)
	}
	return candidates, nil
}
