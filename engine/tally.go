// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"

	"github.com/openelect/ballotcore/models"
)

// Tally computes per-candidate vote counts. It is query-only: results are
// derived by aggregating the vote ledger, never from cached state, so a
// tally after restart equals a tally before it.
type Tally struct {
	db *sql.DB
}

func NewTally(db *sql.DB) *Tally {
	return &Tally{db: db}
}

// Results aggregates the election's vote ledger into candidate name -> count.
// Candidates with no votes appear with a zero count. This derivation must
// always agree with the running counters the voting engine maintains; the
// tests assert that equivalence.
func (t *Tally) Results(electionID string) (*models.ResultsResponse, error) {
	var title string
	err := t.db.QueryRow(`
		SELECT title FROM election WHERE id = $1
	`, electionID).Scan(&title)
	if err == sql.ErrNoRows {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, storageErr("query election", err)
	}

	rows, err := t.db.Query(`
		SELECT c.name, COUNT(v.voter_key)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id
		WHERE c.election_id = $1
		GROUP BY c.id, c.name
	`, electionID)
	if err != nil {
		return nil, storageErr("query tally", err)
	}
	defer rows.Close()

	results := make(map[string]int)
	total := 0
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, storageErr("scan tally row", err)
		}
		results[name] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate tally", err)
	}

	return &models.ResultsResponse{
		ElectionID: electionID,
		Title:      title,
		Results:    results,
		TotalVotes: total,
	}, nil
}
