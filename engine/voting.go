// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/openelect/ballotcore/auth"
	"github.com/openelect/ballotcore/models"
)

// Voting validates and records votes against the ledger. The duplicate-vote
// check and the ledger insert run as one transaction per election, so two
// concurrent votes from the same credentials can never both succeed.
type Voting struct {
	db  *sql.DB
	now func() time.Time
}

func NewVoting(db *sql.DB) *Voting {
	return &Voting{db: db, now: time.Now}
}

// CastVote records a single vote. candidateRef is resolved as a candidate id
// first, then as an exact candidate name. The voting window [start, end] is
// inclusive on both ends.
func (v *Voting) CastVote(electionID, nationalID, secretCode, candidateRef string) (*models.VoteConfirmation, error) {
	voterKey, err := auth.DeriveVoterKey(nationalID, secretCode)
	if err != nil {
		return nil, err
	}

	var status string
	var startTime, endTime time.Time
	err = v.db.QueryRow(`
		SELECT status, start_time, end_time FROM election WHERE id = $1
	`, electionID).Scan(&status, &startTime, &endTime)
	if err == sql.ErrNoRows {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, storageErr("query election", err)
	}

	now := v.now().UTC()
	if now.Before(startTime) || now.After(endTime) {
		return nil, ErrVotingWindowClosed
	}
	if status != models.StatusOpen {
		return nil, ErrElectionClosed
	}

	candidate, err := v.resolveCandidate(electionID, candidateRef)
	if err != nil {
		return nil, err
	}

	// Ledger insert and counter increment are one atomic unit. The vote
	// table's primary key (election_id, voter_key) carries the
	// exactly-once check, so a concurrent duplicate loses at commit.
	tx, err := v.db.Begin()
	if err != nil {
		return nil, storageErr("begin cast vote", err)
	}
	defer tx.Rollback()

	castAt := now
	_, err = tx.Exec(`
		INSERT INTO vote (election_id, voter_key, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, electionID, voterKey, candidate.ID, castAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, storageErr("insert vote", err)
	}

	_, err = tx.Exec(`
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1
	`, candidate.ID)
	if err != nil {
		return nil, storageErr("increment vote count", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, storageErr("commit cast vote", err)
	}

	slog.Info("vote cast", "election_id", electionID, "candidate_id", candidate.ID)

	return &models.VoteConfirmation{
		ElectionID:  electionID,
		CandidateID: candidate.ID,
		Candidate:   candidate.Name,
		CastAt:      castAt,
	}, nil
}

// resolveCandidate looks the ref up by id, then by name. Votes are always
// recorded against the candidate id, so renames or roster order never skew
// old ledger entries.
func (v *Voting) resolveCandidate(electionID, ref string) (*models.Candidate, error) {
	var c models.Candidate
	err := v.db.QueryRow(`
		SELECT id, election_id, name, party, abbreviation, slogan, vote_count
		FROM candidate
		WHERE election_id = $1 AND id = $2
	`, electionID, ref).Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Abbreviation, &c.Slogan, &c.VoteCount)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, storageErr("query candidate by id", err)
	}

	err = v.db.QueryRow(`
		SELECT id, election_id, name, party, abbreviation, slogan, vote_count
		FROM candidate
		WHERE election_id = $1 AND name = $2
	`, electionID, ref).Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Abbreviation, &c.Slogan, &c.VoteCount)
	if err == sql.ErrNoRows {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, storageErr("query candidate by name", err)
	}
	return &c, nil
}
