// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openelect/ballotcore/testutil"
)

// TestConcurrentDuplicateVotes verifies that when many goroutines vote with
// the same credentials, exactly one wins and the rest observe AlreadyVoted.
func TestConcurrentDuplicateVotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	reg := NewRegistry(conn)
	voting := NewVoting(conn)

	now := time.Now().UTC().Truncate(time.Second)
	e, err := reg.CreateElection("Contested", now.Add(-time.Hour), now.Add(time.Hour), 0, testCandidates("Alice", "Bob"))
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	numAttempts := 10
	var successCount, duplicateCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			// Same voter every time; alternating candidates to make sure a
			// losing attempt never flips the recorded choice.
			candidate := "Alice"
			if attempt%2 == 1 {
				candidate = "Bob"
			}

			_, err := voting.CastVote(e.ID, "SHARED-NIN", "shared-code", candidate)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				duplicateCount.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if duplicateCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d AlreadyVoted, got %d", numAttempts-1, duplicateCount.Load())
	}

	var ledgerCount int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE election_id = $1`, e.ID).Scan(&ledgerCount); err != nil {
		t.Fatalf("Failed to count ledger entries: %v", err)
	}
	if ledgerCount != 1 {
		t.Errorf("Expected 1 ledger entry, got %d", ledgerCount)
	}

	var counterSum int
	if err := conn.QueryRow(`SELECT SUM(vote_count) FROM candidate WHERE election_id = $1`, e.ID).Scan(&counterSum); err != nil {
		t.Fatalf("Failed to sum counters: %v", err)
	}
	if counterSum != 1 {
		t.Errorf("Expected counters to sum to 1, got %d", counterSum)
	}
}

// TestConcurrentDistinctVoters verifies that distinct voters all succeed in
// parallel and tally, ledger, and counters stay in agreement.
func TestConcurrentDistinctVoters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	reg := NewRegistry(conn)
	voting := NewVoting(conn)
	tally := NewTally(conn)

	now := time.Now().UTC().Truncate(time.Second)
	e, err := reg.CreateElection("Parallel", now.Add(-time.Hour), now.Add(time.Hour), 0, testCandidates("Alice", "Bob", "Carol"))
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	names := []string{"Alice", "Bob", "Carol"}
	numVoters := 15
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()

			nin := fmt.Sprintf("NIN-%04d", voter)
			_, err := voting.CastVote(e.ID, nin, "code", names[voter%len(names)])
			if err != nil {
				t.Errorf("Voter %s failed: %v", nin, err)
				return
			}
			successCount.Add(1)
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	res, err := tally.Results(e.ID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if res.TotalVotes != numVoters {
		t.Errorf("Expected tally total %d, got %d", numVoters, res.TotalVotes)
	}

	got, err := reg.GetElection(e.ID)
	if err != nil {
		t.Fatalf("GetElection failed: %v", err)
	}
	for _, c := range got.Candidates {
		if c.VoteCount != res.Results[c.Name] {
			t.Errorf("Counter for %s (%d) disagrees with tally (%d)", c.Name, c.VoteCount, res.Results[c.Name])
		}
	}
}

// TestConcurrentCloseElection verifies that of many racing closes, exactly
// one flips the election and the rest observe AlreadyClosed.
func TestConcurrentCloseElection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	reg := NewRegistry(conn)

	now := time.Now().UTC().Truncate(time.Second)
	e, err := reg.CreateElection("Closing", now.Add(-2*time.Hour), now.Add(-time.Hour), 0, testCandidates("Alice"))
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	numAttempts := 8
	var successCount, alreadyCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// A registry per goroutine, the way separate server processes
			// would race against one shared store.
			_, err := NewRegistry(conn).CloseElection(e.ID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrAlreadyClosed):
				alreadyCount.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful close, got %d", successCount.Load())
	}
	if alreadyCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d AlreadyClosed, got %d", numAttempts-1, alreadyCount.Load())
	}

	var status string
	if err := conn.QueryRow(`SELECT status FROM election WHERE id = $1`, e.ID).Scan(&status); err != nil {
		t.Fatalf("Failed to read status: %v", err)
	}
	if status != "closed" {
		t.Errorf("Expected closed status, got %s", status)
	}
}

// TestConcurrentAddCandidates verifies that racing pre-start adds all land
// with distinct roster positions.
func TestConcurrentAddCandidates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	reg := NewRegistry(conn)

	now := time.Now().UTC().Truncate(time.Second)
	e, err := reg.CreateElection("Roster", now.Add(time.Hour), now.Add(2*time.Hour), 0, testCandidates("Seed"))
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	numAdds := 8
	var wg sync.WaitGroup
	for i := 0; i < numAdds; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			in := testCandidates(fmt.Sprintf("Cand-%02d", n))[0]
			if _, err := reg.AddCandidate(e.ID, in); err != nil {
				t.Errorf("AddCandidate %s failed: %v", in.Name, err)
			}
		}(i)
	}
	wg.Wait()

	rows, err := conn.Query(`SELECT position FROM candidate WHERE election_id = $1`, e.ID)
	if err != nil {
		t.Fatalf("Failed to read positions: %v", err)
	}
	defer rows.Close()

	seen := map[int]bool{}
	total := 0
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			t.Fatalf("Failed to scan position: %v", err)
		}
		if seen[pos] {
			t.Errorf("Position %d assigned twice", pos)
		}
		seen[pos] = true
		total++
	}
	if total != numAdds+1 {
		t.Errorf("Expected %d candidates, got %d", numAdds+1, total)
	}
}
