// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openelect/ballotcore/auth"
	"github.com/openelect/ballotcore/cliparse"
	"github.com/openelect/ballotcore/db"
	"github.com/openelect/ballotcore/models"
)

// SetupTestDB creates a fresh file-backed SQLite database under t.TempDir()
// with the full schema. No external database server is needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballotcore_test.db")
	conn, err := db.Connect("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4520,
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestElection inserts an election with the given window and status
// and returns its ID and admin key.
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string, start, end time.Time) (electionID, adminKey string) {
	t.Helper()

	electionID = uuid.NewString()
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)

	var closedAt *time.Time
	if status == models.StatusClosed {
		now := time.Now().UTC()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO election (id, title, budget, status, start_time, end_time, created_at, closed_at)
		VALUES ($1, 'Test Election', 1000, $2, $3, $4, $5, $6)
	`, electionID, status, start.UTC(), end.UTC(), time.Now().UTC(), closedAt)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID, adminKey
}

// AddTestCandidate adds a candidate to an election and returns the candidate ID
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, name string) string {
	t.Helper()

	candidateID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO candidate (id, election_id, name, party, abbreviation, slogan, vote_count, position)
		VALUES ($1, $2, $3, 'Test Party', 'TP', 'A better tomorrow', 0,
			(SELECT COUNT(*) FROM candidate WHERE election_id = $2))
	`, candidateID, electionID, name)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CastTestVote records a ledger entry and bumps the candidate counter, the
// same shape the voting engine writes.
func CastTestVote(t *testing.T, conn *sql.DB, electionID, nationalID, secretCode, candidateID string) {
	t.Helper()

	voterKey, err := auth.DeriveVoterKey(nationalID, secretCode)
	if err != nil {
		t.Fatalf("Failed to derive voter key: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO vote (election_id, voter_key, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, electionID, voterKey, candidateID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}

	_, err = conn.Exec(`UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1`, candidateID)
	if err != nil {
		t.Fatalf("Failed to bump test vote count: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
