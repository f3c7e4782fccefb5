package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openelect/ballotcore/models"
	"github.com/openelect/ballotcore/testutil"
)

func TestCastVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(conn, cfg)

	now := time.Now().UTC().Truncate(time.Second)

	openID, _ := testutil.CreateTestElection(t, conn, cfg, models.StatusOpen, now.Add(-time.Hour), now.Add(time.Hour))
	aliceID := testutil.AddTestCandidate(t, conn, openID, "Alice")
	testutil.AddTestCandidate(t, conn, openID, "Bob")

	notStartedID, _ := testutil.CreateTestElection(t, conn, cfg, models.StatusOpen, now.Add(time.Hour), now.Add(2*time.Hour))
	testutil.AddTestCandidate(t, conn, notStartedID, "Alice")

	endedID, _ := testutil.CreateTestElection(t, conn, cfg, models.StatusOpen, now.Add(-2*time.Hour), now.Add(-time.Hour))
	testutil.AddTestCandidate(t, conn, endedID, "Alice")

	closedID, _ := testutil.CreateTestElection(t, conn, cfg, models.StatusClosed, now.Add(-time.Hour), now.Add(time.Hour))
	testutil.AddTestCandidate(t, conn, closedID, "Alice")

	tests := []struct {
		name           string
		electionID     string
		body           interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CastVoteResponse)
	}{
		{
			name:       "vote by name",
			electionID: openID,
			body:           models.CastVoteRequest{NationalID: "A1", SecretCode: "X", Candidate: "Alice"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CastVoteResponse) {
				if resp.VotedFor != "Alice" {
					t.Errorf("Expected voted_for Alice, got %s", resp.VotedFor)
				}
				if resp.CandidateID != aliceID {
					t.Errorf("Expected candidate_id %s, got %s", aliceID, resp.CandidateID)
				}
			},
		},
		{
			name:           "vote by candidate id",
			electionID:     openID,
			body:           models.CastVoteRequest{NationalID: "A2", SecretCode: "Y", Candidate: aliceID},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate voter",
			electionID:     openID,
			body:           models.CastVoteRequest{NationalID: "A1", SecretCode: "X", Candidate: "Bob"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing credentials",
			electionID:     openID,
			body:           models.CastVoteRequest{Candidate: "Alice"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing candidate",
			electionID:     openID,
			body:           models.CastVoteRequest{NationalID: "A3", SecretCode: "Z"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown candidate",
			electionID:     openID,
			body:           models.CastVoteRequest{NationalID: "A3", SecretCode: "Z", Candidate: "Mallory"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown election",
			electionID:     "no-such-election",
			body:           models.CastVoteRequest{NationalID: "A3", SecretCode: "Z", Candidate: "Alice"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "voting not started",
			electionID:     notStartedID,
			body:           models.CastVoteRequest{NationalID: "A3", SecretCode: "Z", Candidate: "Alice"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "voting ended",
			electionID:     endedID,
			body:           models.CastVoteRequest{NationalID: "A3", SecretCode: "Z", Candidate: "Alice"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "election closed",
			electionID:     closedID,
			body:           models.CastVoteRequest{NationalID: "A3", SecretCode: "Z", Candidate: "Alice"},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/elections/"+tt.electionID+"/votes", tt.body, nil)
			req.SetPathValue("id", tt.electionID)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CastVoteResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

// The confirmation must never echo the submitted credentials.
func TestCastVoteResponseOmitsCredentials(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(conn, cfg)

	now := time.Now().UTC().Truncate(time.Second)
	electionID, _ := testutil.CreateTestElection(t, conn, cfg, models.StatusOpen, now.Add(-time.Hour), now.Add(time.Hour))
	testutil.AddTestCandidate(t, conn, electionID, "Alice")

	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/votes", models.CastVoteRequest{
		NationalID: "SECRET-NIN-42",
		SecretCode: "hunter2",
		Candidate:  "Alice",
	}, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()

	handler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	body := w.Body.String()
	for _, secret := range []string{"SECRET-NIN-42", "hunter2"} {
		if strings.Contains(body, secret) {
			t.Errorf("Response leaks credential %q: %s", secret, body)
		}
	}
}
