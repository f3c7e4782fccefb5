package models

import "time"

// Election status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Request types

type CandidateInput struct {
	Name         string `json:"name"`
	Party        string `json:"party"`
	Abbreviation string `json:"abbreviation"`
	Slogan       string `json:"slogan"`
}

type CreateElectionRequest struct {
	Title      string           `json:"title"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    time.Time        `json:"end_time"`
	Budget     float64          `json:"budget"`
	Candidates []CandidateInput `json:"candidates"`
}

// Candidate may be a candidate id or an exact candidate name.
type CastVoteRequest struct {
	NationalID string `json:"nin"`
	SecretCode string `json:"secret_code"`
	Candidate  string `json:"candidate"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
}

type AddCandidateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type CastVoteResponse struct {
	Message     string    `json:"message"`
	VotedFor    string    `json:"voted_for"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

type CloseElectionResponse struct {
	ElectionID string    `json:"election_id"`
	Status     string    `json:"status"`
	ClosedAt   time.Time `json:"closed_at"`
}

type ResultsResponse struct {
	ElectionID string         `json:"election_id"`
	Title      string         `json:"title"`
	Results    map[string]int `json:"results"`
	TotalVotes int            `json:"total_votes"`
}

type ListElectionsResponse struct {
	Elections []ElectionSummary `json:"elections"`
}

// Domain types

type Election struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Budget     float64     `json:"budget"`
	Status     string      `json:"status"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	CreatedAt  time.Time   `json:"created_at"`
	ClosedAt   *time.Time  `json:"closed_at,omitempty"`
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	ID           string `json:"id"`
	ElectionID   string `json:"election_id"`
	Name         string `json:"name"`
	Party        string `json:"party"`
	Abbreviation string `json:"abbreviation"`
	Slogan       string `json:"slogan"`
	VoteCount    int    `json:"vote_count"`
}

type ElectionSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CandidateCount int       `json:"candidate_count"`
	EndsIn         string    `json:"ends_in,omitempty"` // human phrasing, open elections only
}

// VoteRecord is one ledger entry for an election. The voter key is derived
// from the submitted credentials, never the raw identity.
type VoteRecord struct {
	ElectionID  string    `json:"election_id"`
	VoterKey    string    `json:"-"` // Never expose in JSON
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

// VoteConfirmation is returned by the voting engine after a successful cast.
// It carries the resolved candidate identity and nothing about the voter.
type VoteConfirmation struct {
	ElectionID  string
	CandidateID string
	Candidate   string
	CastAt      time.Time
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
