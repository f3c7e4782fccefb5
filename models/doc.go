// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and API types shared across the service.

# Type Categories

Request types: CreateElectionRequest, CandidateInput, CastVoteRequest.

Response types: CreateElectionResponse, AddCandidateResponse,
CastVoteResponse, CloseElectionResponse, ResultsResponse,
ListElectionsResponse, ErrorResponse.

Domain types: Election, Candidate, ElectionSummary, VoteRecord,
VoteConfirmation.

# Privacy

VoteRecord.VoterKey is the derived voter-credential key. It is tagged
`json:"-"` and must never appear in an API response; only the engine and the
store see it. CastVoteRequest is the only type carrying raw credentials and
is never echoed back.

# Status Values

Elections move through exactly two states:

	open   - created, accepting votes inside the voting window
	closed - explicitly closed after the window ends; terminal
*/
package models
